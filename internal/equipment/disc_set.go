package equipment

import (
	"github.com/nightsky-studio/zzzcalc/internal/apierr"
	"github.com/nightsky-studio/zzzcalc/internal/stats"
)

// DiscSet grants bonus stats at 2-piece and 4-piece activation
// thresholds (spec.md §3).
type DiscSet struct {
	Id   int
	Name string
	P2   *stats.Grid
	P4   *stats.Grid
}

type DiscSetBuilder struct {
	id      int
	idSet   bool
	name    string
	nameSet bool
	p2      *stats.Grid
	p4      *stats.Grid
	built   bool
}

func NewDiscSetBuilder() *DiscSetBuilder {
	return &DiscSetBuilder{p2: stats.NewGrid(), p4: stats.NewGrid()}
}

func (b *DiscSetBuilder) Id(id int) *DiscSetBuilder { b.id, b.idSet = id, true; return b }

func (b *DiscSetBuilder) Name(name string) *DiscSetBuilder { b.name, b.nameSet = name, true; return b }

func (b *DiscSetBuilder) AddP2Stats(g *stats.Grid) *DiscSetBuilder { b.p2.AddGrid(g); return b }

func (b *DiscSetBuilder) AddP4Stats(g *stats.Grid) *DiscSetBuilder { b.p4.AddGrid(g); return b }

func (b *DiscSetBuilder) IsBuilt() bool { return b.idSet && b.nameSet }

func (b *DiscSetBuilder) Build() (*DiscSet, error) {
	if b.built {
		return nil, apierr.New(apierr.BuilderIncomplete, "equipment: disc set builder already consumed")
	}
	if !b.IsBuilt() {
		var missing []string
		if !b.idSet {
			missing = append(missing, "id")
		}
		if !b.nameSet {
			missing = append(missing, "name")
		}
		return nil, apierr.Newf(apierr.BuilderIncomplete, "equipment: disc set missing required fields: %v", missing)
	}
	b.built = true
	return &DiscSet{Id: b.id, Name: b.name, P2: b.p2, P4: b.p4}, nil
}
