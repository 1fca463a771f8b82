package stats

import "fmt"

// Grid is a keyed collection of stats (spec.md §3 "Stat grid"). It is
// a value object: cloned by deep copy (Clone/Add-of-grid), never
// shared by reference between loaded definitions.
type Grid struct {
	content map[uint16]Stat
}

// NewGrid returns an empty, ready-to-use grid.
func NewGrid() *Grid {
	return &Grid{content: make(map[uint16]Stat)}
}

// Get returns the value at the exact qualifier, or 0.0 if absent
// (spec.md §4.2).
func (g *Grid) Get(id StatId, tag Tag) float64 {
	if g == nil {
		return 0
	}
	s, ok := g.content[(Qualifier{Id: id, Tag: tag}).key()]
	if !ok {
		return 0
	}
	v, err := s.Value()
	if err != nil {
		// A grid read must not mutate or panic; callers that care about
		// the error should use GetChecked instead.
		return 0
	}
	return v
}

// GetChecked is Get, but surfaces relative-stat evaluation errors
// instead of silently returning 0 (spec.md invariant 5).
func (g *Grid) GetChecked(id StatId, tag Tag) (float64, error) {
	if g == nil {
		return 0, nil
	}
	s, ok := g.content[(Qualifier{Id: id, Tag: tag}).key()]
	if !ok {
		return 0, nil
	}
	return s.Value()
}

// GetSummed returns get(id, Universal) + (tag != Universal ? get(id, tag) : 0).
func (g *Grid) GetSummed(id StatId, tag Tag) float64 {
	total := g.Get(id, Universal)
	if tag != Universal {
		total += g.Get(id, tag)
	}
	return total
}

// resolve implements expr.Resolver for formula evaluation: a bare
// variable name resolves against GetSummed(id, Universal), per
// spec.md §4.1 "Variable tokens resolve to grid.get_summed(<id>, Universal)".
func (g *Grid) resolve(name string) (float64, error) {
	id, err := ParseStatId(name)
	if err != nil {
		return 0, err
	}
	return g.GetSummed(id, Universal), nil
}

// Set replaces the entry at stat.Qualifier outright (no fusion),
// rebinding the relative-stat lookup grid per spec.md §9.
func (g *Grid) Set(s Stat) {
	g.content[s.Qualifier.key()] = s.bindTo(g)
}

// Contains reports whether an entry exists at the exact qualifier.
func (g *Grid) Contains(id StatId, tag Tag) bool {
	_, ok := g.content[(Qualifier{Id: id, Tag: tag}).key()]
	return ok
}

// AtStat is the Go-idiomatic form of spec.md §4.2's `at(id, tag) -> &mut base`:
// it returns the current base value and a setter that writes the new
// base back into the grid, inserting a regular zero entry on first use.
func (g *Grid) AtStat(id StatId, tag Tag) (base float64, set func(float64)) {
	key := (Qualifier{Id: id, Tag: tag}).key()
	s, ok := g.content[key]
	if !ok {
		s = NewRegular(id, tag, 0)
		g.content[key] = s
	}
	base = s.Base
	set = func(v float64) {
		s := g.content[key]
		s.Base = v
		g.content[key] = s
	}
	return base, set
}

// Add fuses a single stat into the grid per the table in spec.md §4.2:
// inserts a clone if no entry exists at the qualifier, otherwise fuses.
func (g *Grid) Add(s Stat) {
	key := s.Qualifier.key()
	existing, ok := g.content[key]
	if !ok {
		g.content[key] = s.bindTo(g)
		return
	}
	g.content[key] = fuse(existing, s).bindTo(g)
}

// AddGrid performs a pairwise Add over another grid's entries.
func (g *Grid) AddGrid(other *Grid) {
	if other == nil {
		return
	}
	for _, s := range other.content {
		g.Add(s)
	}
}

// Clone deep-copies the grid (stat grids are value objects, spec.md §3).
func (g *Grid) Clone() *Grid {
	clone := NewGrid()
	clone.AddGrid(g)
	return clone
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%d entries)", len(g.content))
}
