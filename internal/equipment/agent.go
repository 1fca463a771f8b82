package equipment

import (
	"github.com/nightsky-studio/zzzcalc/internal/apierr"
	"github.com/nightsky-studio/zzzcalc/internal/stats"
)

// Agent is a playable character: identity, role, and its ability
// table (spec.md §3).
type Agent struct {
	Id         int
	Name       string
	Speciality stats.Speciality
	Element    stats.Element
	Rarity     stats.Rarity
	Stats      *stats.Grid
	Abilities  map[string]Ability
}

// Ability looks up a named ability, surfacing MissingKey for a
// rotation cell referencing an unknown name (spec.md §4.5).
func (a *Agent) Ability(name string) (Ability, error) {
	ab, ok := a.Abilities[name]
	if !ok {
		return Ability{}, errUnknownAbility(name)
	}
	return ab, nil
}

// AgentBuilder is a single-use validating builder (spec.md §4.4):
// it accumulates fields, answers IsBuilt, and yields the product
// destructively via Build.
type AgentBuilder struct {
	id          int
	idSet       bool
	name        string
	nameSet     bool
	speciality  stats.Speciality
	specSet     bool
	element     stats.Element
	elementSet  bool
	rarity      stats.Rarity
	rarityChosen bool
	grid        *stats.Grid
	abilities   map[string]Ability
	built       bool
}

func NewAgentBuilder() *AgentBuilder {
	return &AgentBuilder{grid: stats.NewGrid(), abilities: make(map[string]Ability)}
}

func (b *AgentBuilder) Id(id int) *AgentBuilder { b.id, b.idSet = id, true; return b }

func (b *AgentBuilder) Name(name string) *AgentBuilder { b.name, b.nameSet = name, true; return b }

func (b *AgentBuilder) Speciality(s stats.Speciality) *AgentBuilder {
	b.speciality, b.specSet = s, true
	return b
}

func (b *AgentBuilder) Element(e stats.Element) *AgentBuilder {
	b.element, b.elementSet = e, true
	return b
}

func (b *AgentBuilder) Rarity(r stats.Rarity) *AgentBuilder {
	b.rarity, b.rarityChosen = r, true
	return b
}

func (b *AgentBuilder) AddStats(g *stats.Grid) *AgentBuilder {
	b.grid.AddGrid(g)
	return b
}

func (b *AgentBuilder) AddAbility(ability Ability) *AgentBuilder {
	b.abilities[ability.Name()] = ability
	return b
}

// IsBuilt reports whether every required field has been set
// (spec.md invariant 4).
func (b *AgentBuilder) IsBuilt() bool {
	return b.idSet && b.nameSet && b.specSet && b.elementSet && b.rarityChosen
}

// Build yields the product, consuming the builder. Calling it twice,
// or before IsBuilt, raises BuilderIncomplete naming the missing fields.
func (b *AgentBuilder) Build() (*Agent, error) {
	if b.built {
		return nil, apierr.New(apierr.BuilderIncomplete, "equipment: agent builder already consumed")
	}
	var missing []string
	if !b.idSet {
		missing = append(missing, "id")
	}
	if !b.nameSet {
		missing = append(missing, "name")
	}
	if !b.specSet {
		missing = append(missing, "speciality")
	}
	if !b.elementSet {
		missing = append(missing, "element")
	}
	if !b.rarityChosen {
		missing = append(missing, "rarity")
	}
	if len(missing) > 0 {
		return nil, apierr.Newf(apierr.BuilderIncomplete, "equipment: agent missing required fields: %v", missing)
	}
	b.built = true
	return &Agent{
		Id:         b.id,
		Name:       b.name,
		Speciality: b.speciality,
		Element:    b.element,
		Rarity:     b.rarity,
		Stats:      b.grid,
		Abilities:  b.abilities,
	}, nil
}
