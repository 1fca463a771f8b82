package stats

import "fmt"

// Kind discriminates the two stat variants (spec.md §3 "Stat variants").
// Go has no sum-type/tagged-union, so Stat is a single struct carrying
// a Kind discriminant rather than an interface with two implementations
// — the teacher's own domain types (steam.APIError, models.PlayerStats)
// favor flat structs over interface hierarchies, and this keeps the
// fusion table in Add a single total function instead of a 2x2 type
// switch spread across two files.
type Kind uint8

const (
	KindRegular Kind = iota
	KindRelative
)

// FormulaKey is the single-character key of a relative stat's formula
// bundle: 'c' (condition), 'f' (function, mandatory), 'm' (upper bound).
type FormulaKey byte

const (
	KeyCondition FormulaKey = 'c'
	KeyFunction  FormulaKey = 'f'
	KeyBound     FormulaKey = 'm'
)

// Stat is either a Regular scalar or a Relative formula-computed value.
// A Relative stat's Grid back-reference is rebound every time it is
// installed into a grid via Set/Add (spec.md §9).
type Stat struct {
	Qualifier Qualifier
	Kind      Kind
	Base      float64
	Formulas  Formulas // only meaningful when Kind == KindRelative
	grid      *Grid    // non-owning; bound by Grid.Set/Grid.Add
}

// NewRegular builds a constant-valued stat.
func NewRegular(id StatId, tag Tag, base float64) Stat {
	return Stat{Qualifier: Qualifier{Id: id, Tag: tag}, Kind: KindRegular, Base: base}
}

// NewRelative builds a formula-computed stat from a pre-compiled
// formula bundle.
func NewRelative(id StatId, tag Tag, base float64, formulas Formulas) Stat {
	return Stat{Qualifier: Qualifier{Id: id, Tag: tag}, Kind: KindRelative, Base: base, Formulas: formulas}
}

// NewRelativeFromString parses a ';'-separated "key:expression" bundle
// per spec.md §4.1 and builds a relative stat from it.
func NewRelativeFromString(id StatId, tag Tag, base float64, bundle string) (Stat, error) {
	formulas, err := ParseFormulas(bundle)
	if err != nil {
		return Stat{}, err
	}
	return NewRelative(id, tag, base, formulas), nil
}

// Value computes the stat's current value. Regular stats return Base
// directly; Relative stats evaluate per §4.2.1 and require a bound
// grid (spec.md invariant 5: absence is an error, not zero).
func (s Stat) Value() (float64, error) {
	if s.Kind == KindRegular {
		return s.Base, nil
	}
	if s.grid == nil {
		return 0, fmt.Errorf("stats: relative stat %s evaluated without a bound lookup grid", s.Qualifier)
	}
	return s.Formulas.Evaluate(s.Base, s.grid)
}

// bindTo rebinds a relative stat's lookup grid; a no-op for regular stats.
func (s Stat) bindTo(g *Grid) Stat {
	if s.Kind == KindRelative {
		s.grid = g
	}
	return s
}

// fuse implements the fusion table of spec.md §4.2 when combining two
// stats sharing a qualifier.
func fuse(l, r Stat) Stat {
	switch {
	case l.Kind == KindRegular && r.Kind == KindRegular:
		return NewRegular(l.Qualifier.Id, l.Qualifier.Tag, l.Base+r.Base)

	case l.Kind == KindRegular && r.Kind == KindRelative:
		return NewRelative(l.Qualifier.Id, l.Qualifier.Tag, l.Base+r.Base, r.Formulas)

	case l.Kind == KindRelative && r.Kind == KindRegular:
		return NewRelative(l.Qualifier.Id, l.Qualifier.Tag, l.Base+r.Base, l.Formulas)

	default: // both relative
		return NewRelative(l.Qualifier.Id, l.Qualifier.Tag, l.Base+r.Base, fuseFormulas(l.Formulas, r.Formulas))
	}
}
