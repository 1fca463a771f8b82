package stats

import (
	"fmt"
	"math"
	"strings"

	"github.com/nightsky-studio/zzzcalc/internal/expr"
)

// formulaNode is one compiled formula: either a leaf of RPN tokens, or
// a combinator built by fuseFormulas when two relative stats with the
// same formula key are added together.
type formulaNode interface {
	eval(g *Grid) (float64, error)
}

type tokenNode []expr.Token

func (n tokenNode) eval(g *Grid) (float64, error) {
	return expr.Eval(n, g.resolve)
}

type andNode struct{ lhs, rhs formulaNode }

func (n andNode) eval(g *Grid) (float64, error) {
	l, err := n.lhs.eval(g)
	if err != nil {
		return 0, err
	}
	r, err := n.rhs.eval(g)
	if err != nil {
		return 0, err
	}
	if l != 0 && r != 0 {
		return 1, nil
	}
	return 0, nil
}

type sumNode struct{ lhs, rhs formulaNode }

func (n sumNode) eval(g *Grid) (float64, error) {
	l, err := n.lhs.eval(g)
	if err != nil {
		return 0, err
	}
	r, err := n.rhs.eval(g)
	if err != nil {
		return 0, err
	}
	return l + r, nil
}

type minNode struct{ lhs, rhs formulaNode }

func (n minNode) eval(g *Grid) (float64, error) {
	l, err := n.lhs.eval(g)
	if err != nil {
		return 0, err
	}
	r, err := n.rhs.eval(g)
	if err != nil {
		return 0, err
	}
	return math.Min(l, r), nil
}

type literalNode float64

func (n literalNode) eval(*Grid) (float64, error) { return float64(n), nil }

// Formulas is a relative stat's up-to-three named formula bundle.
type Formulas map[FormulaKey]formulaNode

// ParseFormulas parses a single string of ';'-separated "key:expression"
// pairs (spec.md §4.1); each expression is independently compiled to RPN.
func ParseFormulas(bundle string) (Formulas, error) {
	result := make(Formulas)

	for _, part := range strings.Split(bundle, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		keyAndExpr := strings.SplitN(part, ":", 2)
		if len(keyAndExpr) != 2 || len(keyAndExpr[0]) == 0 {
			return nil, fmt.Errorf("stats: malformed formula bundle entry %q", part)
		}

		key := FormulaKey(keyAndExpr[0][0])
		if key != KeyCondition && key != KeyFunction && key != KeyBound {
			return nil, fmt.Errorf("stats: unknown formula key %q", keyAndExpr[0])
		}

		rpn, err := expr.Compile(keyAndExpr[1])
		if err != nil {
			return nil, err
		}
		if len(rpn) == 1 && rpn[0].Kind == expr.Number {
			result[key] = literalNode(rpn[0].Number)
		} else {
			result[key] = tokenNode(rpn)
		}
	}

	if _, ok := result[KeyFunction]; !ok {
		return nil, fmt.Errorf("stats: formula bundle %q is missing mandatory 'f' entry", bundle)
	}

	return result, nil
}

// Evaluate runs the relative-stat algorithm of spec.md §4.2.1.
func (f Formulas) Evaluate(base float64, g *Grid) (float64, error) {
	if cond, ok := f[KeyCondition]; ok {
		v, err := cond.eval(g)
		if err != nil {
			return 0, err
		}
		if v == 0 {
			return base, nil
		}
	}

	fn, ok := f[KeyFunction]
	if !ok {
		return 0, fmt.Errorf("stats: relative stat has no 'f' formula")
	}
	v, err := fn.eval(g)
	if err != nil {
		return 0, err
	}

	if bound, ok := f[KeyBound]; ok {
		m, err := bound.eval(g)
		if err != nil {
			return 0, err
		}
		v = math.Min(v, m)
	}

	return base + v, nil
}

// fuseFormulas combines two formula bundles sharing a qualifier, per
// spec.md §4.2's key-wise combination rules.
func fuseFormulas(l, r Formulas) Formulas {
	result := make(Formulas)

	lc, lcOk := l[KeyCondition]
	rc, rcOk := r[KeyCondition]
	switch {
	case lcOk && rcOk:
		result[KeyCondition] = andNode{lhs: lc, rhs: rc}
	case lcOk:
		result[KeyCondition] = lc
	case rcOk:
		result[KeyCondition] = rc
	}

	lf, lfOk := l[KeyFunction]
	rf, rfOk := r[KeyFunction]
	switch {
	case lfOk && rfOk:
		result[KeyFunction] = sumNode{lhs: lf, rhs: rf}
	case lfOk:
		result[KeyFunction] = lf
	case rfOk:
		result[KeyFunction] = rf
	}

	lm, lmOk := l[KeyBound]
	rm, rmOk := r[KeyBound]
	switch {
	case lmOk && rmOk:
		if llit, ok := lm.(literalNode); ok {
			if rlit, ok := rm.(literalNode); ok {
				result[KeyBound] = literalNode(math.Min(float64(llit), float64(rlit)))
				break
			}
		}
		result[KeyBound] = minNode{lhs: lm, rhs: rm}
	case lmOk:
		result[KeyBound] = lm
	case rmOk:
		result[KeyBound] = rm
	}

	return result
}
