package stats

import "testing"

func TestAddRegularPlusRegularSums(t *testing.T) {
	g := NewGrid()
	g.Add(NewRegular(AtkFlat, Basic, 10))
	g.Add(NewRegular(AtkFlat, Basic, 5))

	if got := g.Get(AtkFlat, Basic); got != 15 {
		t.Fatalf("expected 15, got %v", got)
	}
}

func TestAddRelativePlusRegularSumsBaseAndEvaluatesFormula(t *testing.T) {
	g := NewGrid()
	g.Set(NewRegular(AtkRatio, Universal, 0.25))

	rel, err := NewRelativeFromString(AtkFlat, Basic, 10, "f:AtkRatio")
	if err != nil {
		t.Fatalf("failed to build relative stat: %v", err)
	}
	g.Add(rel)
	g.Add(NewRegular(AtkFlat, Basic, 5))

	got := g.Get(AtkFlat, Basic)
	want := 10 + 5 + g.GetSummed(AtkRatio, Universal)
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAddRelativePlusRelativeBothConditionalContributesOnlyWhenBothNonZero(t *testing.T) {
	g := NewGrid()
	g.Set(NewRegular(CritRate, Universal, 1))  // truthy condition source for lhs
	g.Set(NewRegular(CritDmg, Universal, 0))   // falsy condition source for rhs

	lhs, err := NewRelativeFromString(Vulnerability, Basic, 0, "c:CritRate;f:1")
	if err != nil {
		t.Fatal(err)
	}
	rhs, err := NewRelativeFromString(Vulnerability, Basic, 0, "c:CritDmg;f:1")
	if err != nil {
		t.Fatal(err)
	}

	g.Add(lhs)
	g.Add(rhs)

	if got := g.Get(Vulnerability, Basic); got != 0 {
		t.Fatalf("expected 0 because one condition is false, got %v", got)
	}

	g2 := NewGrid()
	g2.Set(NewRegular(CritRate, Universal, 1))
	g2.Set(NewRegular(CritDmg, Universal, 1))
	g2.Add(lhs)
	g2.Add(rhs)
	if got := g2.Get(Vulnerability, Basic); got != 2 {
		t.Fatalf("expected both formulas to contribute when both conditions true, got %v", got)
	}
}

func TestGetSummedEqualsGetForUniversalTag(t *testing.T) {
	g := NewGrid()
	g.Set(NewRegular(HpFlat, Universal, 42))

	if g.GetSummed(HpFlat, Universal) != g.Get(HpFlat, Universal) {
		t.Fatal("GetSummed(id, Universal) must equal Get(id, Universal)")
	}
}

func TestGridReadsDoNotMutate(t *testing.T) {
	g := NewGrid()
	g.Set(NewRegular(DefFlat, Basic, 7))

	before := len(g.content)
	_ = g.Get(DefFlat, Basic)
	_ = g.GetSummed(DefFlat, Basic)
	_ = g.Contains(DefFlat, Basic)

	if len(g.content) != before {
		t.Fatal("grid reads must not mutate entry count")
	}
}

func TestDiscreteQualifiersNeverCollide(t *testing.T) {
	g := NewGrid()
	g.Set(NewRegular(AtkFlat, Basic, 1))
	g.Set(NewRegular(AtkFlat, Dash, 2))

	if g.Get(AtkFlat, Basic) == g.Get(AtkFlat, Dash) {
		t.Fatal("distinct tags under the same id must not collide")
	}
}

func TestBoundUpperClampsComputedValue(t *testing.T) {
	g := NewGrid()
	g.Set(NewRegular(CritRate, Universal, 10))

	rel, err := NewRelativeFromString(AtkRatio, Basic, 0, "f:CritRate;m:2")
	if err != nil {
		t.Fatal(err)
	}
	g.Add(rel)

	if got := g.Get(AtkRatio, Basic); got != 2 {
		t.Fatalf("expected value clamped to bound 2, got %v", got)
	}
}
