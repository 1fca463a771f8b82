// Package damage implements the damage calculator of spec.md §4.5: it
// aggregates a loadout's stats once per request, then evaluates a
// rotation cell by cell, dispatching each to the skill or anomaly
// formula.
package damage

import (
	"math"

	"github.com/nightsky-studio/zzzcalc/internal/equipment"
	"github.com/nightsky-studio/zzzcalc/internal/stats"
)

// Level coefficients fixed at level 60 (spec.md §3, §4.5).
const (
	Kc            = 794.0
	BuffLevelMult = 2.0
)

// Request is the resolved input to a damage calculation: every
// reference (agent id, weapon id, disc set ids, rotation) has already
// been looked up through the cache (spec.md §4.5 "Inputs").
type Request struct {
	Agent    *equipment.Agent
	Weapon   *equipment.Weapon
	Discs    []*equipment.DiscPiece
	Sets     map[int]*equipment.DiscSet // keyed by disc set id
	Rotation equipment.Rotation
	Enemy    equipment.Enemy
}

// Step is one rotation cell's resolved damage.
type Step struct {
	Damage float64
	Tags   []string
	Name   string
}

// Result is the calculator's output: the aggregate and the ordered
// per-cell breakdown (spec.md §4.5 "Return (Σ damages, [damage per cell in order])").
type Result struct {
	Total      float64
	PerAbility []Step
}

// AggregateStats builds the request's combined stat grid exactly once
// (spec.md §4.5 "Stat aggregation"): agent stats, weapon main/sub/passive
// stats, each disc's main and sub stats, then 2-piece and 4-piece disc
// set bonuses for every set with enough equipped pieces.
func AggregateStats(req Request) *stats.Grid {
	grid := stats.NewGrid()

	if req.Agent != nil {
		grid.AddGrid(req.Agent.Stats)
	}
	if req.Weapon != nil {
		grid.Add(req.Weapon.MainStat)
		grid.Add(req.Weapon.SubStat)
		grid.AddGrid(req.Weapon.PassiveStats)
	}

	pieceCountBySet := make(map[int]int)
	for _, d := range req.Discs {
		if d == nil {
			continue
		}
		grid.Add(d.MainStat)
		for _, sub := range d.SubStats {
			grid.Add(sub)
		}
		pieceCountBySet[d.DiscId]++
	}

	for discId, count := range pieceCountBySet {
		set, ok := req.Sets[discId]
		if !ok || set == nil {
			continue
		}
		if count >= 2 {
			grid.AddGrid(set.P2)
		}
		if count >= 4 {
			grid.AddGrid(set.P4)
		}
	}

	return grid
}

// Evaluate runs the full rotation against the aggregated stats and
// returns the total and per-cell damage (spec.md §4.5 "Rotation dispatch").
func Evaluate(req Request) (Result, error) {
	grid := AggregateStats(req)

	var result Result
	for _, cell := range req.Rotation.Cells {
		ability, err := req.Agent.Ability(cell.Command)
		if err != nil {
			return Result{}, err
		}

		var step Step
		switch ability.Kind {
		case equipment.AbilitySkill:
			dmg, tag, err := evaluateSkill(grid, req.Agent, ability.Skill, cell.Index, req.Enemy)
			if err != nil {
				return Result{}, err
			}
			step = Step{Damage: dmg, Tags: []string{tag.String()}, Name: ability.Skill.Name}
		default:
			dmg, err := evaluateAnomaly(grid, req.Agent, ability.Anomaly, req.Enemy)
			if err != nil {
				return Result{}, err
			}
			step = Step{Damage: dmg, Tags: []string{stats.Anomaly.String()}, Name: ability.Anomaly.Name}
		}

		result.PerAbility = append(result.PerAbility, step)
		result.Total += step.Damage
	}

	return result, nil
}

// evaluateSkill implements the skill-damage formula of spec.md §4.5.
func evaluateSkill(base *stats.Grid, agent *equipment.Agent, skill equipment.Skill, cellIndex int, enemy equipment.Enemy) (float64, stats.Tag, error) {
	tag, err := skill.PrimaryTag()
	if err != nil {
		return 0, tag, err
	}
	scale, err := skill.ScaleAt(cellIndex)
	if err != nil {
		return 0, tag, err
	}

	working := base.Clone()
	if skill.Buffs != nil {
		working.AddGrid(skill.Buffs)
	}

	atkTotal := computeAtkTotal(working, tag)
	working.Set(stats.NewRegular(stats.AtkTotal, tag, atkTotal))

	baseDmg := scale.MotionValue / 100 * atkTotal
	crit := 1 + working.GetSummed(stats.CritRate, tag)*working.GetSummed(stats.CritDmg, tag)

	dmgRatioElem, err := stats.PlusElement(stats.DmgRatio, scale.Element)
	if err != nil {
		return 0, tag, err
	}
	dmgRatio := 1 + working.GetSummed(stats.DmgRatio, tag) + working.GetSummed(dmgRatioElem, tag)

	taken := 1 - enemy.DmgReduction + working.GetSummed(stats.Vulnerability, tag)
	defMult := computeDefMult(working, tag, enemy)

	resPenElem, err := stats.PlusElement(stats.ResPen, scale.Element)
	if err != nil {
		return 0, tag, err
	}
	resMult := 1 - enemy.Resistance[scale.Element] + working.GetSummed(stats.ResPen, tag) + working.GetSummed(resPenElem, tag)

	stunMult := stunMultiplier(enemy)

	return baseDmg * crit * dmgRatio * taken * defMult * resMult * stunMult, tag, nil
}

// evaluateAnomaly implements the anomaly-damage formula of spec.md §4.5.
func evaluateAnomaly(base *stats.Grid, agent *equipment.Agent, anomaly equipment.Anomaly, enemy equipment.Enemy) (float64, error) {
	tag := stats.Anomaly
	element := anomaly.ResolveElement(agent.Element)

	working := base.Clone()
	if anomaly.Buffs != nil {
		working.AddGrid(anomaly.Buffs)
	}

	atkTotal := computeAtkTotal(working, tag)
	working.Set(stats.NewRegular(stats.AtkTotal, tag, atkTotal))

	// NOTE: the source carries two divergent anomaly formulas
	// (scale*atk vs scale/100*atk); this pins the latter per the
	// second implementation, an explicit, undecided choice rather
	// than a silent fix of ambiguous intent.
	baseDmg := anomaly.Scale / 100 * atkTotal

	crit := 1.0
	if anomaly.CanCrit() {
		crit = 1 + working.Get(stats.CritRate, stats.Anomaly)*working.Get(stats.CritDmg, stats.Anomaly)
	}

	dmgRatioElem, err := stats.PlusElement(stats.DmgRatio, element)
	if err != nil {
		return 0, err
	}
	dmgRatio := 1 + working.Get(stats.DmgRatio, stats.Universal) + working.Get(dmgRatioElem, stats.Universal)
	anomDmgRatio := 1 + working.Get(stats.DmgRatio, stats.Anomaly) + working.Get(dmgRatioElem, stats.Anomaly)
	apMult := working.Get(stats.Ap, stats.Universal) / 100

	taken := 1 - enemy.DmgReduction + working.GetSummed(stats.Vulnerability, tag)
	defMult := computeDefMult(working, tag, enemy)

	resPenElem, err := stats.PlusElement(stats.ResPen, element)
	if err != nil {
		return 0, err
	}
	resMult := 1 - enemy.Resistance[element] + working.GetSummed(stats.ResPen, tag) + working.GetSummed(resPenElem, tag)

	stunMult := stunMultiplier(enemy)

	return baseDmg * crit * dmgRatio * anomDmgRatio * apMult * BuffLevelMult * taken * defMult * resMult * stunMult, nil
}

func computeAtkTotal(g *stats.Grid, tag stats.Tag) float64 {
	atkBase := g.GetSummed(stats.AtkBase, tag)
	atkRatio := g.GetSummed(stats.AtkRatio, tag)
	atkFlat := g.GetSummed(stats.AtkFlat, tag)
	return atkBase*(1+atkRatio) + atkFlat
}

func computeDefMult(g *stats.Grid, tag stats.Tag, enemy equipment.Enemy) float64 {
	defPenRatio := g.GetSummed(stats.DefPenRatio, tag)
	defPenFlat := g.GetSummed(stats.DefPenFlat, tag)
	return Kc / (math.Max(enemy.Defense*(1-defPenRatio)-defPenFlat, 0) + Kc)
}

// stunMultiplier is carried verbatim from the source per spec.md §9's
// open question: it evaluates to 1+enemy.StunMult when stunned, but
// to 1+1=2 (not 1) when not stunned — almost certainly a bug in the
// original, flagged here rather than silently corrected.
func stunMultiplier(enemy equipment.Enemy) float64 {
	if enemy.IsStunned {
		return 1 + enemy.StunMult
	}
	return 1 + 1
}
