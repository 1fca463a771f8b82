package damage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nightsky-studio/zzzcalc/internal/equipment"
	"github.com/nightsky-studio/zzzcalc/internal/stats"
)

const tolerance = 0.01

func baselineEnemy(element stats.Element, res float64) equipment.Enemy {
	var e equipment.Enemy
	e.Defense = 953
	e.DmgReduction = 0.2
	e.Resistance[element] = res
	return e
}

func baselineAgent(element stats.Element, extraStats *stats.Grid, skill equipment.Skill) *equipment.Agent {
	grid := stats.NewGrid()
	grid.Set(stats.NewRegular(stats.AtkBase, stats.Universal, 100))
	if extraStats != nil {
		grid.AddGrid(extraStats)
	}
	return &equipment.Agent{
		Name:    "Test Agent",
		Element: element,
		Stats:   grid,
		Abilities: map[string]equipment.Ability{
			"basic_attack": equipment.NewSkillAbility(skill),
		},
	}
}

func basicSkill(element stats.Element, motionValue float64) equipment.Skill {
	return equipment.Skill{
		Name: "basic_attack",
		Tags: []stats.Tag{stats.Basic},
		Scales: []equipment.ScaleRow{
			{MotionValue: motionValue, Element: element},
		},
	}
}

func rotation(cmd string, index int) equipment.Rotation {
	return equipment.Rotation{Cells: []equipment.Cell{{Command: cmd, Index: index}}}
}

func TestSkillDamageNoStatsNoBuffsBaselineEnemy(t *testing.T) {
	agent := baselineAgent(stats.Fire, nil, basicSkill(stats.Fire, 100))
	req := Request{
		Agent:    agent,
		Rotation: rotation("basic_attack", 1),
		Enemy:    baselineEnemy(stats.Fire, 0.2),
	}

	result, err := Evaluate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.InDelta(t, 58.175, result.Total, tolerance)
}

func TestSkillDamageStunnedEnemy(t *testing.T) {
	agent := baselineAgent(stats.Fire, nil, basicSkill(stats.Fire, 100))
	enemy := baselineEnemy(stats.Fire, 0.2)
	enemy.IsStunned = true
	enemy.StunMult = 1.5

	result, err := Evaluate(Request{Agent: agent, Rotation: rotation("basic_attack", 1), Enemy: enemy})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.InDelta(t, 72.719, result.Total, tolerance)
}

func TestSkillDamageCritContribution(t *testing.T) {
	critStats := stats.NewGrid()
	critStats.Set(stats.NewRegular(stats.CritRate, stats.Universal, 0.5))
	critStats.Set(stats.NewRegular(stats.CritDmg, stats.Universal, 1.0))

	agent := baselineAgent(stats.Fire, critStats, basicSkill(stats.Fire, 100))
	result, err := Evaluate(Request{Agent: agent, Rotation: rotation("basic_attack", 1), Enemy: baselineEnemy(stats.Fire, 0.2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.InDelta(t, 87.263, result.Total, tolerance)
}

func TestSkillDamageElementalRatioStacking(t *testing.T) {
	ratioStats := stats.NewGrid()
	ratioStats.Set(stats.NewRegular(stats.DmgRatio, stats.Universal, 0.1))
	ratioStats.Set(stats.NewRegular(stats.FireRatio, stats.Universal, 0.2))

	agent := baselineAgent(stats.Fire, ratioStats, basicSkill(stats.Fire, 100))
	result, err := Evaluate(Request{Agent: agent, Rotation: rotation("basic_attack", 1), Enemy: baselineEnemy(stats.Fire, 0.2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.InDelta(t, 75.628, result.Total, tolerance)
}

func TestAnomalyDamageNoApDefaultScales(t *testing.T) {
	apStats := stats.NewGrid()
	apStats.Set(stats.NewRegular(stats.Ap, stats.Universal, 100))

	grid := stats.NewGrid()
	grid.Set(stats.NewRegular(stats.AtkBase, stats.Universal, 100))
	grid.AddGrid(apStats)

	agent := &equipment.Agent{
		Name:    "Test Agent",
		Element: stats.Fire,
		Stats:   grid,
		Abilities: map[string]equipment.Ability{
			"anomaly_proc": equipment.NewAnomalyAbility(equipment.Anomaly{Name: "anomaly_proc", Scale: 500}),
		},
	}

	result, err := Evaluate(Request{
		Agent:    agent,
		Rotation: rotation("anomaly_proc", 0),
		Enemy:    baselineEnemy(stats.Fire, 0.2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.InDelta(t, 581.75, result.Total, 0.1)
}

func TestMissingAbilityIsMissingKeyWithNoPartialDamage(t *testing.T) {
	agent := baselineAgent(stats.Fire, nil, basicSkill(stats.Fire, 100))
	_, err := Evaluate(Request{
		Agent:    agent,
		Rotation: rotation("does_not_exist", 1),
		Enemy:    baselineEnemy(stats.Fire, 0.2),
	})
	if err == nil {
		t.Fatal("expected an error for an unknown ability name")
	}
}

func TestAggregateStatsSumsLoadoutAndSetBonuses(t *testing.T) {
	agentStats := stats.NewGrid()
	agentStats.Set(stats.NewRegular(stats.HpFlat, stats.Universal, 1000))
	agent := &equipment.Agent{Stats: agentStats}

	weapon := &equipment.Weapon{
		MainStat:     stats.NewRegular(stats.AtkFlat, stats.Universal, 50),
		SubStat:      stats.NewRegular(stats.CritRate, stats.Universal, 0.05),
		PassiveStats: stats.NewGrid(),
	}

	p2 := stats.NewGrid()
	p2.Set(stats.NewRegular(stats.AtkRatio, stats.Universal, 0.1))
	set := &equipment.DiscSet{P2: p2, P4: stats.NewGrid()}

	discs := []*equipment.DiscPiece{
		{DiscId: 1, MainStat: stats.NewRegular(stats.HpFlat, stats.Universal, 10)},
		{DiscId: 1, MainStat: stats.NewRegular(stats.AtkFlat, stats.Universal, 10)},
	}

	grid := AggregateStats(Request{
		Agent:  agent,
		Weapon: weapon,
		Discs:  discs,
		Sets:   map[int]*equipment.DiscSet{1: set},
	})

	assert.Equal(t, 1010.0, grid.Get(stats.HpFlat, stats.Universal))
	assert.Equal(t, 60.0, grid.Get(stats.AtkFlat, stats.Universal))
	assert.Equal(t, 0.1, grid.Get(stats.AtkRatio, stats.Universal))
}
