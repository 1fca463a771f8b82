package equipment

import "github.com/nightsky-studio/zzzcalc/internal/apierr"

// AbilityKind discriminates the two ability variants. Go has no
// tagged union, so Ability is a flat struct with a Kind discriminant,
// matching the same pattern used for stats.Stat.
type AbilityKind uint8

const (
	AbilitySkill AbilityKind = iota
	AbilityAnomalyKind
)

// Ability is a named Skill or Anomaly exposed by an agent.
type Ability struct {
	Kind    AbilityKind
	Skill   Skill
	Anomaly Anomaly
}

func NewSkillAbility(s Skill) Ability     { return Ability{Kind: AbilitySkill, Skill: s} }
func NewAnomalyAbility(a Anomaly) Ability { return Ability{Kind: AbilityAnomalyKind, Anomaly: a} }

// Name returns the underlying ability's name regardless of kind.
func (a Ability) Name() string {
	if a.Kind == AbilitySkill {
		return a.Skill.Name
	}
	return a.Anomaly.Name
}

// errUnknownAbility builds the fatal MissingKey error for a rotation
// cell referencing a name absent from the agent's ability table.
func errUnknownAbility(name string) error {
	return apierr.Newf(apierr.MissingKey, "equipment: agent has no ability named %q", name)
}
