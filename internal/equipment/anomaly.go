package equipment

import "github.com/nightsky-studio/zzzcalc/internal/stats"

// Anomaly is a single-formula, AP-scaled ability (spec.md §3).
type Anomaly struct {
	Name    string
	Scale   float64
	Element *stats.Element // optional override; nil means "use agent.element"
	Buffs   *stats.Grid    // optional
}

// CanCrit reports whether the anomaly's buffs grid carries both
// CritRate and CritDmg under Tag::Anomaly (spec.md §3).
func (a Anomaly) CanCrit() bool {
	if a.Buffs == nil {
		return false
	}
	return a.Buffs.Contains(stats.CritRate, stats.Anomaly) && a.Buffs.Contains(stats.CritDmg, stats.Anomaly)
}

// ResolveElement returns the anomaly's own element override, or the
// agent's element if none was set.
func (a Anomaly) ResolveElement(agentElement stats.Element) stats.Element {
	if a.Element != nil {
		return *a.Element
	}
	return agentElement
}
