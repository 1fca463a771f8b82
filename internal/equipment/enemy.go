package equipment

import "github.com/nightsky-studio/zzzcalc/internal/stats"

// Level coefficients fixed by spec.md §3: a level-60 enemy with a
// global defense coefficient of 794 and a buff-level multiplier of 2.0.
const (
	LevelCoefficient = 794.0
	BuffLevelMult    = 2.0
)

// Enemy is the fixed damage-receiving profile (spec.md §3).
type Enemy struct {
	DmgReduction float64
	Defense      float64
	StunMult     float64
	Resistance   [stats.ElementCount]float64
	IsStunned    bool
}
