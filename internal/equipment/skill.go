package equipment

import (
	"github.com/nightsky-studio/zzzcalc/internal/apierr"
	"github.com/nightsky-studio/zzzcalc/internal/stats"
)

// ScaleRow is one of a skill's motion-value rows, selected by a
// rotation cell's index (spec.md §3).
type ScaleRow struct {
	MotionValue float64
	Daze        float64
	Element     stats.Element
}

// Skill is a multi-hit ability scaled off AtkTotal (spec.md §3).
type Skill struct {
	Name   string
	Tags   []stats.Tag
	Scales []ScaleRow
	Buffs  *stats.Grid // optional
}

// ScaleAt resolves a rotation cell's 1-based index into the skill's
// scale table.
func (s Skill) ScaleAt(index int) (ScaleRow, error) {
	i := index - 1
	if i < 0 || i >= len(s.Scales) {
		return ScaleRow{}, apierr.Newf(apierr.MissingKey, "equipment: skill %q has no scale row at index %d", s.Name, index)
	}
	return s.Scales[i], nil
}

// PrimaryTag is the tag used by the damage formula: skill.tag[0]
// per spec.md §4.5.
func (s Skill) PrimaryTag() (stats.Tag, error) {
	if len(s.Tags) == 0 {
		return stats.Universal, apierr.Newf(apierr.DomainViolation, "equipment: skill %q has no tags", s.Name)
	}
	return s.Tags[0], nil
}
