package stats

import "fmt"

// Tag scopes a stat to the ability category it applies to. Universal
// means the stat applies regardless of the ability's own tag.
type Tag uint8

const (
	Universal Tag = iota
	Anomaly
	Basic
	Dash
	Counter
	QuickAssist
	FollowupAssist
	DefensiveAssist
	EvasiveAssist
	Special
	ExSpecial
	Chain
	Ultimate

	tagCount
)

var tagNames = [...]string{
	"Universal", "Anomaly", "Basic", "Dash", "Counter",
	"QuickAssist", "FollowupAssist", "DefensiveAssist", "EvasiveAssist",
	"Special", "ExSpecial", "Chain", "Ultimate",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// ParseTag resolves a tag name as used in on-disk definitions.
func ParseTag(name string) (Tag, error) {
	for i, n := range tagNames {
		if n == name {
			return Tag(i), nil
		}
	}
	return Universal, fmt.Errorf("stats: unknown tag %q", name)
}
