package stats

import "fmt"

// Speciality is an agent's combat role.
type Speciality uint8

const (
	Attack Speciality = iota
	SpecialityAnomaly
	Stun
	Support
	Defense

	specialityCount
)

var specialityNames = [...]string{"Attack", "Anomaly", "Stun", "Support", "Defense"}

func (s Speciality) String() string {
	if int(s) < len(specialityNames) {
		return specialityNames[s]
	}
	return fmt.Sprintf("Speciality(%d)", uint8(s))
}

func ParseSpeciality(name string) (Speciality, error) {
	for i, n := range specialityNames {
		if n == name {
			return Speciality(i), nil
		}
	}
	return Attack, fmt.Errorf("stats: unknown speciality %q", name)
}

// Rarity is the closed rarity set; RarityNotSet is the zero value so
// an unset builder field is distinguishable from a valid rarity.
type Rarity uint8

const (
	RarityNotSet Rarity = 0
	RarityB      Rarity = 2
	RarityA      Rarity = 3
	RarityS      Rarity = 4
)

func (r Rarity) String() string {
	switch r {
	case RarityB:
		return "B"
	case RarityA:
		return "A"
	case RarityS:
		return "S"
	default:
		return "NotSet"
	}
}

// Index returns the 0/1/2 column index into the magnitude tables in
// internal/equipment/discdata.go (spec.md §4.4: 2→B=0, 3→A=1, 4→S=2).
func (r Rarity) Index() (int, error) {
	switch r {
	case RarityB:
		return 0, nil
	case RarityA:
		return 1, nil
	case RarityS:
		return 2, nil
	default:
		return 0, fmt.Errorf("stats: rarity is not set")
	}
}

func ParseRarity(s string) (Rarity, error) {
	switch s {
	case "B":
		return RarityB, nil
	case "A":
		return RarityA, nil
	case "S":
		return RarityS, nil
	default:
		return RarityNotSet, fmt.Errorf("stats: unknown rarity %q", s)
	}
}

// RarityFromInt resolves the request-JSON integer encoding of rarity
// (spec.md §6: 2, 3, 4), which matches the enum's own numeric values.
func RarityFromInt(v int) (Rarity, error) {
	switch Rarity(v) {
	case RarityB, RarityA, RarityS:
		return Rarity(v), nil
	default:
		return RarityNotSet, fmt.Errorf("stats: unknown rarity %d", v)
	}
}
