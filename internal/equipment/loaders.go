package equipment

import (
	"encoding/json"

	"github.com/nightsky-studio/zzzcalc/internal/apierr"
	"github.com/nightsky-studio/zzzcalc/internal/stats"
)

// The structs below are the on-disk wire shapes (spec.md §6: "the core
// requires only parsed trees with the fields enumerated in §3"). Each
// Load* function is a folder loader registered with the cached object
// manager (spec.md §4.3): it accepts the raw bytes of one definition
// file and produces a typed, owned, fully-built product.

type scaleRowDTO struct {
	MotionValue float64 `json:"motion_value"`
	Daze        float64 `json:"daze"`
	Element     string  `json:"element"`
}

type skillDTO struct {
	Name   string        `json:"name"`
	Tags   []string      `json:"tags"`
	Scales []scaleRowDTO `json:"scales"`
	Buffs  json.RawMessage `json:"buffs,omitempty"`
}

type anomalyDTO struct {
	Name    string          `json:"name"`
	Scale   float64         `json:"scale"`
	Element *string         `json:"element,omitempty"`
	Buffs   json.RawMessage `json:"buffs,omitempty"`
}

type abilityDTO struct {
	Skill   *skillDTO   `json:"skill,omitempty"`
	Anomaly *anomalyDTO `json:"anomaly,omitempty"`
}

type agentDTO struct {
	Id         int                   `json:"id"`
	Name       string                `json:"name"`
	Speciality string                `json:"speciality"`
	Element    string                `json:"element"`
	Rarity     string                `json:"rarity"`
	Stats      json.RawMessage       `json:"stats"`
	Abilities  map[string]abilityDTO `json:"abilities"`
}

// LoadAgent builds an Agent from its on-disk JSON definition.
func LoadAgent(raw json.RawMessage) (*Agent, error) {
	var dto agentDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "equipment: malformed agent definition")
	}

	speciality, err := stats.ParseSpeciality(dto.Speciality)
	if err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "equipment: agent speciality")
	}
	element, err := stats.ParseElement(dto.Element)
	if err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "equipment: agent element")
	}
	rarity, err := stats.ParseRarity(dto.Rarity)
	if err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "equipment: agent rarity")
	}

	grid := stats.NewGrid()
	if len(dto.Stats) > 0 {
		grid, err = stats.GridFromJSON(dto.Stats, stats.Universal)
		if err != nil {
			return nil, err
		}
	}

	builder := NewAgentBuilder().
		Id(dto.Id).Name(dto.Name).Speciality(speciality).Element(element).Rarity(rarity).
		AddStats(grid)

	for name, a := range dto.Abilities {
		ability, err := buildAbility(name, a)
		if err != nil {
			return nil, err
		}
		builder.AddAbility(ability)
	}

	return builder.Build()
}

func buildAbility(name string, dto abilityDTO) (Ability, error) {
	switch {
	case dto.Skill != nil:
		scales := make([]ScaleRow, 0, len(dto.Skill.Scales))
		for _, row := range dto.Skill.Scales {
			el, err := stats.ParseElement(row.Element)
			if err != nil {
				return Ability{}, apierr.Wrap(apierr.ParseError, err, "equipment: skill scale element")
			}
			scales = append(scales, ScaleRow{MotionValue: row.MotionValue, Daze: row.Daze, Element: el})
		}
		tags := make([]stats.Tag, 0, len(dto.Skill.Tags))
		for _, t := range dto.Skill.Tags {
			tag, err := stats.ParseTag(t)
			if err != nil {
				return Ability{}, apierr.Wrap(apierr.ParseError, err, "equipment: skill tag")
			}
			tags = append(tags, tag)
		}
		var buffs *stats.Grid
		if len(dto.Skill.Buffs) > 0 {
			g, err := stats.GridFromJSON(dto.Skill.Buffs, stats.Universal)
			if err != nil {
				return Ability{}, err
			}
			buffs = g
		}
		return NewSkillAbility(Skill{Name: dto.Skill.Name, Tags: tags, Scales: scales, Buffs: buffs}), nil

	case dto.Anomaly != nil:
		var elPtr *stats.Element
		if dto.Anomaly.Element != nil {
			el, err := stats.ParseElement(*dto.Anomaly.Element)
			if err != nil {
				return Ability{}, apierr.Wrap(apierr.ParseError, err, "equipment: anomaly element")
			}
			elPtr = &el
		}
		var buffs *stats.Grid
		if len(dto.Anomaly.Buffs) > 0 {
			g, err := stats.GridFromJSON(dto.Anomaly.Buffs, stats.Universal)
			if err != nil {
				return Ability{}, err
			}
			buffs = g
		}
		return NewAnomalyAbility(Anomaly{Name: dto.Anomaly.Name, Scale: dto.Anomaly.Scale, Element: elPtr, Buffs: buffs}), nil

	default:
		return Ability{}, apierr.Newf(apierr.ParseError, "equipment: ability %q has neither skill nor anomaly", name)
	}
}

type weaponDTO struct {
	Id           int             `json:"id"`
	Name         string          `json:"name"`
	Rarity       string          `json:"rarity"`
	Speciality   string          `json:"speciality"`
	MainStat     json.RawMessage `json:"main_stat"`
	SubStat      json.RawMessage `json:"sub_stat"`
	PassiveStats json.RawMessage `json:"passive_stats,omitempty"`
}

// LoadWeapon builds a Weapon from its on-disk JSON definition.
func LoadWeapon(raw json.RawMessage) (*Weapon, error) {
	var dto weaponDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "equipment: malformed weapon definition")
	}
	rarity, err := stats.ParseRarity(dto.Rarity)
	if err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "equipment: weapon rarity")
	}
	speciality, err := stats.ParseSpeciality(dto.Speciality)
	if err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "equipment: weapon speciality")
	}

	mainStat, err := stats.StatFromJSON(dto.MainStat, stats.Universal)
	if err != nil {
		return nil, err
	}
	subStat, err := stats.StatFromJSON(dto.SubStat, stats.Universal)
	if err != nil {
		return nil, err
	}

	builder := NewWeaponBuilder().
		Id(dto.Id).Name(dto.Name).Rarity(rarity).Speciality(speciality).
		MainStat(mainStat).SubStat(subStat)

	if len(dto.PassiveStats) > 0 {
		passives, err := stats.GridFromJSON(dto.PassiveStats, stats.Universal)
		if err != nil {
			return nil, err
		}
		builder.AddPassiveStats(passives)
	}

	return builder.Build()
}

type discPieceDTO struct {
	DiscId   int      `json:"disc_id"`
	Slot     int      `json:"slot"`
	Rarity   string   `json:"rarity"`
	MainStat string   `json:"main_stat"`
	MainTag  string   `json:"main_tag,omitempty"`
	SubStats []struct {
		Id    string `json:"id"`
		Tag   string `json:"tag,omitempty"`
		Level int    `json:"level"`
	} `json:"sub_stats"`
}

// LoadDiscPiece builds a DiscPiece from its on-disk JSON definition.
func LoadDiscPiece(raw json.RawMessage) (*DiscPiece, error) {
	var dto discPieceDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "equipment: malformed disc piece definition")
	}
	rarity, err := stats.ParseRarity(dto.Rarity)
	if err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "equipment: disc piece rarity")
	}
	mainId, err := stats.ParseStatId(dto.MainStat)
	if err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "equipment: disc piece main stat")
	}
	mainTag := stats.Universal
	if dto.MainTag != "" {
		mainTag, err = stats.ParseTag(dto.MainTag)
		if err != nil {
			return nil, apierr.Wrap(apierr.ParseError, err, "equipment: disc piece main tag")
		}
	}

	builder := NewDiscPieceBuilder().
		DiscId(dto.DiscId).InSlot(Slot(dto.Slot)).Rarity(rarity).
		MainStat(mainId, mainTag)

	for _, sub := range dto.SubStats {
		subId, err := stats.ParseStatId(sub.Id)
		if err != nil {
			return nil, apierr.Wrap(apierr.ParseError, err, "equipment: disc piece sub stat")
		}
		subTag := stats.Universal
		if sub.Tag != "" {
			subTag, err = stats.ParseTag(sub.Tag)
			if err != nil {
				return nil, apierr.Wrap(apierr.ParseError, err, "equipment: disc piece sub tag")
			}
		}
		builder.AddSubStat(subId, subTag, sub.Level)
	}

	return builder.Build()
}

type discSetDTO struct {
	Id   int             `json:"id"`
	Name string          `json:"name"`
	P2   json.RawMessage `json:"p2,omitempty"`
	P4   json.RawMessage `json:"p4,omitempty"`
}

// LoadDiscSet builds a DiscSet from its on-disk JSON definition.
func LoadDiscSet(raw json.RawMessage) (*DiscSet, error) {
	var dto discSetDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "equipment: malformed disc set definition")
	}

	builder := NewDiscSetBuilder().Id(dto.Id).Name(dto.Name)

	if len(dto.P2) > 0 {
		p2, err := stats.GridFromJSON(dto.P2, stats.Universal)
		if err != nil {
			return nil, err
		}
		builder.AddP2Stats(p2)
	}
	if len(dto.P4) > 0 {
		p4, err := stats.GridFromJSON(dto.P4, stats.Universal)
		if err != nil {
			return nil, err
		}
		builder.AddP4Stats(p4)
	}

	return builder.Build()
}

type enemyDTO struct {
	DmgReduction float64            `json:"dmg_reduction"`
	Defense      float64            `json:"defense"`
	StunMult     float64            `json:"stun_mult"`
	IsStunned    bool               `json:"is_stunned"`
	Resistance   map[string]float64 `json:"resistance"`
}

// LoadEnemy builds the fixed enemy profile (spec.md §3) from its
// on-disk JSON definition. The profile is registered under a single
// well-known id ("default") since the system targets one fixed enemy
// rather than a roster.
func LoadEnemy(raw json.RawMessage) (*Enemy, error) {
	var dto enemyDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "equipment: malformed enemy definition")
	}

	enemy := &Enemy{
		DmgReduction: dto.DmgReduction,
		Defense:      dto.Defense,
		StunMult:     dto.StunMult,
		IsStunned:    dto.IsStunned,
	}
	for name, v := range dto.Resistance {
		el, err := stats.ParseElement(name)
		if err != nil {
			return nil, apierr.Wrap(apierr.ParseError, err, "equipment: enemy resistance element")
		}
		enemy.Resistance[el] = v
	}
	return enemy, nil
}

type rotationDTO struct {
	Cells []string `json:"cells"`
}

// LoadRotation builds a Rotation from its on-disk JSON definition.
func LoadRotation(raw json.RawMessage) (*Rotation, error) {
	var dto rotationDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "equipment: malformed rotation definition")
	}
	rot, err := ParseInline(dto.Cells)
	if err != nil {
		return nil, err
	}
	return &rot, nil
}
