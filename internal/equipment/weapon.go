package equipment

import (
	"github.com/nightsky-studio/zzzcalc/internal/apierr"
	"github.com/nightsky-studio/zzzcalc/internal/stats"
)

// Weapon carries a main stat, a sub stat, and a passive-stats grid
// (spec.md §3).
type Weapon struct {
	Id           int
	Name         string
	Rarity       stats.Rarity
	Speciality   stats.Speciality
	MainStat     stats.Stat
	SubStat      stats.Stat
	PassiveStats *stats.Grid
}

type WeaponBuilder struct {
	id             int
	idSet          bool
	name           string
	nameSet        bool
	rarity         stats.Rarity
	rarityChosen   bool
	speciality     stats.Speciality
	specSet        bool
	mainStat       stats.Stat
	mainStatSet    bool
	subStat        stats.Stat
	subStatSet     bool
	passiveStats   *stats.Grid
	built          bool
}

func NewWeaponBuilder() *WeaponBuilder {
	return &WeaponBuilder{passiveStats: stats.NewGrid()}
}

func (b *WeaponBuilder) Id(id int) *WeaponBuilder { b.id, b.idSet = id, true; return b }

func (b *WeaponBuilder) Name(name string) *WeaponBuilder { b.name, b.nameSet = name, true; return b }

func (b *WeaponBuilder) Rarity(r stats.Rarity) *WeaponBuilder {
	b.rarity, b.rarityChosen = r, true
	return b
}

func (b *WeaponBuilder) Speciality(s stats.Speciality) *WeaponBuilder {
	b.speciality, b.specSet = s, true
	return b
}

func (b *WeaponBuilder) MainStat(s stats.Stat) *WeaponBuilder {
	b.mainStat, b.mainStatSet = s, true
	return b
}

func (b *WeaponBuilder) SubStat(s stats.Stat) *WeaponBuilder {
	b.subStat, b.subStatSet = s, true
	return b
}

func (b *WeaponBuilder) AddPassiveStats(g *stats.Grid) *WeaponBuilder {
	b.passiveStats.AddGrid(g)
	return b
}

func (b *WeaponBuilder) IsBuilt() bool {
	return b.idSet && b.nameSet && b.rarityChosen && b.specSet && b.mainStatSet && b.subStatSet
}

func (b *WeaponBuilder) Build() (*Weapon, error) {
	if b.built {
		return nil, apierr.New(apierr.BuilderIncomplete, "equipment: weapon builder already consumed")
	}
	var missing []string
	if !b.idSet {
		missing = append(missing, "id")
	}
	if !b.nameSet {
		missing = append(missing, "name")
	}
	if !b.rarityChosen {
		missing = append(missing, "rarity")
	}
	if !b.specSet {
		missing = append(missing, "speciality")
	}
	if !b.mainStatSet {
		missing = append(missing, "main_stat")
	}
	if !b.subStatSet {
		missing = append(missing, "sub_stat")
	}
	if len(missing) > 0 {
		return nil, apierr.Newf(apierr.BuilderIncomplete, "equipment: weapon missing required fields: %v", missing)
	}
	b.built = true
	return &Weapon{
		Id:           b.id,
		Name:         b.name,
		Rarity:       b.rarity,
		Speciality:   b.speciality,
		MainStat:     b.mainStat,
		SubStat:      b.subStat,
		PassiveStats: b.passiveStats,
	}, nil
}
