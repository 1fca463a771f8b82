package equipment

import (
	"github.com/nightsky-studio/zzzcalc/internal/apierr"
	"github.com/nightsky-studio/zzzcalc/internal/stats"
)

// Slot is one of the six disc-piece mount points (spec.md §4.4).
type Slot int

const (
	Slot1 Slot = 1 + iota
	Slot2
	Slot3
	Slot4
	Slot5
	Slot6
)

// slotMainStats is the fixed slot → allowed-main-stat table. Slots 1-3
// force a single id; slots 4-6 restrict to a closed set.
var slotMainStats = map[Slot][]stats.StatId{
	Slot1: {stats.HpFlat},
	Slot2: {stats.AtkFlat},
	Slot3: {stats.DefFlat},
	Slot4: {stats.AtkRatio, stats.HpRatio, stats.DefRatio, stats.Ap, stats.CritRate, stats.CritDmg},
	Slot5: {
		stats.AtkRatio, stats.HpRatio, stats.DefRatio, stats.DefPenRatio,
		stats.PhysRatio, stats.FireRatio, stats.IceRatio, stats.ElectricRatio, stats.EtherRatio,
	},
	Slot6: {stats.AtkRatio, stats.HpRatio, stats.DefRatio, stats.AmRatio, stats.ErRatio, stats.ImpactRatio},
}

// ValidMainStat reports whether id is an allowed main stat for slot.
func ValidMainStat(slot Slot, id stats.StatId) bool {
	allowed, ok := slotMainStats[slot]
	if !ok {
		return false
	}
	for _, a := range allowed {
		if a == id {
			return true
		}
	}
	return false
}

// magnitude is a rarity-indexed {B, A, S} triple.
type magnitude [3]float64

// mainStatMagnitude is the fixed main-stat value table, rarity-indexed
// (B=0, A=1, S=2); values scale per §4.4.
var mainStatMagnitude = map[stats.StatId]magnitude{
	stats.HpFlat:       {550, 715, 880},
	stats.AtkFlat:       {35, 45.5, 56},
	stats.DefFlat:       {35, 45.5, 56},
	stats.HpRatio:       {0.15, 0.195, 0.24},
	stats.AtkRatio:      {0.15, 0.195, 0.24},
	stats.DefRatio:      {0.24, 0.312, 0.384},
	stats.Ap:            {9, 11.7, 14.4},
	stats.CritRate:      {0.08, 0.104, 0.128},
	stats.CritDmg:       {0.16, 0.208, 0.256},
	stats.DefPenRatio:   {0.1, 0.13, 0.16},
	stats.PhysRatio:     {0.15, 0.195, 0.24},
	stats.FireRatio:     {0.15, 0.195, 0.24},
	stats.IceRatio:      {0.15, 0.195, 0.24},
	stats.ElectricRatio: {0.15, 0.195, 0.24},
	stats.EtherRatio:    {0.15, 0.195, 0.24},
	stats.AmRatio:       {0.15, 0.195, 0.24},
	stats.ErRatio:       {0.16, 0.208, 0.256},
	stats.ImpactRatio:   {0.15, 0.195, 0.24},
}

// subStatMagnitude is the fixed per-level sub-stat value table.
// Sub-stat magnitude at level L is table[id][rarity_index] * (L+1).
var subStatMagnitude = map[stats.StatId]magnitude{
	stats.HpFlat:     {112, 129, 147},
	stats.AtkFlat:     {7, 8, 9},
	stats.DefFlat:     {9, 10, 11.5},
	stats.HpRatio:     {0.03, 0.034, 0.039},
	stats.AtkRatio:    {0.03, 0.034, 0.039},
	stats.DefRatio:    {0.048, 0.054, 0.062},
	stats.CritRate:    {0.024, 0.027, 0.031},
	stats.CritDmg:     {0.048, 0.054, 0.062},
	stats.AbRate:      {0.036, 0.04, 0.046},
	stats.AmTotal:     {3, 4, 5},
	stats.ImpactTotal: {3, 4, 5},
}

// MainStatMagnitude resolves a disc piece's main-stat base value.
func MainStatMagnitude(id stats.StatId, rarity stats.Rarity) (float64, error) {
	idx, err := rarity.Index()
	if err != nil {
		return 0, err
	}
	m, ok := mainStatMagnitude[id]
	if !ok {
		return 0, apierr.Newf(apierr.DomainViolation, "equipment: %s has no main-stat magnitude table", id)
	}
	return m[idx], nil
}

// SubStatMagnitude resolves a disc piece's sub-stat base value at level.
func SubStatMagnitude(id stats.StatId, rarity stats.Rarity, level int) (float64, error) {
	idx, err := rarity.Index()
	if err != nil {
		return 0, err
	}
	m, ok := subStatMagnitude[id]
	if !ok {
		return 0, apierr.Newf(apierr.DomainViolation, "equipment: %s has no sub-stat magnitude table", id)
	}
	return m[idx] * float64(level+1), nil
}
