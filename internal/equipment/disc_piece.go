package equipment

import (
	"github.com/nightsky-studio/zzzcalc/internal/apierr"
	"github.com/nightsky-studio/zzzcalc/internal/stats"
)

// DiscPiece is one of six equippable stat-bearing items (spec.md §3).
type DiscPiece struct {
	DiscId   int
	Slot     Slot
	Rarity   stats.Rarity
	MainStat stats.Stat
	SubStats []stats.Stat
}

type DiscPieceBuilder struct {
	discId        int
	discIdSet     bool
	slot          Slot
	slotSet       bool
	rarity        stats.Rarity
	rarityChosen  bool
	mainStat      stats.Stat
	mainStatSet   bool
	subStats      []stats.Stat
	built         bool
}

func NewDiscPieceBuilder() *DiscPieceBuilder {
	return &DiscPieceBuilder{}
}

func (b *DiscPieceBuilder) DiscId(id int) *DiscPieceBuilder {
	b.discId, b.discIdSet = id, true
	return b
}

func (b *DiscPieceBuilder) InSlot(slot Slot) *DiscPieceBuilder {
	b.slot, b.slotSet = slot, true
	return b
}

func (b *DiscPieceBuilder) Rarity(r stats.Rarity) *DiscPieceBuilder {
	b.rarity, b.rarityChosen = r, true
	return b
}

// MainStat sets the single main stat, validating the slot/main-stat
// table of spec.md §4.4.
func (b *DiscPieceBuilder) MainStat(id stats.StatId, tag stats.Tag) *DiscPieceBuilder {
	if b.slotSet && !ValidMainStat(b.slot, id) {
		b.mainStatSet = false
		return b
	}
	base, err := MainStatMagnitude(id, b.rarity)
	if err != nil {
		base = 0
	}
	b.mainStat = stats.NewRegular(id, tag, base)
	b.mainStatSet = true
	return b
}

// AddSubStat adds one sub-stat, rejecting reuse of the main-stat id
// (spec.md invariant 2).
func (b *DiscPieceBuilder) AddSubStat(id stats.StatId, tag stats.Tag, level int) *DiscPieceBuilder {
	if b.mainStatSet && b.mainStat.Qualifier.Id == id {
		return b
	}
	base, err := SubStatMagnitude(id, b.rarity, level)
	if err != nil {
		base = 0
	}
	b.subStats = append(b.subStats, stats.NewRegular(id, tag, base))
	return b
}

// IsBuilt reports whether every required field is set and the
// sub-stat-count invariant (spec.md invariant 3) holds.
func (b *DiscPieceBuilder) IsBuilt() bool {
	if !b.discIdSet || !b.slotSet || !b.rarityChosen || !b.mainStatSet {
		return false
	}
	idx, err := b.rarity.Index()
	if err != nil {
		return false
	}
	return len(b.subStats) >= idx+1
}

func (b *DiscPieceBuilder) Build() (*DiscPiece, error) {
	if b.built {
		return nil, apierr.New(apierr.BuilderIncomplete, "equipment: disc piece builder already consumed")
	}
	if !b.discIdSet {
		return nil, apierr.New(apierr.BuilderIncomplete, "equipment: disc piece missing disc_id")
	}
	if !b.slotSet {
		return nil, apierr.New(apierr.BuilderIncomplete, "equipment: disc piece missing slot")
	}
	if !b.rarityChosen {
		return nil, apierr.New(apierr.BuilderIncomplete, "equipment: disc piece missing rarity")
	}
	if !b.mainStatSet {
		return nil, apierr.Newf(apierr.DomainViolation, "equipment: disc piece main stat invalid for slot %d", b.slot)
	}
	idx, err := b.rarity.Index()
	if err != nil {
		return nil, err
	}
	if len(b.subStats) < idx+1 {
		return nil, apierr.Newf(apierr.BuilderIncomplete, "equipment: disc piece needs at least %d sub-stats, has %d", idx+1, len(b.subStats))
	}
	b.built = true
	return &DiscPiece{
		DiscId:   b.discId,
		Slot:     b.slot,
		Rarity:   b.rarity,
		MainStat: b.mainStat,
		SubStats: b.subStats,
	}, nil
}
