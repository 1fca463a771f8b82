package api

import (
	"encoding/json"
	"strconv"

	"github.com/nightsky-studio/zzzcalc/internal/apierr"
	"github.com/nightsky-studio/zzzcalc/internal/cache"
	"github.com/nightsky-studio/zzzcalc/internal/equipment"
	"github.com/nightsky-studio/zzzcalc/internal/stats"
)

// getTyped resolves a cache key and asserts its payload to T,
// releasing the borrow automatically on assertion failure so a
// malformed folder registration never leaks a handle.
func getTyped[T any](m *cache.Manager, key string) (T, func(), error) {
	var zero T
	h, err := m.Get(key)
	if err != nil {
		return zero, nil, err
	}
	v, ok := h.Value().(T)
	if !ok {
		h.Release()
		return zero, nil, apierr.Newf(apierr.EvaluationError, "api: cache entry %q has unexpected type", key)
	}
	return v, h.Release, nil
}

// decodeRotation resolves the request's "rotation" field, which is
// either a cache id (load the persisted rotation) or an inline list
// of "<command> [index]" strings (spec.md §6).
func decodeRotation(m *cache.Manager, aid int, raw json.RawMessage) (equipment.Rotation, func(), error) {
	var inline []string
	if err := json.Unmarshal(raw, &inline); err == nil {
		rot, err := equipment.ParseInline(inline)
		if err != nil {
			return equipment.Rotation{}, nil, err
		}
		return rot, func() {}, nil
	}

	var rid int
	if err := json.Unmarshal(raw, &rid); err != nil {
		return equipment.Rotation{}, nil, apierr.Wrap(apierr.ParseError, err, "api: rotation must be an id or a list of cells")
	}

	key := "rotations/" + strconv.Itoa(aid) + "/" + strconv.Itoa(rid)
	rot, release, err := getTyped[*equipment.Rotation](m, key)
	if err != nil {
		return equipment.Rotation{}, nil, err
	}
	return *rot, release, nil
}

// buildDisc turns one request disc entry into an equipment.DiscPiece.
// slot is the entry's 1-based position in the discs array; stats[0]
// is the main stat (its level is not meaningful and is ignored),
// stats[1:] are the four sub-stats paired with levels[1:].
func buildDisc(dto damageDiscDTO, slot equipment.Slot) (*equipment.DiscPiece, error) {
	if len(dto.Stats) != 5 || len(dto.Levels) != 5 {
		return nil, apierr.Newf(apierr.ParseError, "api: disc %d must carry exactly 5 stats and 5 levels", dto.Id)
	}

	rarity, err := stats.RarityFromInt(dto.Rarity)
	if err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "api: disc rarity")
	}

	mainId, err := stats.ParseStatId(dto.Stats[0])
	if err != nil {
		return nil, apierr.Wrap(apierr.ParseError, err, "api: disc main stat")
	}

	builder := equipment.NewDiscPieceBuilder().
		DiscId(dto.Id).InSlot(slot).Rarity(rarity).
		MainStat(mainId, stats.Universal)

	for i := 1; i < 5; i++ {
		subId, err := stats.ParseStatId(dto.Stats[i])
		if err != nil {
			return nil, apierr.Wrap(apierr.ParseError, err, "api: disc sub stat")
		}
		builder.AddSubStat(subId, stats.Universal, dto.Levels[i])
	}

	return builder.Build()
}
