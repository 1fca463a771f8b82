package api

import "encoding/json"

// damageDiscDTO is one entry of the request's "discs" array. Its slot
// is implied by its 1-based position in that array, not carried as a
// field (spec.md §6).
type damageDiscDTO struct {
	Id     int      `json:"id"`
	Rarity int      `json:"rarity"`
	Stats  []string `json:"stats"`
	Levels []int    `json:"levels"`
}

// damageRequestDTO is the POST /damage request body (spec.md §6).
// Rotation is either an int (an already-persisted rotation id to load
// from the cache) or a list of "<command> [index]" strings (an inline
// rotation parsed on the spot); json.RawMessage defers that choice to
// decodeRotation.
type damageRequestDTO struct {
	Aid      int             `json:"aid"`
	Wid      int             `json:"wid"`
	Rotation json.RawMessage `json:"rotation"`
	Discs    []damageDiscDTO `json:"discs"`
}

// damageResponseDTO is the POST /damage response body (spec.md §6).
// PerAbility holds one entry per rotation cell: a bare number by
// default, or a [damage, tag-or-tags, ability-name] triple when the
// request carries "?type=detailed".
type damageResponseDTO struct {
	Total      float64 `json:"total"`
	PerAbility []any   `json:"per_ability"`
}

// rotationPutDTO is the PUT /rotations body: the same inline cell
// list LoadRotation expects on disk.
type rotationPutDTO struct {
	Cells []string `json:"cells"`
}
