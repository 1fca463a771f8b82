package stats

import (
	"encoding/json"
	"fmt"
)

// GridFromJSON builds a Grid from a parsed array of per-stat JSON
// entries (spec.md §6 "on-disk definitions ... already-parsed tree
// values"), grounded on StatsGrid::make_from in the original source.
//
// Each entry is itself a JSON array:
//   - Regular:  [id, value]         | [id, tag, value]
//   - Relative: [id, base, formula] | [id, tag, base, formula]
//
// A Relative entry is distinguished by its last element being a
// string (the formula bundle); defaultTag is used when the optional
// tag element is omitted.
func GridFromJSON(raw json.RawMessage, defaultTag Tag) (*Grid, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("stats: malformed grid json: %w", err)
	}

	g := NewGrid()
	for _, row := range rows {
		s, err := statFromJSONArray(row, defaultTag)
		if err != nil {
			return nil, err
		}
		g.Add(s)
	}
	return g, nil
}

// StatFromJSON parses a single stat entry array (the same shape used
// inside GridFromJSON), for wire fields that carry exactly one stat
// rather than a list, such as a weapon's main_stat/sub_stat.
func StatFromJSON(raw json.RawMessage, defaultTag Tag) (Stat, error) {
	return statFromJSONArray(raw, defaultTag)
}

func statFromJSONArray(raw json.RawMessage, defaultTag Tag) (Stat, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Stat{}, fmt.Errorf("stats: malformed stat entry: %w", err)
	}
	if len(fields) < 2 {
		return Stat{}, fmt.Errorf("stats: stat entry needs at least an id and a value, got %d fields", len(fields))
	}

	var idName string
	if err := json.Unmarshal(fields[0], &idName); err != nil {
		return Stat{}, fmt.Errorf("stats: stat id must be a string: %w", err)
	}
	id, err := ParseStatId(idName)
	if err != nil {
		return Stat{}, err
	}

	last := fields[len(fields)-1]
	var asString string
	isRelative := json.Unmarshal(last, &asString) == nil

	// Determine whether the optional tag element is present: it is
	// present whenever the entry's remaining length (after id and
	// value/formula, and for relative also base) leaves one spare slot.
	valueCount := len(fields) - 1 // fields minus id
	if isRelative {
		valueCount-- // minus formula string
	}
	// valueCount is now either 1 (base only) or 2 (tag, base)

	tag := defaultTag
	idx := 1
	if valueCount == 2 {
		var tagName string
		if err := json.Unmarshal(fields[idx], &tagName); err != nil {
			return Stat{}, fmt.Errorf("stats: stat tag must be a string: %w", err)
		}
		tag, err = ParseTag(tagName)
		if err != nil {
			return Stat{}, err
		}
		idx++
	}

	var base float64
	if err := json.Unmarshal(fields[idx], &base); err != nil {
		return Stat{}, fmt.Errorf("stats: stat base must be a number: %w", err)
	}

	if !isRelative {
		return NewRegular(id, tag, base), nil
	}
	return NewRelativeFromString(id, tag, base, asString)
}
