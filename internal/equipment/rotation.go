package equipment

import (
	"strconv"
	"strings"

	"github.com/nightsky-studio/zzzcalc/internal/apierr"
)

// Cell is one (ability-name, index) step of a rotation.
type Cell struct {
	Command string
	Index   int
}

// Rotation is an ordered, finite sequence of cells (spec.md §3).
type Rotation struct {
	Cells []Cell
}

// ParseString builds a rotation from a newline-separated string, one
// cell per line, each line "<command> [index]" (whitespace-split,
// second token optional and defaults to 0). The source left this
// unimplemented; spec.md §9 calls for a real implementation rather
// than the stub that always returned an empty rotation.
func ParseString(src string) (Rotation, error) {
	var rot Rotation
	for lineNo, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cell := Cell{Command: fields[0]}
		if len(fields) >= 2 {
			idx, err := strconv.Atoi(fields[1])
			if err != nil {
				return Rotation{}, apierr.Wrap(apierr.ParseError, err,
					"equipment: rotation line "+strconv.Itoa(lineNo+1)+" has a non-integer index")
			}
			cell.Index = idx
		}
		rot.Cells = append(rot.Cells, cell)
	}
	return rot, nil
}

// ParseInline builds a rotation from the request JSON's inline form:
// a list of "<cmd> [index]" strings (spec.md §6), one cell per entry.
func ParseInline(lines []string) (Rotation, error) {
	return ParseString(strings.Join(lines, "\n"))
}
