package equipment

import "testing"

func TestParseStringSplitsCommandAndIndex(t *testing.T) {
	rot, err := ParseString("basic_attack 1\ndash\nspecial 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Cell{
		{Command: "basic_attack", Index: 1},
		{Command: "dash", Index: 0},
		{Command: "special", Index: 3},
	}
	if len(rot.Cells) != len(want) {
		t.Fatalf("expected %d cells, got %d", len(want), len(rot.Cells))
	}
	for i, c := range want {
		if rot.Cells[i] != c {
			t.Fatalf("cell %d: expected %+v, got %+v", i, c, rot.Cells[i])
		}
	}
}

func TestParseStringIgnoresBlankLines(t *testing.T) {
	rot, err := ParseString("\nbasic_attack 1\n\n\ndash 2\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rot.Cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(rot.Cells))
	}
}

func TestParseInlineJoinsListEntries(t *testing.T) {
	rot, err := ParseInline([]string{"basic_attack 1", "dash 2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rot.Cells) != 2 || rot.Cells[1].Index != 2 {
		t.Fatalf("unexpected rotation: %+v", rot.Cells)
	}
}

func TestParseStringRejectsNonIntegerIndex(t *testing.T) {
	if _, err := ParseString("basic_attack abc"); err == nil {
		t.Fatal("expected a parse error for a non-integer index")
	}
}
