package source

import "testing"

func TestPositionFirstLine(t *testing.T) {
	ix := NewLineIndex("<div>\n  <span/>\n</div>\n")

	line, col := ix.Position(0)
	if line != 1 || col != 1 {
		t.Errorf("Position(0) = %d:%d, want 1:1", line, col)
	}

	line, col = ix.Position(3)
	if line != 1 || col != 4 {
		t.Errorf("Position(3) = %d:%d, want 1:4", line, col)
	}
}

func TestPositionLaterLines(t *testing.T) {
	src := "<div>\n  <span/>\n</div>\n"

	ix := NewLineIndex(src)

	// Offset 8 is the '<' of <span/> on line 2, after two spaces.
	line, col := ix.Position(8)
	if line != 2 || col != 3 {
		t.Errorf("Position(8) = %d:%d, want 2:3", line, col)
	}

	// Offset 16 is the '<' of </div> on line 3.
	line, col = ix.Position(16)
	if line != 3 || col != 1 {
		t.Errorf("Position(16) = %d:%d, want 3:1", line, col)
	}
}

func TestPositionCountsRunes(t *testing.T) {
	// "héllo" has a two-byte é; the '<' after it is at byte 7 but column 7
	// counting runes (h é l l o space = 6 runes before it).
	src := "héllo <b>"
	ix := NewLineIndex(src)

	line, col := ix.Position(7)
	if line != 1 || col != 7 {
		t.Errorf("Position(7) = %d:%d, want 1:7", line, col)
	}
}

func TestPositionClamps(t *testing.T) {
	ix := NewLineIndex("ab")

	if line, col := ix.Position(-5); line != 1 || col != 1 {
		t.Errorf("Position(-5) = %d:%d, want 1:1", line, col)
	}
	if line, col := ix.Position(99); line != 1 || col != 3 {
		t.Errorf("Position(99) = %d:%d, want 1:3", line, col)
	}
}

func TestPositionEmptySource(t *testing.T) {
	ix := NewLineIndex("")
	if line, col := ix.Position(0); line != 1 || col != 1 {
		t.Errorf("Position(0) on empty source = %d:%d, want 1:1", line, col)
	}
}

func TestLocationString(t *testing.T) {
	loc := Location{File: "/app/src/App.vue", Line: 12, Column: 5}
	if got := loc.String(); got != "/app/src/App.vue:12:5" {
		t.Errorf("String() = %q", got)
	}
}
