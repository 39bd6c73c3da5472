package bigclock

import (
	"strings"
	"testing"
	"time"
)

func TestRenderRowCount(t *testing.T) {
	out := Render("12:34")
	lines := strings.Split(out, "\n")
	if len(lines) != Height() {
		t.Fatalf("rows = %d, want %d", len(lines), Height())
	}
	for i, l := range lines {
		if len([]rune(l)) != len([]rune(lines[0])) {
			t.Errorf("row %d width differs: %q vs %q", i, l, lines[0])
		}
	}
}

func TestRenderSkipsUnknownRunes(t *testing.T) {
	if Render("1x2") != Render("12") {
		t.Error("unknown rune changed the rendering")
	}
}

func TestRenderTime(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)
	if RenderTime(at) != Render("09:05:07") {
		t.Error("RenderTime mismatch")
	}
}
