// Package bigclock renders times as large block digits for the
// full-screen clock and the focus timer.
package bigclock

import (
	"strings"
	"time"
)

const rows = 5

// Each glyph is five rows tall. Renders line up because every row of a
// glyph has the same width.
var glyphs = map[rune][rows]string{
	'0': {"█████", "█   █", "█   █", "█   █", "█████"},
	'1': {"   █ ", "  ██ ", "   █ ", "   █ ", "  ███"},
	'2': {"█████", "    █", "█████", "█    ", "█████"},
	'3': {"█████", "    █", " ████", "    █", "█████"},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "█████", "    █", "█████"},
	'6': {"█████", "█    ", "█████", "█   █", "█████"},
	'7': {"█████", "    █", "   █ ", "  █  ", "  █  "},
	'8': {"█████", "█   █", "█████", "█   █", "█████"},
	'9': {"█████", "█   █", "█████", "    █", "█████"},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
	' ': {"     ", "     ", "     ", "     ", "     "},
}

// Render draws s in block digits. Characters without a glyph are
// skipped.
func Render(s string) string {
	lines := make([]string, rows)
	for _, r := range s {
		g, ok := glyphs[r]
		if !ok {
			continue
		}
		for i := 0; i < rows; i++ {
			if lines[i] != "" {
				lines[i] += " "
			}
			lines[i] += g[i]
		}
	}
	return strings.Join(lines, "\n")
}

// RenderTime draws a wall clock reading, HH:MM:SS.
func RenderTime(t time.Time) string {
	return Render(t.Format("15:04:05"))
}

// Height is the number of terminal rows a rendering occupies.
func Height() int { return rows }
