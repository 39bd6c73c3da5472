// Package weekgrid renders the seven-day calendar grid.
package weekgrid

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tempo/pkg/event"
	"tableflip.dev/tempo/pkg/timeutil"
	"tableflip.dev/tempo/pkg/tui/theme"
)

// Day describes a single rendered column.
type Day struct {
	Date       time.Time
	Events     []event.Event
	IsToday    bool
	IsSelected bool
}

// Options controls grid styling and geometry.
type Options struct {
	HeaderStyle   lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	EmptyStyle    lipgloss.Style
	Width         int
	Height        int
}

// Days builds the seven columns around `on`, Monday first, from the
// merged event collection.
func Days(on time.Time, events []event.Event, selected time.Time) []Day {
	now := time.Now()
	week := timeutil.Week(on)
	days := make([]Day, 0, len(week))
	for _, d := range week {
		day := Day{
			Date:       d,
			IsToday:    timeutil.SameDay(d, now),
			IsSelected: timeutil.SameDay(d, selected),
		}
		for _, e := range events {
			if timeutil.SameDay(e.Start, d) {
				day.Events = append(day.Events, e)
			}
		}
		days = append(days, day)
	}
	return days
}

// Render produces the multi-line grid. Each day is a fixed-width
// column with its events stacked underneath the header.
func Render(days []Day, opts Options) string {
	if len(days) == 0 {
		return ""
	}

	colWidth := opts.Width/len(days) - 1
	if colWidth < 8 {
		colWidth = 8
	}
	colHeight := opts.Height - 1
	if colHeight < 1 {
		colHeight = 1
	}

	cols := make([]string, 0, len(days))
	for _, d := range days {
		cols = append(cols, renderColumn(d, colWidth, colHeight, opts))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func renderColumn(d Day, width, height int, opts Options) string {
	header := d.Date.Format("Mon 2")
	style := opts.HeaderStyle
	if d.IsToday {
		style = opts.TodayStyle
	}
	if d.IsSelected {
		style = opts.SelectedStyle
	}

	lines := []string{style.Render(pad(header, width))}
	for _, e := range d.Events {
		if len(lines) > height {
			break
		}
		label := fmt.Sprintf("%s %s", e.Start.Local().Format("15:04"), e.Title)
		lines = append(lines, theme.EventColor(e.Color).Render(pad(label, width)))
	}
	if len(d.Events) == 0 {
		lines = append(lines, opts.EmptyStyle.Render(pad("·", width)))
	}
	for len(lines) <= height {
		lines = append(lines, pad("", width))
	}
	return strings.Join(lines, "\n") + " "
}

func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
