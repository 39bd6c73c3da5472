// Package timeutil provides small time helpers shared by the dashboard
// and CLI views.
package timeutil

import (
	"fmt"
	"time"
)

const layoutISO = "2006-01-02"

// FormatClock renders a second count as a zero-padded mm:ss string.
// Negative inputs clamp to 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Week returns the seven days of the Monday-starting week containing t,
// each normalized to midnight in t's location.
func Week(t time.Time) [7]time.Time {
	day := StartOfDay(t)
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday belongs to the week that started six days ago
	}
	monday := day.AddDate(0, 0, -offset)

	var days [7]time.Time
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DateKey formats t as an ISO date (YYYY-MM-DD).
func DateKey(t time.Time) string {
	return t.Format(layoutISO)
}
