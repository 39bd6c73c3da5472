package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the report window used when none is given.
const DefaultWindow = "1w"

// Calendar-ish units for report windows. Months are fixed at 30 days,
// matching the remote fetch horizon of "6 months ahead".
const (
	Day   = 24 * time.Hour
	Month = 30 * Day

	week = 7 * Day
)

var segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)

func unitDuration(name string) (time.Duration, bool) {
	switch name {
	case "s", "sec", "secs", "second", "seconds":
		return time.Second, true
	case "m", "min", "mins", "minute", "minutes":
		return time.Minute, true
	case "h", "hr", "hrs", "hour", "hours":
		return time.Hour, true
	case "d", "day", "days":
		return Day, true
	case "w", "wk", "wks", "week", "weeks":
		return week, true
	case "mo", "month", "months":
		return Month, true
	}
	return 0, false
}

// ParseWindow parses a human-friendly window like "1w", "3d6h", or
// "6mo" and returns the duration along with its canonical compact
// label. An empty input means one week.
func ParseWindow(input string) (time.Duration, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultWindow
	}

	remaining := strings.ToLower(trimmed)
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := segmentPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid duration segment %q", strings.TrimSpace(remaining))
		}

		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid duration value %q: %w", matches[1], err)
		}
		base, ok := unitDuration(matches[2])
		if !ok {
			return 0, "", fmt.Errorf("unsupported duration unit %q", matches[2])
		}
		total += time.Duration(value) * base

		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("duration must be greater than zero")
	}

	return total, FormatWindow(total), nil
}

// WindowStart resolves a window string against now and returns the
// cutoff instant together with the canonical label.
func WindowStart(now time.Time, input string) (time.Time, string, error) {
	window, label, err := ParseWindow(input)
	if err != nil {
		return time.Time{}, "", err
	}
	return now.Add(-window), label, nil
}

// FormatWindow renders a duration with the largest units first, month
// down to second.
func FormatWindow(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	type unit struct {
		label string
		value time.Duration
	}
	units := []unit{
		{"mo", Month},
		{"w", week},
		{"d", Day},
		{"h", time.Hour},
		{"m", time.Minute},
		{"s", time.Second},
	}

	var parts []string
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, "")
}
