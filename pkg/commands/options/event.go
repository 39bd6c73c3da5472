// Package options defines shared flag helpers for CLI commands.
package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/event"
)

const layoutClock = "15:04"

// EventOptions captures the scheduling flags for event commands.
type EventOptions struct {
	Title       string
	AtString    string
	EndString   string
	Description string
	Color       string
	Week        bool
}

// AddEventArgs wires the scheduling flags on the provided command.
func AddEventArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVar(&o.AtString, "at", "09:00",
		`Start time of day, example: --at="14:30".`)
	cmd.Flags().StringVar(&o.EndString, "end", "",
		`End time of day. Defaults to one hour after the start.`)
	cmd.Flags().StringVar(&o.Description, "notes", "",
		"Free-form notes for the event.")
	cmd.Flags().StringVar(&o.Color, "color", "",
		fmt.Sprintf("Event color, one of %v.", event.Palette()))
}

// AddWeekArg registers the week toggle for listing commands.
func AddWeekArg(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().BoolVarP(&o.Week, "week", "w", false,
		"Show the whole week instead of a single day.")
}

// GetStart combines the day with the start-of-day flag.
func (o *EventOptions) GetStart(day time.Time) (time.Time, error) {
	return atClock(day, o.AtString)
}

// GetEnd resolves the optional end flag against the same day. An end
// at or before the start rolls to the next day.
func (o *EventOptions) GetEnd(day time.Time, start time.Time) (*time.Time, error) {
	if strings.TrimSpace(o.EndString) == "" {
		return nil, nil
	}
	end, err := atClock(day, o.EndString)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return &end, nil
}

func atClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(layoutClock, strings.TrimSpace(clock), time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
