// Package event defines the calendar event model shared by the local
// store, the remote calendar client, and the UI.
package event

import (
	"strings"
	"time"
)

// Source tags which backing store owns an event. Mutations must always
// be routed to the owning side.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// DefaultTitle is substituted when an event arrives with a blank title.
const DefaultTitle = "Untitled"

// DefaultDuration is assumed when an event has no end time.
const DefaultDuration = time.Hour

// Event is a single calendar entry. IDs are unique within a source;
// the (Source, ID) pair is the true identity of a merged event.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Start       time.Time  `json:"start_date"`
	End         *time.Time `json:"end_date,omitempty"`
	Description string     `json:"description,omitempty"`
	Color       Color      `json:"color,omitempty"`
	Source      Source     `json:"-"`
	Created     time.Time  `json:"created_at,omitempty"`
}

// New returns an event starting at the given time with defaults applied.
func New(title string, start time.Time) Event {
	e := Event{Title: title, Start: start}
	e.Normalize()
	return e
}

// Normalize applies the model defaults in place: blank titles, missing
// end times, and unknown colors all get concrete values.
func (e *Event) Normalize() {
	if strings.TrimSpace(e.Title) == "" {
		e.Title = DefaultTitle
	}
	if e.End == nil && !e.Start.IsZero() {
		end := e.Start.Add(DefaultDuration)
		e.End = &end
	}
	e.Color = e.Color.OrDefault()
}

// EndTime returns the event end, deriving it from the start when unset.
func (e Event) EndTime() time.Time {
	if e.End != nil {
		return *e.End
	}
	return e.Start.Add(DefaultDuration)
}

// ByID finds an event in a merged collection. Lookups are by bare ID;
// collections never deduplicate across sources, so the first match wins
// in local-then-remote order.
func ByID(events []Event, id string) (Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}
