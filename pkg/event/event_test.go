package event

import (
	"testing"
	"time"
)

func TestNormalizeDefaults(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	e := Event{Title: "  ", Start: start, Color: Color("magenta")}
	e.Normalize()

	if e.Title != DefaultTitle {
		t.Errorf("title = %q, want %q", e.Title, DefaultTitle)
	}
	if e.End == nil {
		t.Fatal("end not defaulted")
	}
	if want := start.Add(time.Hour); !e.End.Equal(want) {
		t.Errorf("end = %v, want %v", e.End, want)
	}
	if e.Color != DefaultColor {
		t.Errorf("color = %q, want %q", e.Color, DefaultColor)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	e := Event{Title: "Gym", Start: start, End: &end, Color: ColorGreen}
	e.Normalize()

	if e.Title != "Gym" || !e.End.Equal(end) || e.Color != ColorGreen {
		t.Errorf("normalize changed explicit fields: %+v", e)
	}
}

func TestEndTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	e := Event{Title: "x", Start: start}
	if want := start.Add(time.Hour); !e.EndTime().Equal(want) {
		t.Errorf("EndTime = %v, want %v", e.EndTime(), want)
	}
}

func TestByID(t *testing.T) {
	events := []Event{
		{ID: "a", Source: SourceLocal},
		{ID: "g1", Source: SourceRemote},
	}
	if got, ok := ByID(events, "g1"); !ok || got.Source != SourceRemote {
		t.Errorf("ByID(g1) = %+v, %v", got, ok)
	}
	if _, ok := ByID(events, "missing"); ok {
		t.Error("ByID(missing) found an event")
	}
}

func TestColorOrDefault(t *testing.T) {
	for _, c := range Palette() {
		if c.OrDefault() != c {
			t.Errorf("%q remapped to %q", c, c.OrDefault())
		}
	}
	for _, c := range []Color{"", "teal", "BLUE"} {
		if c.OrDefault() != DefaultColor {
			t.Errorf("%q defaulted to %q, want %q", c, c.OrDefault(), DefaultColor)
		}
	}
}
