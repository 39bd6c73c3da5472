package gcal

import (
	"testing"

	"tableflip.dev/tempo/pkg/event"
)

func TestColorRoundTrip(t *testing.T) {
	for _, c := range event.Palette() {
		id := ProviderColorID(c)
		if id == "" {
			t.Fatalf("%q has no provider id", c)
		}
		if got := ColorFromProvider(id); got != c {
			t.Errorf("round trip %q -> %q -> %q", c, id, got)
		}
	}
}

func TestUnknownColorsDefaultToBlue(t *testing.T) {
	if got := ColorFromProvider("7"); got != event.ColorBlue {
		t.Errorf("ColorFromProvider(7) = %q, want blue", got)
	}
	if got := ColorFromProvider(""); got != event.ColorBlue {
		t.Errorf("ColorFromProvider(\"\") = %q, want blue", got)
	}
	if got := ProviderColorID(event.Color("teal")); got != "9" {
		t.Errorf("ProviderColorID(teal) = %q, want 9", got)
	}
}
