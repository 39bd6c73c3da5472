package gcal

import "tableflip.dev/tempo/pkg/event"

// The provider identifies event colors by small numeric strings. The
// six palette colors map onto the closest provider hues; everything
// else falls back to blue in both directions.
var (
	paletteToProvider = map[event.Color]string{
		event.ColorRed:    "11", // Tomato
		event.ColorBlue:   "9",  // Blueberry
		event.ColorGreen:  "10", // Basil
		event.ColorYellow: "5",  // Banana
		event.ColorPurple: "3",  // Grape
		event.ColorGray:   "8",  // Graphite
	}
	providerToPalette = map[string]event.Color{
		"11": event.ColorRed,
		"9":  event.ColorBlue,
		"10": event.ColorGreen,
		"5":  event.ColorYellow,
		"3":  event.ColorPurple,
		"8":  event.ColorGray,
	}
)

// ProviderColorID maps a palette color to the provider's color id.
func ProviderColorID(c event.Color) string {
	if id, ok := paletteToProvider[c]; ok {
		return id
	}
	return paletteToProvider[event.DefaultColor]
}

// ColorFromProvider maps a provider color id back to the palette.
func ColorFromProvider(id string) event.Color {
	if c, ok := providerToPalette[id]; ok {
		return c
	}
	return event.DefaultColor
}
