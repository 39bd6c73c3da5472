package event

// Color is one of the fixed six-color palette used uniformly for local
// and remote events.
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorGray   Color = "gray"
)

// DefaultColor is used when a color is absent or unrecognized.
const DefaultColor = ColorBlue

// Palette lists every valid color in display order.
func Palette() []Color {
	return []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorGray}
}

// Valid reports whether c is a member of the palette.
func (c Color) Valid() bool {
	switch c {
	case ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorGray:
		return true
	}
	return false
}

// OrDefault returns c when valid, otherwise the palette default.
func (c Color) OrDefault() Color {
	if c.Valid() {
		return c
	}
	return DefaultColor
}
