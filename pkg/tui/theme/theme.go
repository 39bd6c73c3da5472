package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tempo/pkg/event"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Panel  PanelTheme
	Grid   GridTheme
	Timer  TimerTheme
	Footer FooterTheme
	Modal  ModalTheme
}

// PanelTheme styles framed panes and headings.
type PanelTheme struct {
	Frame   lipgloss.Style
	Focused lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
	Faint   lipgloss.Style
}

// GridTheme styles the week calendar grid.
type GridTheme struct {
	DayHeader lipgloss.Style
	Today     lipgloss.Style
	Selected  lipgloss.Style
	Empty     lipgloss.Style
}

// TimerTheme styles the focus timer pane.
type TimerTheme struct {
	Clock      lipgloss.Style
	ModeActive lipgloss.Style
	ModeIdle   lipgloss.Style
	Done       lipgloss.Style
}

// FooterTheme styles the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// ModalTheme styles centered overlays (event form, confirm).
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("241")).
				Padding(0, 1),
			Focused: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("212")).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
			Faint: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Grid: GridTheme{
			DayHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Underline(true),
			Today:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Underline(true),
			Selected:  lipgloss.NewStyle().Reverse(true),
			Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
		Timer: TimerTheme{
			Clock:      lipgloss.NewStyle().Bold(true),
			ModeActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			ModeIdle:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Done:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}

// EventColor maps a palette color to its terminal rendering.
func EventColor(c event.Color) lipgloss.Style {
	var fg color.Color
	switch c {
	case event.ColorRed:
		fg = lipgloss.Color("203")
	case event.ColorGreen:
		fg = lipgloss.Color("114")
	case event.ColorYellow:
		fg = lipgloss.Color("221")
	case event.ColorPurple:
		fg = lipgloss.Color("176")
	case event.ColorGray:
		fg = lipgloss.Color("245")
	default:
		fg = lipgloss.Color("75")
	}
	return lipgloss.NewStyle().Foreground(fg)
}
