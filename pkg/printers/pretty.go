package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tempo/pkg/event"
	"tableflip.dev/tempo/pkg/timer"
	"tableflip.dev/tempo/pkg/timeutil"
	"tableflip.dev/tempo/pkg/todo"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69-f8b9-9dca-171d-ff69f8b99dca  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" entry")
	default:
		_, _ = c.Println(" entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Print(spacing)
	}
	_, _ = f.Print(" none\n\n")
}

func (pp *PrettyPrint) id(id string) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	_, _ = y.Print(id)
	if pad := len(spacing) - len(id); pad > 0 {
		_, _ = y.Print(strings.Repeat(" ", pad))
	}
}

// Events prints one line per event with its palette color and, for
// remote events, a faint provenance marker.
func (pp *PrettyPrint) Events(events ...event.Event) {
	if len(events) == 0 {
		pp.none()
		return
	}

	t := color.New()
	f := color.New(color.Faint)

	for _, e := range events {
		if pp.ShowID {
			pp.id(e.ID)
		}
		_, _ = paletteColor(e.Color).Print("■ ")
		_, _ = t.Printf("%s  %s", timeRange(e), e.Title)
		if e.Source == event.SourceRemote {
			_, _ = f.Print("  (remote)")
		}
		_, _ = t.Println("")
	}
	_, _ = t.Println("")
}

// Todos prints one checkbox line per todo.
func (pp *PrettyPrint) Todos(todos ...todo.Todo) {
	if len(todos) == 0 {
		pp.none()
		return
	}

	open := color.New()
	done := color.New(color.Faint, color.CrossedOut)

	for _, td := range todos {
		if pp.ShowID {
			pp.id(td.ID)
		}
		if td.Completed {
			_, _ = done.Printf("╳ %s\n", td.Text)
		} else {
			_, _ = open.Printf("• %s\n", td.Text)
		}
	}
	_, _ = open.Println("")
}

// Sessions prints recorded focus runs as a table, oldest first.
func (pp *PrettyPrint) Sessions(sessions ...timer.Session) {
	if len(sessions) == 0 {
		pp.none()
		return
	}

	table := uitable.New()
	table.MaxColWidth = 50

	if pp.ShowID {
		table.AddRow("ID", "STARTED", "FOCUSED", "COMPLETED")
	} else {
		table.AddRow("STARTED", "FOCUSED", "COMPLETED")
	}
	for _, s := range sessions {
		mark := ""
		if s.Completed {
			mark = "✓"
		}
		if pp.ShowID {
			table.AddRow(s.ID, s.Started.Local().Format("Jan _2 15:04"), timeutil.FormatClock(s.Duration), mark)
		} else {
			table.AddRow(s.Started.Local().Format("Jan _2 15:04"), timeutil.FormatClock(s.Duration), mark)
		}
	}
	fmt.Println(table)
	fmt.Println("")
}

func timeRange(e event.Event) string {
	return fmt.Sprintf("%s–%s", e.Start.Local().Format("15:04"), e.EndTime().Local().Format("15:04"))
}

func paletteColor(c event.Color) *color.Color {
	switch c {
	case event.ColorRed:
		return color.New(color.FgRed)
	case event.ColorGreen:
		return color.New(color.FgGreen)
	case event.ColorYellow:
		return color.New(color.FgYellow)
	case event.ColorPurple:
		return color.New(color.FgMagenta)
	case event.ColorGray:
		return color.New(color.FgHiBlack)
	default:
		return color.New(color.FgBlue)
	}
}
