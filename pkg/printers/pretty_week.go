package printers

import (
	"time"

	"github.com/fatih/color"

	"tableflip.dev/tempo/pkg/event"
	"tableflip.dev/tempo/pkg/timeutil"
)

// Week prints the seven days around `on`, Monday first, with the
// events scheduled on each day underneath its header.
func (pp *PrettyPrint) Week(on time.Time, events ...event.Event) {
	p := color.New()
	h := color.New(color.Faint, color.Underline)
	today := color.New(color.Bold, color.Underline)
	f := color.New(color.Faint, color.Italic)

	now := time.Now()
	for _, day := range timeutil.Week(on) {
		printer := h
		if timeutil.SameDay(day, now) {
			printer = today
		}
		_, _ = printer.Printf("%s %s\n", day.Format("Mon"), day.Format("Jan _2"))

		found := false
		for _, e := range events {
			if !timeutil.SameDay(e.Start, day) {
				continue
			}
			found = true
			_, _ = paletteColor(e.Color).Print("  ■ ")
			_, _ = p.Printf("%s  %s\n", timeRange(e), e.Title)
		}
		if !found {
			_, _ = f.Println("  none")
		}
	}
	_, _ = p.Println("")
}
