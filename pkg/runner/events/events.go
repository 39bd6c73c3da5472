package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/event"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/timeutil"
)

// Add schedules a new event. Provenance is decided by the service: a
// linked account receives it, otherwise it lands in the local store.
type Add struct {
	Title       string
	On          time.Time
	End         *time.Time
	Description string
	Color       string

	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}

	e := event.New(n.Title, n.On)
	e.End = n.End
	e.Description = n.Description
	if n.Color != "" {
		c := event.Color(n.Color)
		if !c.Valid() {
			return fmt.Errorf("unknown color %q, pick one of %v", n.Color, event.Palette())
		}
		e.Color = c
	}
	e.Normalize()

	if err := n.Service.Save(ctx, e); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title(n.On.Format("Monday, January 2"))
	pp.Events(onDay(n.Service.Events(), n.On)...)
	return nil
}

// Get prints events for a single day, or the whole week around it.
type Get struct {
	ShowID  bool
	On      time.Time
	Week    bool
	Service *app.Service
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	all, err := n.Service.Refresh(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")

	if n.Week {
		pp.Week(n.On, all...)
		return nil
	}

	day := onDay(all, n.On)
	pp.TitleWithCount(n.On.Format("Monday, January 2"), len(day))
	pp.Events(day...)
	return nil
}

// Remove deletes an event by id, from whichever side owns it. Unknown
// ids are ignored.
type Remove struct {
	ID      string
	Service *app.Service
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	if _, err := n.Service.Refresh(ctx); err != nil {
		return err
	}
	return n.Service.Delete(ctx, n.ID)
}

func onDay(all []event.Event, on time.Time) []event.Event {
	day := make([]event.Event, 0, len(all))
	for _, e := range all {
		if timeutil.SameDay(e.Start, on) {
			day = append(day, e)
		}
	}
	return day
}
