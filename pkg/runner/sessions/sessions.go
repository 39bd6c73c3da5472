package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/timer"
	"tableflip.dev/tempo/pkg/timeutil"
)

// Get prints focus sessions recorded inside the given window.
type Get struct {
	ShowID  bool
	Window  string
	Service *app.Service
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	cutoff, label, err := timeutil.WindowStart(time.Now(), n.Window)
	if err != nil {
		return err
	}

	all, err := n.Service.Sessions(ctx)
	if err != nil {
		return err
	}
	all = since(all, cutoff)

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	pp.TitleWithCount("Focus sessions, last "+label, len(all))
	pp.Sessions(all...)
	return nil
}

func since(all []timer.Session, cutoff time.Time) []timer.Session {
	kept := make([]timer.Session, 0, len(all))
	for _, s := range all {
		if !s.Started.Before(cutoff) {
			kept = append(kept, s)
		}
	}
	return kept
}
