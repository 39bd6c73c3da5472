package ui

import (
	"context"
	"errors"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/tui/dashboard"
)

// UI opens the full-screen dashboard.
type UI struct {
	Service *app.Service
	Zen     bool
}

func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return errors.New("can not open the ui, no service")
	}
	return dashboard.Run(ctx, u.Service, u.Zen)
}
