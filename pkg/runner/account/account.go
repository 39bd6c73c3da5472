package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/auth"
)

// Login walks the OAuth consent flow and links the calendar account.
type Login struct {
	Flow    *auth.Flow
	Service *app.Service
}

func (n *Login) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not login, no service")
	}
	if n.Flow == nil {
		return errors.New("can not login, no oauth client configured")
	}

	token, err := n.Flow.Login(ctx)
	if err != nil {
		return err
	}
	if err := n.Service.Connect(ctx, token); err != nil {
		return err
	}

	g := color.New(color.FgGreen)
	_, _ = g.Println("Calendar account connected.")
	return nil
}

// Logout drops the stored token and falls back to local-only events.
type Logout struct {
	Service *app.Service
}

func (n *Logout) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not logout, no service")
	}
	if err := n.Service.Disconnect(ctx); err != nil {
		return err
	}
	fmt.Println("Calendar account disconnected.")
	return nil
}

// Status reports whether an account is linked.
type Status struct {
	Service *app.Service
}

func (n *Status) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get status, no service")
	}

	if n.Service.Connected() {
		g := color.New(color.FgGreen)
		_, _ = g.Println("connected")
		return nil
	}
	f := color.New(color.Faint)
	_, _ = f.Println("offline")
	return nil
}
