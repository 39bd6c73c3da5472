package todos

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/printers"
)

// Add appends a todo to the list.
type Add struct {
	Text    string
	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	if _, err := n.Service.AddTodo(ctx, n.Text); err != nil {
		return err
	}
	return list(ctx, n.Service, false)
}

// Get prints the todo list.
type Get struct {
	ShowID  bool
	Service *app.Service
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	return list(ctx, n.Service, n.ShowID)
}

// Done toggles the completed flag on a todo.
type Done struct {
	ID      string
	Service *app.Service
}

func (n *Done) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no service")
	}
	if _, err := n.Service.ToggleTodo(ctx, n.ID); err != nil {
		return err
	}
	return list(ctx, n.Service, false)
}

// Remove deletes a todo by id.
type Remove struct {
	ID      string
	Service *app.Service
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	return n.Service.RemoveTodo(ctx, n.ID)
}

func list(ctx context.Context, svc *app.Service, showID bool) error {
	all, err := svc.Todos(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: showID}
	fmt.Println("")
	pp.TitleWithCount("Todos", len(all))
	pp.Todos(all...)
	return nil
}
