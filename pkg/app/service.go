// Package app provides high-level operations for the dashboard: it
// merges local and remote events into one consistent view and routes
// every mutation to the adapter that owns the event.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"tableflip.dev/tempo/pkg/auth"
	"tableflip.dev/tempo/pkg/event"
	"tableflip.dev/tempo/pkg/store"
	"tableflip.dev/tempo/pkg/timer"
	"tableflip.dev/tempo/pkg/todo"
)

// ErrReconnectRequired is returned when a mutation can only be carried
// out by the remote provider and no token is available.
var ErrReconnectRequired = errors.New("app: reconnect required, event belongs to the remote calendar")

// Remote is the calendar provider surface the service needs. It is
// satisfied by *gcal.Client.
type Remote interface {
	FetchEvents(ctx context.Context, windowStart, windowEnd time.Time) ([]event.Event, error)
	CreateEvent(ctx context.Context, e event.Event) (event.Event, error)
	UpdateEvent(ctx context.Context, e event.Event) error
	DeleteEvent(ctx context.Context, id string) error
	Authorized() bool
	Readable() bool
}

// Service wraps persistence and the remote calendar so UIs and CLIs can
// share logic. The merged event collection is replaced wholesale on
// every refresh; observers never see a partial merge.
type Service struct {
	Persistence store.Persistence
	Remote      Remote        // nil disables the remote source
	Session     *auth.Session // nil means never authorized

	mu      sync.RWMutex
	events  []event.Event
	issued  uint64 // refresh generations handed out
	applied uint64 // highest generation whose result was applied
}

// Events returns a snapshot of the current merged collection.
func (s *Service) Events() []event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]event.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Refresh re-fetches from both sources concurrently, merges local rows
// ahead of remote ones without cross-source dedup, and replaces the
// collection. Read failures on either side degrade to an empty result
// for that source and are logged, never fatal.
//
// Overlapping refreshes are fenced by generation: a slower, older fetch
// can no longer clobber a newer result.
func (s *Service) Refresh(ctx context.Context) ([]event.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}

	s.mu.Lock()
	s.issued++
	gen := s.issued
	s.mu.Unlock()

	var (
		wg      sync.WaitGroup
		locals  []event.Event
		remotes []event.Event
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		l, err := s.Persistence.ListEvents(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "app: list local events: %v\n", err)
			return
		}
		locals = l
	}()

	if s.Remote != nil && s.Remote.Readable() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := s.Remote.FetchEvents(ctx, time.Time{}, time.Time{})
			if err != nil {
				fmt.Fprintf(os.Stderr, "app: fetch remote events: %v\n", err)
				return
			}
			remotes = r
		}()
	}

	wg.Wait()

	merged := make([]event.Event, 0, len(locals)+len(remotes))
	merged = append(merged, locals...)
	merged = append(merged, remotes...)

	s.mu.Lock()
	if gen > s.applied {
		s.applied = gen
		s.events = merged
	} else {
		// A newer refresh already landed; discard this stale result.
		merged = make([]event.Event, len(s.events))
		copy(merged, s.events)
	}
	s.mu.Unlock()

	return merged, nil
}

// authorized reports whether remote writes are currently possible.
func (s *Service) authorized() bool {
	return s.Session != nil && s.Session.Authorized() && s.Remote != nil
}

// Connected reports whether the remote account is linked.
func (s *Service) Connected() bool { return s.authorized() }

// Save routes the event to its owning adapter and refreshes on success.
//
// An existing remote-owned event is updated remotely when a token is
// present; without one the edit lands in the local store instead of
// failing, and the next refresh reports whatever the adapters now hold.
// New events are created remotely only while connected; otherwise they
// are local. Connecting or disconnecting changes where future events
// land but never migrates existing ones.
func (s *Service) Save(ctx context.Context, e event.Event) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	e.Normalize()

	var err error
	switch {
	case e.ID != "" && e.Source == event.SourceRemote && s.authorized():
		err = s.Remote.UpdateEvent(ctx, e)
	case e.ID == "" && s.authorized() && s.Remote.Readable():
		_, err = s.Remote.CreateEvent(ctx, e)
	default:
		e.Source = event.SourceLocal
		err = s.Persistence.PutEvent(&e)
	}
	if err != nil {
		// No refresh and no collection change on failure; the caller
		// shows the error and keeps the form open.
		return err
	}

	_, refreshErr := s.Refresh(ctx)
	return refreshErr
}

// Delete removes the event with the given id via its owning adapter.
// An id not present in the current collection is a no-op: the adapters
// are the authority, the cache merely lags them. A remote-owned event
// cannot be deleted while disconnected; unlike edits there is no local
// copy to fall back to, so the caller gets ErrReconnectRequired.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}

	target, ok := event.ByID(s.Events(), id)
	if !ok {
		return nil
	}

	var err error
	switch {
	case target.Source == event.SourceRemote && s.authorized():
		err = s.Remote.DeleteEvent(ctx, id)
	case target.Source == event.SourceRemote:
		return ErrReconnectRequired
	default:
		err = s.Persistence.DeleteEvent(id)
	}
	if err != nil {
		return err
	}

	_, refreshErr := s.Refresh(ctx)
	return refreshErr
}

// Connect stores a freshly granted token and refreshes immediately:
// both the visible remote events and the default home for new events
// depend on it.
func (s *Service) Connect(ctx context.Context, token string) error {
	if s.Session == nil {
		return errors.New("app: no auth session configured")
	}
	if err := s.Session.Set(token); err != nil {
		return err
	}
	_, err := s.Refresh(ctx)
	return err
}

// Disconnect clears the stored token and refreshes immediately.
func (s *Service) Disconnect(ctx context.Context) error {
	if s.Session == nil {
		return errors.New("app: no auth session configured")
	}
	if err := s.Session.Clear(); err != nil {
		return err
	}
	_, err := s.Refresh(ctx)
	return err
}

// Watch subscribes to persistence change events. One subscription per
// mounted dashboard; cancel ctx to release it.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx)
}

// Todos lists all todos in creation order.
func (s *Service) Todos(ctx context.Context) ([]todo.Todo, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.ListTodos(ctx)
}

// AddTodo creates and stores a new todo.
func (s *Service) AddTodo(ctx context.Context, text string) (todo.Todo, error) {
	if s.Persistence == nil {
		return todo.Todo{}, errors.New("app: no persistence configured")
	}
	t := todo.New(text)
	if err := s.Persistence.PutTodo(&t); err != nil {
		return todo.Todo{}, err
	}
	return t, nil
}

// ToggleTodo flips the completed flag for the todo with the given id.
func (s *Service) ToggleTodo(ctx context.Context, id string) (todo.Todo, error) {
	todos, err := s.Todos(ctx)
	if err != nil {
		return todo.Todo{}, err
	}
	for _, t := range todos {
		if t.ID == id {
			t.Completed = !t.Completed
			if err := s.Persistence.PutTodo(&t); err != nil {
				return todo.Todo{}, err
			}
			return t, nil
		}
	}
	return todo.Todo{}, fmt.Errorf("app: todo %s not found", id)
}

// RemoveTodo deletes the todo with the given id.
func (s *Service) RemoveTodo(ctx context.Context, id string) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	return s.Persistence.DeleteTodo(id)
}

// RecordSession stores the outcome of a finished pomodoro run.
func (s *Service) RecordSession(ctx context.Context, sess timer.Session) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	return s.Persistence.PutSession(&sess)
}

// Sessions lists recorded pomodoro runs, oldest first.
func (s *Service) Sessions(ctx context.Context) ([]timer.Session, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.ListSessions(ctx)
}
