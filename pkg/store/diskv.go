// Package store persists dashboard rows (events, todos, timer sessions)
// on disk and notifies watchers when any table changes.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/tempo/pkg/event"
	"tableflip.dev/tempo/pkg/timer"
	"tableflip.dev/tempo/pkg/todo"
)

// Logical table names. Each table is a directory under the base path.
const (
	TableEvents   = "events"
	TableTodos    = "todos"
	TableSessions = "sessions"
)

// Persistence defines the persistence contract for dashboard rows.
type Persistence interface {
	ListEvents(ctx context.Context) ([]event.Event, error)
	PutEvent(e *event.Event) error
	DeleteEvent(id string) error

	ListTodos(ctx context.Context) ([]todo.Todo, error)
	PutTodo(t *todo.Todo) error
	DeleteTodo(id string) error

	ListSessions(ctx context.Context) ([]timer.Session, error)
	PutSession(s *timer.Session) error

	Watch(ctx context.Context) (<-chan Event, error)
}

// StoreError wraps a failed row operation with the table and operation
// that caused it. Callers log it and leave state unchanged; there are
// no automatic retries.
type StoreError struct {
	Op    string
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Load creates a Persistence backed by diskv using the provided config.
// A nil config loads the default configuration.
func Load(cfg *Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.Path
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

const layoutISO = "2006-01-02"

func (p *persistence) ListEvents(ctx context.Context) ([]event.Event, error) {
	all := make([]event.Event, 0)
	for key := range p.d.KeysPrefix(TableEvents+"-", ctx.Done()) {
		var e event.Event
		if err := p.read(key, &e); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		e.ID = rowID(key)
		e.Source = event.SourceLocal
		e.Normalize()
		all = append(all, e)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Start.Equal(all[j].Start) {
			return all[i].ID < all[j].ID
		}
		return all[i].Start.Before(all[j].Start)
	})
	return all, nil
}

func (p *persistence) PutEvent(e *event.Event) error {
	e.Normalize()
	if e.Created.IsZero() {
		e.Created = time.Now()
	}
	key, err := p.eventKey(e)
	if err != nil {
		return &StoreError{Op: "put", Table: TableEvents, Err: err}
	}
	if err := p.write(key, e); err != nil {
		return &StoreError{Op: "put", Table: TableEvents, Err: err}
	}
	return nil
}

func (p *persistence) DeleteEvent(id string) error {
	return p.deleteByID(TableEvents, id)
}

func (p *persistence) ListTodos(ctx context.Context) ([]todo.Todo, error) {
	all := make([]todo.Todo, 0)
	for key := range p.d.KeysPrefix(TableTodos+"-", ctx.Done()) {
		var t todo.Todo
		if err := p.read(key, &t); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		t.ID = rowID(key)
		all = append(all, t)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Created.Equal(all[j].Created) {
			return all[i].ID < all[j].ID
		}
		return all[i].Created.Before(all[j].Created)
	})
	return all, nil
}

func (p *persistence) PutTodo(t *todo.Todo) error {
	if t.Created.IsZero() {
		t.Created = time.Now()
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	key := toKey(TableTodos, t.Created, t.ID)
	if err := p.write(key, t); err != nil {
		return &StoreError{Op: "put", Table: TableTodos, Err: err}
	}
	return nil
}

func (p *persistence) DeleteTodo(id string) error {
	return p.deleteByID(TableTodos, id)
}

func (p *persistence) ListSessions(ctx context.Context) ([]timer.Session, error) {
	all := make([]timer.Session, 0)
	for key := range p.d.KeysPrefix(TableSessions+"-", ctx.Done()) {
		var s timer.Session
		if err := p.read(key, &s); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		s.ID = rowID(key)
		all = append(all, s)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Started.Before(all[j].Started)
	})
	return all, nil
}

func (p *persistence) PutSession(s *timer.Session) error {
	if s.Created.IsZero() {
		s.Created = time.Now()
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	key := toKey(TableSessions, s.Created, s.ID)
	if err := p.write(key, s); err != nil {
		return &StoreError{Op: "put", Table: TableSessions, Err: err}
	}
	return nil
}

func (p *persistence) read(key string, target any) error {
	val, err := p.d.Read(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(val, target)
}

func (p *persistence) write(key string, row any) error {
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

// deleteByID scans the table for the row with the given id. Rows are
// keyed by date as well, so the date part is recovered from the key.
func (p *persistence) deleteByID(table, id string) error {
	if id == "" {
		return &StoreError{Op: "delete", Table: table, Err: errors.New("id required")}
	}
	suffix := "-" + id
	for key := range p.d.KeysPrefix(table+"-", nil) {
		if strings.HasSuffix(key, suffix) {
			if err := p.d.Erase(key); err != nil {
				return &StoreError{Op: "delete", Table: table, Err: err}
			}
			return nil
		}
	}
	return &StoreError{Op: "delete", Table: table, Err: fmt.Errorf("row %s not found", id)}
}

// eventKey rewrites the row key when the start date moved, so the key
// always reflects the current start day.
func (p *persistence) eventKey(e *event.Event) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
		return toKey(TableEvents, e.Start, e.ID), nil
	}
	key := toKey(TableEvents, e.Start, e.ID)
	suffix := "-" + e.ID
	for existing := range p.d.KeysPrefix(TableEvents+"-", nil) {
		if strings.HasSuffix(existing, suffix) && existing != key {
			if err := p.d.Erase(existing); err != nil {
				return "", err
			}
			break
		}
	}
	return key, nil
}

// Keys look like `table-2006-01-02-id`. Only the first four segments
// become directories; the id keeps any dashes of its own (UUIDs).
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, "-", 5)
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `table-date-id`
func toKey(table string, when time.Time, id string) string {
	return fmt.Sprintf("%s-%s-%s", table, when.Format(layoutISO), id)
}

// rowID extracts the id segment from a row key.
func rowID(key string) string {
	pk := keyToPathTransform(key)
	return pk.FileName
}
