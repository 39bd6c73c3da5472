package app

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"tableflip.dev/tempo/pkg/auth"
	"tableflip.dev/tempo/pkg/event"
	"tableflip.dev/tempo/pkg/store"
	"tableflip.dev/tempo/pkg/timer"
	"tableflip.dev/tempo/pkg/todo"
)

// fakeStore is an in-memory Persistence for service tests.
type fakeStore struct {
	mu       sync.Mutex
	events   map[string]event.Event
	todos    map[string]todo.Todo
	sessions []timer.Session
	failPut  error
	deletes  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events: make(map[string]event.Event),
		todos:  make(map[string]todo.Todo),
	}
}

func (f *fakeStore) ListEvents(ctx context.Context) ([]event.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]event.Event, 0, len(f.events))
	for _, e := range f.events {
		e.Source = event.SourceLocal
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (f *fakeStore) PutEvent(e *event.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut != nil {
		return f.failPut
	}
	if e.ID == "" {
		e.ID = "local-1"
	}
	f.events[e.ID] = *e
	return nil
}

func (f *fakeStore) DeleteEvent(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if _, ok := f.events[id]; !ok {
		return &store.StoreError{Op: "delete", Table: store.TableEvents, Err: errors.New("not found")}
	}
	delete(f.events, id)
	return nil
}

func (f *fakeStore) ListTodos(ctx context.Context) ([]todo.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]todo.Todo, 0, len(f.todos))
	for _, t := range f.todos {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.Before(out[j].Created) })
	return out, nil
}

func (f *fakeStore) PutTodo(t *todo.Todo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == "" {
		t.ID = "todo-1"
	}
	f.todos[t.ID] = *t
	return nil
}

func (f *fakeStore) DeleteTodo(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.todos, id)
	return nil
}

func (f *fakeStore) ListSessions(ctx context.Context) ([]timer.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]timer.Session(nil), f.sessions...), nil
}

func (f *fakeStore) PutSession(s *timer.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == "" {
		s.ID = "sess-1"
	}
	f.sessions = append(f.sessions, *s)
	return nil
}

func (f *fakeStore) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

// fakeRemote is a scriptable Remote.
type fakeRemote struct {
	mu       sync.Mutex
	events   []event.Event
	readable bool
	auth     bool
	fetchErr error
	writeErr error
	fetchFn  func() ([]event.Event, error)

	creates, updates, deletes int
}

func (f *fakeRemote) FetchEvents(ctx context.Context, start, end time.Time) ([]event.Event, error) {
	f.mu.Lock()
	fn := f.fetchFn
	f.mu.Unlock()
	if fn != nil {
		return fn()
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]event.Event, len(f.events))
	copy(out, f.events)
	for i := range out {
		out[i].Source = event.SourceRemote
	}
	return out, nil
}

func (f *fakeRemote) CreateEvent(ctx context.Context, e event.Event) (event.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return event.Event{}, f.writeErr
	}
	f.creates++
	e.ID = "remote-new"
	e.Source = event.SourceRemote
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeRemote) UpdateEvent(ctx context.Context, e event.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.updates++
	for i := range f.events {
		if f.events[i].ID == e.ID {
			f.events[i] = e
		}
	}
	return nil
}

func (f *fakeRemote) DeleteEvent(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.deletes++
	kept := f.events[:0]
	for _, e := range f.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	f.events = kept
	return nil
}

func (f *fakeRemote) Authorized() bool { return f.auth }
func (f *fakeRemote) Readable() bool   { return f.readable }

func testSession(t *testing.T, token string) *auth.Session {
	t.Helper()
	s, err := auth.LoadSessionFrom(filepath.Join(t.TempDir(), "token.json"))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if token != "" {
		if err := s.Set(token); err != nil {
			t.Fatalf("set token: %v", err)
		}
	}
	return s
}

func TestRefreshMergesLocalThenRemote(t *testing.T) {
	fs := newFakeStore()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	local := event.Event{ID: "a", Title: "Gym", Start: start}
	if err := fs.PutEvent(&local); err != nil {
		t.Fatal(err)
	}

	remote := &fakeRemote{readable: true, events: []event.Event{
		event.New("Standup", start.Add(time.Hour)),
	}}
	remote.events[0].ID = "g1"

	svc := &Service{Persistence: fs, Remote: remote, Session: testSession(t, "")}

	merged, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("len = %d, want 2", len(merged))
	}
	if merged[0].ID != "a" || merged[0].Source != event.SourceLocal {
		t.Errorf("first = %+v, want local a", merged[0])
	}
	if merged[0].Title != "Gym" || !merged[0].Start.Equal(start) {
		t.Errorf("local fields changed: %+v", merged[0])
	}
	if merged[1].ID != "g1" || merged[1].Source != event.SourceRemote {
		t.Errorf("second = %+v, want remote g1", merged[1])
	}
}

func TestRefreshRemoteFailureDegrades(t *testing.T) {
	fs := newFakeStore()
	e := event.Event{ID: "a", Title: "x", Start: time.Now()}
	fs.PutEvent(&e)

	remote := &fakeRemote{readable: true, fetchErr: errors.New("boom")}
	svc := &Service{Persistence: fs, Remote: remote, Session: testSession(t, "")}

	merged, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(merged) != 1 || merged[0].ID != "a" {
		t.Errorf("merged = %+v, want local only", merged)
	}
}

func TestRefreshGenerationFencing(t *testing.T) {
	fs := newFakeStore()

	release := make(chan struct{})
	calls := 0
	var mu sync.Mutex
	remote := &fakeRemote{readable: true}
	remote.fetchFn = func() ([]event.Event, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			<-release // first refresh stalls until after the second lands
			return []event.Event{{ID: "stale", Source: event.SourceRemote}}, nil
		}
		return []event.Event{{ID: "fresh", Source: event.SourceRemote}}, nil
	}

	svc := &Service{Persistence: fs, Remote: remote, Session: testSession(t, "")}

	done := make(chan []event.Event)
	go func() {
		got, _ := svc.Refresh(context.Background())
		done <- got
	}()

	// Wait for the first fetch to start, then run a second refresh.
	for {
		mu.Lock()
		started := calls > 0
		mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}

	close(release)
	stale := <-done

	// The stale result must not be applied; both views report "fresh".
	if len(stale) != 1 || stale[0].ID != "fresh" {
		t.Errorf("stale refresh returned %+v, want fenced result", stale)
	}
	current := svc.Events()
	if len(current) != 1 || current[0].ID != "fresh" {
		t.Errorf("collection = %+v, want fresh", current)
	}
}

func TestSaveNewEventLandsLocallyWhenDisconnected(t *testing.T) {
	fs := newFakeStore()
	remote := &fakeRemote{readable: true}
	svc := &Service{Persistence: fs, Remote: remote, Session: testSession(t, "")}

	if err := svc.Save(context.Background(), event.New("Plan", time.Now())); err != nil {
		t.Fatalf("save: %v", err)
	}
	if remote.creates != 0 {
		t.Errorf("remote creates = %d, want 0", remote.creates)
	}
	if len(fs.events) != 1 {
		t.Errorf("local events = %d, want 1", len(fs.events))
	}
}

func TestSaveNewEventLandsRemotelyWhenConnected(t *testing.T) {
	fs := newFakeStore()
	remote := &fakeRemote{readable: true, auth: true}
	svc := &Service{Persistence: fs, Remote: remote, Session: testSession(t, "tok")}

	if err := svc.Save(context.Background(), event.New("Plan", time.Now())); err != nil {
		t.Fatalf("save: %v", err)
	}
	if remote.creates != 1 {
		t.Errorf("remote creates = %d, want 1", remote.creates)
	}
	if len(fs.events) != 0 {
		t.Errorf("local events = %d, want 0", len(fs.events))
	}
}

func TestSaveRemoteEventUnauthorizedRoutesLocal(t *testing.T) {
	fs := newFakeStore()
	remote := &fakeRemote{readable: true, events: []event.Event{{ID: "g1", Title: "Standup", Start: time.Now()}}}
	svc := &Service{Persistence: fs, Remote: remote, Session: testSession(t, "")}

	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	edited, _ := event.ByID(svc.Events(), "g1")
	edited.Title = "Standup (moved)"

	if err := svc.Save(context.Background(), edited); err != nil {
		t.Fatalf("save: %v", err)
	}
	if remote.updates != 0 {
		t.Errorf("remote updates = %d, want 0", remote.updates)
	}
	got, ok := fs.events["g1"]
	if !ok || got.Title != "Standup (moved)" {
		t.Errorf("local copy = %+v", got)
	}
}

func TestSaveRemoteEventAuthorizedUpdatesRemote(t *testing.T) {
	fs := newFakeStore()
	remote := &fakeRemote{readable: true, auth: true, events: []event.Event{{ID: "g1", Title: "Standup", Start: time.Now()}}}
	svc := &Service{Persistence: fs, Remote: remote, Session: testSession(t, "tok")}

	svc.Refresh(context.Background())
	edited, _ := event.ByID(svc.Events(), "g1")
	edited.Title = "Standup II"

	if err := svc.Save(context.Background(), edited); err != nil {
		t.Fatalf("save: %v", err)
	}
	if remote.updates != 1 || len(fs.events) != 0 {
		t.Errorf("updates = %d, local = %d", remote.updates, len(fs.events))
	}
}

func TestFailedSaveLeavesCollectionUntouched(t *testing.T) {
	fs := newFakeStore()
	e := event.Event{ID: "a", Title: "keep", Start: time.Now()}
	fs.PutEvent(&e)

	svc := &Service{Persistence: fs, Session: testSession(t, "")}
	svc.Refresh(context.Background())
	before := svc.Events()

	fs.failPut = errors.New("disk full")
	err := svc.Save(context.Background(), event.New("doomed", time.Now()))
	if err == nil {
		t.Fatal("save succeeded, want error")
	}

	after := svc.Events()
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Errorf("collection changed on failed save: %+v", after)
	}
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	fs := newFakeStore()
	remote := &fakeRemote{readable: true, auth: true}
	svc := &Service{Persistence: fs, Remote: remote, Session: testSession(t, "tok")}
	svc.Refresh(context.Background())

	if err := svc.Delete(context.Background(), "ghost"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if fs.deletes != 0 || remote.deletes != 0 {
		t.Errorf("adapters called for unknown id: local=%d remote=%d", fs.deletes, remote.deletes)
	}
}

func TestDeleteRoutesByProvenance(t *testing.T) {
	fs := newFakeStore()
	le := event.Event{ID: "a", Title: "local", Start: time.Now()}
	fs.PutEvent(&le)
	remote := &fakeRemote{readable: true, auth: true, events: []event.Event{{ID: "g1", Title: "remote", Start: time.Now()}}}
	svc := &Service{Persistence: fs, Remote: remote, Session: testSession(t, "tok")}
	svc.Refresh(context.Background())

	if err := svc.Delete(context.Background(), "g1"); err != nil {
		t.Fatalf("delete remote: %v", err)
	}
	if remote.deletes != 1 {
		t.Errorf("remote deletes = %d, want 1", remote.deletes)
	}

	if err := svc.Delete(context.Background(), "a"); err != nil {
		t.Fatalf("delete local: %v", err)
	}
	if _, ok := fs.events["a"]; ok {
		t.Error("local event still present")
	}
}

func TestConnectAndDisconnectRefresh(t *testing.T) {
	fs := newFakeStore()
	remote := &fakeRemote{readable: true, events: []event.Event{{ID: "g1", Title: "remote", Start: time.Now()}}}
	sess := testSession(t, "")
	svc := &Service{Persistence: fs, Remote: remote, Session: sess}

	if err := svc.Connect(context.Background(), "tok"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if !svc.Connected() {
		t.Error("not connected after Connect")
	}
	if got := svc.Events(); len(got) != 1 || got[0].ID != "g1" {
		t.Errorf("events after connect = %+v", got)
	}

	if err := svc.Disconnect(context.Background()); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if svc.Connected() {
		t.Error("still connected after Disconnect")
	}
}

func TestTodoLifecycle(t *testing.T) {
	fs := newFakeStore()
	svc := &Service{Persistence: fs}
	ctx := context.Background()

	added, err := svc.AddTodo(ctx, "write tests")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	toggled, err := svc.ToggleTodo(ctx, added.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Completed {
		t.Error("toggle did not complete")
	}

	if err := svc.RemoveTodo(ctx, added.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	todos, _ := svc.Todos(ctx)
	if len(todos) != 0 {
		t.Errorf("todos = %+v, want empty", todos)
	}
}

func TestRecordSession(t *testing.T) {
	fs := newFakeStore()
	svc := &Service{Persistence: fs}

	sess := timer.NewSession(time.Now().Add(-10*time.Minute), 600, false)
	if err := svc.RecordSession(context.Background(), sess); err != nil {
		t.Fatalf("record: %v", err)
	}
	got, _ := svc.Sessions(context.Background())
	if len(got) != 1 || got[0].Duration != 600 {
		t.Errorf("sessions = %+v", got)
	}
}

func TestDeleteRemoteWhileDisconnectedNeedsReconnect(t *testing.T) {
	fs := newFakeStore()
	remote := &fakeRemote{readable: true, events: []event.Event{{ID: "g1", Title: "remote", Start: time.Now()}}}
	svc := &Service{Persistence: fs, Remote: remote, Session: testSession(t, "")}
	svc.Refresh(context.Background())

	err := svc.Delete(context.Background(), "g1")
	if !errors.Is(err, ErrReconnectRequired) {
		t.Fatalf("err = %v, want ErrReconnectRequired", err)
	}
	if remote.deletes != 0 {
		t.Errorf("remote deletes = %d, want 0", remote.deletes)
	}
	if fs.deletes != 0 {
		t.Errorf("store deletes = %d, want 0", fs.deletes)
	}
}
