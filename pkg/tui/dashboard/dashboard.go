// Package dashboard mounts the full-screen productivity UI: the week
// grid, the focus timer, the todo pane, and the zen clock.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/event"
	"tableflip.dev/tempo/pkg/store"
	"tableflip.dev/tempo/pkg/timer"
	"tableflip.dev/tempo/pkg/timeutil"
	"tableflip.dev/tempo/pkg/todo"
	"tableflip.dev/tempo/pkg/tui/components/bigclock"
	"tableflip.dev/tempo/pkg/tui/components/eventform"
	"tableflip.dev/tempo/pkg/tui/components/weekgrid"
	"tableflip.dev/tempo/pkg/tui/theme"
)

type pane int

const (
	paneGrid pane = iota
	paneTodos
)

type eventsRefreshedMsg struct {
	events []event.Event
	err    error
}

type todosLoadedMsg struct {
	todos []todo.Todo
	err   error
}

type mutationDoneMsg struct {
	err error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

type clockTickMsg time.Time

// Model is the root Bubble Tea model for the dashboard.
type Model struct {
	ctx     context.Context
	service *app.Service
	theme   theme.Theme

	width  int
	height int

	focus    pane
	zen      bool
	selected time.Time
	eventIdx int

	events []event.Event
	todos  []todo.Todo

	clock timer.State
	// set when the timer is first started, used for session records
	focusStarted time.Time

	form      *eventform.Model
	todoInput textinput.Model
	adding    bool
	todoIdx   int

	status string

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New constructs the dashboard bound to the given service.
func New(ctx context.Context, svc *app.Service) *Model {
	in := textinput.New()
	in.Placeholder = "Add a todo…"
	in.Prompt = "> "

	return &Model{
		ctx:       ctx,
		service:   svc,
		theme:     theme.Default(),
		selected:  timeutil.StartOfDay(time.Now()),
		clock:     timer.NewState(),
		todoInput: in,
	}
}

// Run launches the Bubble Tea program. With zen set the UI opens
// directly on the full-screen clock.
func Run(ctx context.Context, svc *app.Service, zen bool) error {
	m := New(ctx, svc)
	m.zen = zen
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshEvents(),
		m.loadTodos(),
		startWatchCmd(m.ctx, m.service),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func (m *Model) refreshEvents() tea.Cmd {
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		events, err := svc.Refresh(ctx)
		return eventsRefreshedMsg{events: events, err: err}
	}
}

func (m *Model) loadTodos() tea.Cmd {
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		todos, err := svc.Todos(ctx)
		return todosLoadedMsg{todos: todos, err: err}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case eventsRefreshedMsg:
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
			break
		}
		m.events = msg.events
		m.clampEventIdx()

	case todosLoadedMsg:
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
			break
		}
		m.todos = msg.todos
		if m.todoIdx >= len(m.todos) {
			m.todoIdx = max(0, len(m.todos)-1)
		}

	case mutationDoneMsg:
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
			break
		}
		cmds = append(cmds, m.refreshEvents(), m.loadTodos())

	case watchStartedMsg:
		if msg.err != nil {
			m.status = "ERR: watch " + msg.err.Error()
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case watchEventMsg:
		switch msg.event.Table {
		case store.TableEvents:
			cmds = append(cmds, m.refreshEvents())
		case store.TableTodos:
			cmds = append(cmds, m.loadTodos())
		case store.TableSessions:
			// nothing on screen to update
		default:
			cmds = append(cmds, m.refreshEvents(), m.loadTodos())
		}
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case watchStoppedMsg:
		m.stopWatch()
		cmds = append(cmds, startWatchCmd(m.ctx, m.service))

	case clockTickMsg:
		if cmd := m.tickTimer(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, tickCmd())

	case eventform.SubmitMsg:
		m.form = nil
		cmds = append(cmds, m.saveEvent(msg.Event))

	case eventform.CancelMsg:
		m.form = nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) tickTimer() tea.Cmd {
	if !m.clock.Active {
		return nil
	}
	before := m.clock
	m.clock = m.clock.Tick()
	if m.clock.Done() && !before.Done() {
		m.status = "Focus session complete"
		return m.recordSession(true)
	}
	return nil
}

func (m *Model) recordSession(completed bool) tea.Cmd {
	spent := m.clock.TimeElapsed
	if m.clock.Mode == timer.ModePomodoro {
		spent = timer.PomodoroSeconds - m.clock.TimeLeft
	}
	if spent == 0 {
		return nil
	}
	started := m.focusStarted
	if started.IsZero() {
		started = time.Now().Add(-time.Duration(spent) * time.Second)
	}
	svc, ctx := m.service, m.ctx
	sess := timer.NewSession(started, spent, completed)
	return func() tea.Msg {
		return mutationDoneMsg{err: svc.RecordSession(ctx, sess)}
	}
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	// overlays swallow everything
	if m.form != nil {
		form, cmd := m.form.Update(msg)
		m.form = form
		return m, cmd
	}
	if m.adding {
		return m.handleTodoInput(msg)
	}

	if m.zen {
		switch msg.String() {
		case "ctrl+c", "q":
			m.stopWatch()
			return m, tea.Quit
		default:
			m.zen = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.stopWatch()
		return m, tea.Quit
	case "z":
		m.zen = true
	case "tab":
		if m.focus == paneGrid {
			m.focus = paneTodos
		} else {
			m.focus = paneGrid
		}
	case "space":
		cmd := m.toggleTimer()
		return m, cmd
	case "m":
		return m, m.switchTimerMode()
	case "r":
		return m, m.resetTimer()
	case "R":
		return m, tea.Batch(m.refreshEvents(), m.loadTodos())
	case "n":
		m.form = eventform.New(m.selected)
		return m, m.form.Init()
	case "a":
		if m.focus == paneTodos {
			m.adding = true
			m.todoInput.SetValue("")
			return m, m.todoInput.Focus()
		}
	case "left", "h":
		if m.focus == paneGrid {
			m.selected = m.selected.AddDate(0, 0, -1)
			m.eventIdx = 0
		}
	case "right", "l":
		if m.focus == paneGrid {
			m.selected = m.selected.AddDate(0, 0, 1)
			m.eventIdx = 0
		}
	case "up", "k":
		m.moveSelection(-1)
	case "down", "j":
		m.moveSelection(1)
	case "enter":
		if m.focus == paneGrid {
			if e, ok := m.selectedEvent(); ok {
				m.form = eventform.Edit(e)
				return m, m.form.Init()
			}
		} else if td, ok := m.selectedTodo(); ok {
			return m, m.toggleTodo(td.ID)
		}
	case "d", "x":
		if m.focus == paneGrid {
			if e, ok := m.selectedEvent(); ok {
				return m, m.deleteEvent(e.ID)
			}
		} else if td, ok := m.selectedTodo(); ok {
			return m, m.removeTodo(td.ID)
		}
	}
	return m, nil
}

func (m *Model) handleTodoInput(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.todoInput.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.todoInput.Value())
		m.adding = false
		m.todoInput.Blur()
		if text == "" {
			return m, nil
		}
		svc, ctx := m.service, m.ctx
		return m, func() tea.Msg {
			_, err := svc.AddTodo(ctx, text)
			return mutationDoneMsg{err: err}
		}
	}
	var cmd tea.Cmd
	m.todoInput, cmd = m.todoInput.Update(msg)
	return m, cmd
}

func (m *Model) toggleTimer() tea.Cmd {
	wasIdle := !m.clock.Active
	m.clock = m.clock.Toggle()
	if wasIdle && m.focusStarted.IsZero() {
		m.focusStarted = time.Now()
	}
	return nil
}

func (m *Model) switchTimerMode() tea.Cmd {
	cmd := m.recordPartial()
	next := timer.ModeStopwatch
	if m.clock.Mode == timer.ModeStopwatch {
		next = timer.ModePomodoro
	}
	m.clock = m.clock.SwitchMode(next)
	m.focusStarted = time.Time{}
	return cmd
}

func (m *Model) resetTimer() tea.Cmd {
	cmd := m.recordPartial()
	m.clock = m.clock.Reset()
	m.focusStarted = time.Time{}
	return cmd
}

// recordPartial logs an abandoned run. A completed pomodoro was
// already recorded when it hit zero.
func (m *Model) recordPartial() tea.Cmd {
	if m.clock.Done() {
		return nil
	}
	return m.recordSession(false)
}

func (m *Model) saveEvent(e event.Event) tea.Cmd {
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		return mutationDoneMsg{err: svc.Save(ctx, e)}
	}
}

func (m *Model) deleteEvent(id string) tea.Cmd {
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		return mutationDoneMsg{err: svc.Delete(ctx, id)}
	}
}

func (m *Model) toggleTodo(id string) tea.Cmd {
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		_, err := svc.ToggleTodo(ctx, id)
		return mutationDoneMsg{err: err}
	}
}

func (m *Model) removeTodo(id string) tea.Cmd {
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		return mutationDoneMsg{err: svc.RemoveTodo(ctx, id)}
	}
}

func (m *Model) moveSelection(delta int) {
	if m.focus == paneGrid {
		n := len(m.dayEvents())
		if n == 0 {
			return
		}
		m.eventIdx = (m.eventIdx + delta + n) % n
		return
	}
	n := len(m.todos)
	if n == 0 {
		return
	}
	m.todoIdx = (m.todoIdx + delta + n) % n
}

func (m *Model) dayEvents() []event.Event {
	out := make([]event.Event, 0, 4)
	for _, e := range m.events {
		if timeutil.SameDay(e.Start, m.selected) {
			out = append(out, e)
		}
	}
	return out
}

func (m *Model) selectedEvent() (event.Event, bool) {
	day := m.dayEvents()
	if len(day) == 0 || m.eventIdx >= len(day) {
		return event.Event{}, false
	}
	return day[m.eventIdx], true
}

func (m *Model) selectedTodo() (todo.Todo, bool) {
	if len(m.todos) == 0 || m.todoIdx >= len(m.todos) {
		return todo.Todo{}, false
	}
	return m.todos[m.todoIdx], true
}

func (m *Model) clampEventIdx() {
	if n := len(m.dayEvents()); m.eventIdx >= n {
		m.eventIdx = max(0, n-1)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.zen {
		return m.zenView()
	}

	grid := m.gridView()
	side := lipgloss.JoinVertical(lipgloss.Left, m.timerView(), m.todoView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, side)
	out := lipgloss.JoinVertical(lipgloss.Left, body, m.footerView())

	if m.form != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.View())
	}
	return out
}

func (m *Model) zenView() string {
	face := bigclock.RenderTime(time.Now())
	date := m.theme.Panel.Faint.Render(time.Now().Format("Monday, January 2"))
	block := lipgloss.JoinVertical(lipgloss.Center, face, "", date)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

func (m *Model) gridView() string {
	t := m.theme
	frame := t.Panel.Frame
	if m.focus == paneGrid {
		frame = t.Panel.Focused
	}

	width := m.width*2/3 - 4
	height := m.height - 6

	days := weekgrid.Days(m.selected, m.events, m.selected)
	grid := weekgrid.Render(days, weekgrid.Options{
		HeaderStyle:   t.Grid.DayHeader,
		TodayStyle:    t.Grid.Today,
		SelectedStyle: t.Grid.Selected,
		EmptyStyle:    t.Grid.Empty,
		Width:         width,
		Height:        height,
	})

	title := t.Panel.Title.Render("Week of " + timeutil.Week(m.selected)[0].Format("Jan 2"))
	return frame.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, title, grid))
}

func (m *Model) timerView() string {
	t := m.theme
	st := m.clock

	pomo := t.Timer.ModeIdle.Render("pomodoro")
	watch := t.Timer.ModeIdle.Render("stopwatch")
	if st.Mode == timer.ModePomodoro {
		pomo = t.Timer.ModeActive.Render("pomodoro")
	} else {
		watch = t.Timer.ModeActive.Render("stopwatch")
	}

	clock := t.Timer.Clock.Render(bigclock.Render(timeutil.FormatClock(st.Display())))
	state := t.Panel.Faint.Render("paused")
	if st.Active {
		state = t.Panel.Faint.Render("running")
	}
	if st.Done() {
		state = t.Timer.Done.Render("done")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		pomo+"  "+watch,
		clock,
		state,
	)
	return t.Panel.Frame.Width(m.width/3 - 2).Render(body)
}

func (m *Model) todoView() string {
	t := m.theme
	frame := t.Panel.Frame
	if m.focus == paneTodos {
		frame = t.Panel.Focused
	}

	lines := []string{t.Panel.Title.Render("Todos")}
	for i, td := range m.todos {
		mark := "•"
		text := td.Text
		style := t.Panel.Body
		if td.Completed {
			mark = "╳"
			style = t.Panel.Faint
		}
		line := fmt.Sprintf("%s %s", mark, text)
		if m.focus == paneTodos && i == m.todoIdx && !m.adding {
			line = t.Grid.Selected.Render(line)
		} else {
			line = style.Render(line)
		}
		lines = append(lines, line)
	}
	if len(m.todos) == 0 {
		lines = append(lines, t.Panel.Faint.Render("nothing yet"))
	}
	if m.adding {
		lines = append(lines, m.todoInput.View())
	}
	return frame.Width(m.width/3 - 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) footerView() string {
	t := m.theme

	conn := "offline"
	if m.service != nil && m.service.Connected() {
		conn = "connected"
	}

	help := "q quit · tab focus · n new event · a add todo · space timer · m mode · z zen"
	status := m.status
	if status == "" {
		status = conn
	}
	return t.Footer.Help.Render(help) + "  " + t.Footer.Status.Render(status)
}
