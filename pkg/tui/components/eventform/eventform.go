// Package eventform provides the add/edit event overlay.
package eventform

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tempo/pkg/event"
	"tableflip.dev/tempo/pkg/tui/theme"
)

const (
	layoutDate = "2006-01-02"
	layoutTime = "15:04"
)

type focusField int

const (
	fieldTitle focusField = iota
	fieldDate
	fieldStart
	fieldEnd
	fieldDescription
	fieldCount
)

// SubmitMsg carries the completed form back to the dashboard.
type SubmitMsg struct {
	Event event.Event
}

// CancelMsg signals the overlay should close without saving.
type CancelMsg struct{}

// Model renders an overlay for creating or editing a single event.
type Model struct {
	original event.Event
	editing  bool

	focus      focusField
	colorIndex int

	title       textinput.Model
	date        textinput.Model
	start       textinput.Model
	end         textinput.Model
	description textinput.Model

	errorMsg string
	theme    theme.Theme
}

// New builds a blank form for a new event on the given day.
func New(day time.Time) *Model {
	m := newModel()
	m.date.SetValue(day.Format(layoutDate))
	m.start.SetValue("09:00")
	m.end.SetValue("10:00")
	return m
}

// Edit builds a form pre-filled from an existing event.
func Edit(e event.Event) *Model {
	m := newModel()
	m.original = e
	m.editing = true
	m.title.SetValue(e.Title)
	m.date.SetValue(e.Start.Local().Format(layoutDate))
	m.start.SetValue(e.Start.Local().Format(layoutTime))
	m.end.SetValue(e.EndTime().Local().Format(layoutTime))
	m.description.SetValue(e.Description)
	for i, c := range event.Palette() {
		if c == e.Color.OrDefault() {
			m.colorIndex = i
		}
	}
	return m
}

func newModel() *Model {
	mk := func(placeholder string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.Prompt = ""
		return in
	}
	m := &Model{
		title:       mk("What is happening?"),
		date:        mk(layoutDate),
		start:       mk("09:00"),
		end:         mk("10:00"),
		description: mk("Notes (optional)"),
		theme:       theme.Default(),
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.title.Focus()
}

// Update handles key presses. Tab cycles fields, left/right cycles the
// color swatch, enter submits, esc cancels.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyPressMsg:
		switch v.String() {
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		case "enter":
			e, err := m.buildEvent()
			if err != nil {
				m.errorMsg = err.Error()
				return m, nil
			}
			return m, func() tea.Msg { return SubmitMsg{Event: e} }
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "ctrl+right":
			m.colorIndex = (m.colorIndex + 1) % len(event.Palette())
			return m, nil
		case "ctrl+left":
			m.colorIndex = (m.colorIndex + len(event.Palette()) - 1) % len(event.Palette())
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldDate:
		m.date, cmd = m.date.Update(msg)
	case fieldStart:
		m.start, cmd = m.start.Update(msg)
	case fieldEnd:
		m.end, cmd = m.end.Update(msg)
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f focusField) tea.Cmd {
	m.focus = f
	inputs := []*textinput.Model{&m.title, &m.date, &m.start, &m.end, &m.description}
	var cmd tea.Cmd
	for i, in := range inputs {
		if focusField(i) == f {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (m *Model) buildEvent() (event.Event, error) {
	day, err := time.ParseInLocation(layoutDate, strings.TrimSpace(m.date.Value()), time.Local)
	if err != nil {
		return event.Event{}, errors.New("date must look like 2006-01-02")
	}
	start, err := atTime(day, m.start.Value())
	if err != nil {
		return event.Event{}, errors.New("start must look like 15:04")
	}

	e := m.original
	e.Title = strings.TrimSpace(m.title.Value())
	e.Start = start
	e.Description = strings.TrimSpace(m.description.Value())
	e.Color = event.Palette()[m.colorIndex]

	if strings.TrimSpace(m.end.Value()) != "" {
		end, err := atTime(day, m.end.Value())
		if err != nil {
			return event.Event{}, errors.New("end must look like 15:04")
		}
		if !end.After(start) {
			end = end.Add(24 * time.Hour)
		}
		e.End = &end
	} else {
		e.End = nil
	}

	e.Normalize()
	return e, nil
}

func atTime(day time.Time, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(layoutTime, strings.TrimSpace(clock), time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}

// View renders the form inside a modal frame.
func (m *Model) View() string {
	t := m.theme

	title := "New event"
	if m.editing {
		title = "Edit event"
	}

	swatches := make([]string, 0, len(event.Palette()))
	for i, c := range event.Palette() {
		s := theme.EventColor(c).Render("■")
		if i == m.colorIndex {
			s = theme.EventColor(c).Render("[■]")
		}
		swatches = append(swatches, s)
	}

	rows := []string{
		t.Modal.Title.Render(title),
		"",
		m.row("Title", m.title.View(), fieldTitle),
		m.row("Date", m.date.View(), fieldDate),
		m.row("Start", m.start.View(), fieldStart),
		m.row("End", m.end.View(), fieldEnd),
		m.row("Notes", m.description.View(), fieldDescription),
		fmt.Sprintf("  Color  %s  (ctrl+←/→)", strings.Join(swatches, " ")),
	}
	if m.errorMsg != "" {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(m.errorMsg))
	}
	rows = append(rows, "", t.Footer.Help.Render("enter save · esc cancel · tab next field"))

	return t.Modal.Frame.Render(strings.Join(rows, "\n"))
}

func (m *Model) row(label, input string, f focusField) string {
	marker := "  "
	if m.focus == f {
		marker = "> "
	}
	return fmt.Sprintf("%s%-6s %s", marker, label, input)
}
