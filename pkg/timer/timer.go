// Package timer implements the pomodoro/stopwatch state machine backing
// the dashboard's timer pane.
package timer

// Mode selects what the timer counts.
type Mode string

const (
	ModePomodoro  Mode = "pomodoro"
	ModeStopwatch Mode = "stopwatch"
)

// PomodoroSeconds is the fixed pomodoro session length.
const PomodoroSeconds = 25 * 60

// State is the complete, transient timer state. It is never persisted;
// completed sessions are recorded separately.
type State struct {
	Mode        Mode
	TimeLeft    int // seconds remaining, pomodoro only
	TimeElapsed int // seconds elapsed, stopwatch only
	Active      bool
}

// NewState returns the initial paused pomodoro state.
func NewState() State {
	return State{Mode: ModePomodoro, TimeLeft: PomodoroSeconds}
}

// Toggle flips between active and paused without touching counters.
func (s State) Toggle() State {
	s.Active = !s.Active
	return s
}

// Reset pauses the timer and restores both counters, keeping the mode.
func (s State) Reset() State {
	s.Active = false
	s.TimeLeft = PomodoroSeconds
	s.TimeElapsed = 0
	return s
}

// SwitchMode moves to the given mode, paused with counters reset,
// regardless of the prior state.
func (s State) SwitchMode(m Mode) State {
	return State{Mode: m, TimeLeft: PomodoroSeconds}
}

// Tick advances the timer by one second. Ticks delivered while paused
// are ignored. A pomodoro reaching zero pauses and clamps; it does not
// go negative and does not change mode.
func (s State) Tick() State {
	if !s.Active {
		return s
	}
	switch s.Mode {
	case ModePomodoro:
		if s.TimeLeft <= 1 {
			s.TimeLeft = 0
			s.Active = false
			return s
		}
		s.TimeLeft--
	case ModeStopwatch:
		s.TimeElapsed++
	}
	return s
}

// Display returns the counter relevant to the current mode.
func (s State) Display() int {
	if s.Mode == ModePomodoro {
		return s.TimeLeft
	}
	return s.TimeElapsed
}

// Done reports whether a pomodoro session has run to completion.
func (s State) Done() bool {
	return s.Mode == ModePomodoro && s.TimeLeft == 0
}
