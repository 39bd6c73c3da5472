package timer

import "testing"

func TestToggleRoundTrip(t *testing.T) {
	s := NewState()
	s.TimeLeft = 42

	toggled := s.Toggle()
	if !toggled.Active {
		t.Fatal("first toggle did not activate")
	}
	back := toggled.Toggle()
	if back != s {
		t.Errorf("toggle twice = %+v, want %+v", back, s)
	}
}

func TestSwitchModeIdempotentOnCounters(t *testing.T) {
	s := NewState().Toggle()
	s.TimeLeft = 10
	s.TimeElapsed = 99

	once := s.SwitchMode(ModeStopwatch)
	twice := once.SwitchMode(ModeStopwatch)
	if once != twice {
		t.Errorf("switch twice = %+v, want %+v", twice, once)
	}
	if once.Active || once.TimeLeft != PomodoroSeconds || once.TimeElapsed != 0 {
		t.Errorf("switch did not reset: %+v", once)
	}
}

func TestResetKeepsMode(t *testing.T) {
	s := NewState().SwitchMode(ModeStopwatch).Toggle()
	s.TimeElapsed = 17

	r := s.Reset()
	if r.Active || r.Mode != ModeStopwatch || r.TimeElapsed != 0 || r.TimeLeft != PomodoroSeconds {
		t.Errorf("reset = %+v", r)
	}
}

func TestPomodoroTickClampsAtZero(t *testing.T) {
	s := State{Mode: ModePomodoro, TimeLeft: 2, Active: true}

	s = s.Tick()
	if s.TimeLeft != 1 || !s.Active {
		t.Fatalf("after first tick: %+v", s)
	}
	s = s.Tick()
	if s.TimeLeft != 0 || s.Active {
		t.Fatalf("after second tick: %+v", s)
	}
	if !s.Done() {
		t.Error("Done() = false at zero")
	}

	// A stray tick after completion must not go negative.
	s = s.Tick()
	if s.TimeLeft != 0 || s.Active {
		t.Errorf("stray tick changed state: %+v", s)
	}
}

func TestStopwatchTickCounts(t *testing.T) {
	s := State{Mode: ModeStopwatch, Active: true}
	for i := 0; i < 3; i++ {
		s = s.Tick()
	}
	if s.TimeElapsed != 3 {
		t.Errorf("elapsed = %d, want 3", s.TimeElapsed)
	}
	if s.Done() {
		t.Error("stopwatch reported Done")
	}
}

func TestTickIgnoredWhilePaused(t *testing.T) {
	s := State{Mode: ModePomodoro, TimeLeft: 5}
	if got := s.Tick(); got != s {
		t.Errorf("paused tick changed state: %+v", got)
	}
}

func TestDisplayFollowsMode(t *testing.T) {
	s := State{Mode: ModePomodoro, TimeLeft: 7, TimeElapsed: 3}
	if s.Display() != 7 {
		t.Errorf("pomodoro display = %d", s.Display())
	}
	s.Mode = ModeStopwatch
	if s.Display() != 3 {
		t.Errorf("stopwatch display = %d", s.Display())
	}
}
