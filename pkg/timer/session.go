package timer

import "time"

// Session records a single completed or abandoned pomodoro run. Rows
// are written to the local store when a session ends.
type Session struct {
	ID        string     `json:"id"`
	Duration  int        `json:"duration"` // seconds actually spent
	Completed bool       `json:"completed"`
	Started   time.Time  `json:"started_at"`
	Ended     *time.Time `json:"completed_at,omitempty"`
	Created   time.Time  `json:"created_at,omitempty"`
}

// NewSession captures the outcome of a pomodoro run that began at
// started and ended now.
func NewSession(started time.Time, spent int, completed bool) Session {
	now := time.Now()
	return Session{
		Duration:  spent,
		Completed: completed,
		Started:   started,
		Ended:     &now,
		Created:   now,
	}
}
