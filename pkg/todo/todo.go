// Package todo defines the to-do list row model.
package todo

import "time"

// Todo is a single to-do list row. Ordering is by creation time
// ascending; the id is a generated UUID.
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Created   time.Time `json:"created_at"`
}

// New returns an unfinished todo stamped with the current time. The id
// is left empty so the store can assign one.
func New(text string) Todo {
	return Todo{Text: text, Created: time.Now()}
}
