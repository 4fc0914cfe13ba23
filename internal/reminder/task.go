// Package reminder parses reminder commands and fires delayed callbacks
// independently of the main interpretation loop.
package reminder

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks the reminder lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusFired     Status = "fired"
	StatusCancelled Status = "cancelled"
)

// Task is a single delayed reminder. FireAt is always CreatedAt + Delay.
type Task struct {
	ID        string
	Message   string
	Delay     time.Duration
	CreatedAt time.Time
	FireAt    time.Time
	Status    Status
}

// newTask assembles a pending task anchored at now.
func newTask(message string, delay time.Duration, now time.Time) *Task {
	return &Task{
		ID:        uuid.NewString(),
		Message:   message,
		Delay:     delay,
		CreatedAt: now,
		FireAt:    now.Add(delay),
		Status:    StatusPending,
	}
}
