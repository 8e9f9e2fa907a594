package task

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Status is the progress state of a task.
type Status uint8

const (
	// StatusTodo is a task that has not been started.
	StatusTodo Status = iota
	// StatusDoing is a task in progress.
	StatusDoing
	// StatusDone is a completed task.
	StatusDone
)

// String returns the status name as typed on the command line.
func (s Status) String() string {
	switch s {
	case StatusTodo:
		return "todo"
	case StatusDoing:
		return "doing"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// ParseStatus parses a status name. Matching is exact.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "todo":
		return StatusTodo, nil
	case "doing":
		return StatusDoing, nil
	case "done":
		return StatusDone, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// Task is a single entry in the list.
type Task struct {
	ID     uuid.UUID
	Title  string
	Status Status
}

// New creates a todo task with a fresh ID.
func New(title string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	return Task{
		ID:     uuid.New(),
		Title:  title,
		Status: StatusTodo,
	}, nil
}

// String returns a one-line rendering of the task.
func (t Task) String() string {
	mark := " "
	switch t.Status {
	case StatusDoing:
		mark = "~"
	case StatusDone:
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s", mark, t.Title)
}
