package command

import (
	"fmt"

	"github.com/dshills/vimtask/internal/task"
)

// AddCommand appends a new task.
type AddCommand struct {
	Title string

	added    task.Index
	executed bool
}

// NewAddCommand creates an add command for the given title.
func NewAddCommand(title string) *AddCommand {
	return &AddCommand{Title: title}
}

// Execute appends a fresh task.
func (c *AddCommand) Execute(list *task.List) error {
	t, err := task.New(c.Title)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	c.added = list.Append(t)
	c.executed = true
	return nil
}

// Undo removes the task added by Execute.
func (c *AddCommand) Undo(list *task.List) error {
	if !c.executed {
		return ErrNotExecuted
	}
	if _, err := list.Remove(c.added); err != nil {
		return fmt.Errorf("undo add task: %w", err)
	}
	c.executed = false
	return nil
}

// Description returns a human-readable description.
func (c *AddCommand) Description() string {
	return fmt.Sprintf("Add task %q", c.Title)
}

// Equal reports whether other adds the same title.
func (c *AddCommand) Equal(other Command) bool {
	o, ok := other.(*AddCommand)
	return ok && o.Title == c.Title
}
