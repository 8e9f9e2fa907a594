package command

import (
	"fmt"

	"github.com/dshills/vimtask/internal/task"
)

// MarkCommand sets the status of one task.
type MarkCommand struct {
	Index  task.Index
	Status task.Status

	previous task.Status
	executed bool
}

// NewMarkCommand creates a mark command.
func NewMarkCommand(index task.Index, status task.Status) *MarkCommand {
	return &MarkCommand{Index: index, Status: status}
}

// Execute sets the new status and remembers the old one.
func (c *MarkCommand) Execute(list *task.List) error {
	prev, err := list.SetStatus(c.Index, c.Status)
	if err != nil {
		return fmt.Errorf("mark task %s: %w", c.Index, err)
	}
	c.previous = prev
	c.executed = true
	return nil
}

// Undo restores the status the task had before Execute.
func (c *MarkCommand) Undo(list *task.List) error {
	if !c.executed {
		return ErrNotExecuted
	}
	if _, err := list.SetStatus(c.Index, c.previous); err != nil {
		return fmt.Errorf("undo mark task %s: %w", c.Index, err)
	}
	c.executed = false
	return nil
}

// Description returns a human-readable description.
func (c *MarkCommand) Description() string {
	return fmt.Sprintf("Mark task %s %s", c.Index, c.Status)
}

// Equal reports whether other sets the same status on the same position.
func (c *MarkCommand) Equal(other Command) bool {
	o, ok := other.(*MarkCommand)
	return ok && o.Index == c.Index && o.Status == c.Status
}
