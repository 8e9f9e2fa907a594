package command

import (
	"fmt"

	"github.com/dshills/vimtask/internal/task"
)

// DeleteCommand removes the task at Index.
type DeleteCommand struct {
	Index task.Index

	deleted  task.Task
	executed bool
}

// NewDeleteCommand creates a delete command for the given position.
func NewDeleteCommand(index task.Index) *DeleteCommand {
	return &DeleteCommand{Index: index}
}

// Execute removes the task and remembers it for Undo.
func (c *DeleteCommand) Execute(list *task.List) error {
	t, err := list.Remove(c.Index)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", c.Index, err)
	}
	c.deleted = t
	c.executed = true
	return nil
}

// Undo puts the deleted task back at its original position.
func (c *DeleteCommand) Undo(list *task.List) error {
	if !c.executed {
		return ErrNotExecuted
	}
	if err := list.Insert(c.Index, c.deleted); err != nil {
		return fmt.Errorf("undo delete task %s: %w", c.Index, err)
	}
	c.executed = false
	return nil
}

// Deleted returns the removed task after a successful Execute.
func (c *DeleteCommand) Deleted() (task.Task, bool) {
	return c.deleted, c.executed
}

// Description returns a human-readable description.
func (c *DeleteCommand) Description() string {
	if c.executed {
		return fmt.Sprintf("Delete task %s %q", c.Index, c.deleted.Title)
	}
	return fmt.Sprintf("Delete task %s", c.Index)
}

// Equal reports whether other deletes the same position.
func (c *DeleteCommand) Equal(other Command) bool {
	o, ok := other.(*DeleteCommand)
	return ok && o.Index == c.Index
}
