package command

import (
	"errors"

	"github.com/dshills/vimtask/internal/task"
)

// ErrNeedsHistory is returned by UndoCommand.Execute.
var ErrNeedsHistory = errors.New("command: undo must be applied through the session history")

// UndoCommand asks the session to reverse the most recent undoable command.
// It is not itself undoable and is never recorded in the history.
type UndoCommand struct{}

// NewUndoCommand creates an undo request.
func NewUndoCommand() *UndoCommand {
	return &UndoCommand{}
}

// Execute always fails. The session pops the history and calls Undo on the
// popped command instead.
func (*UndoCommand) Execute(*task.List) error {
	return ErrNeedsHistory
}

// Description returns a human-readable description.
func (*UndoCommand) Description() string {
	return "Undo"
}

// Equal reports whether other is also an undo request.
func (*UndoCommand) Equal(other Command) bool {
	_, ok := other.(*UndoCommand)
	return ok
}
