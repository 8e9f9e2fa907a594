// Package command defines the commands produced by the command-line grammars.
//
// Every command can be executed against a task list. Commands that can be
// reversed also implement Undoable; those are the only ones recorded in the
// undo history.
package command

import (
	"errors"

	"github.com/dshills/vimtask/internal/task"
)

// ErrNotExecuted indicates Undo was called on a command that never ran.
var ErrNotExecuted = errors.New("command: not executed")

// Command is an action parsed from one input line.
type Command interface {
	// Execute applies the command to the list.
	Execute(list *task.List) error

	// Description returns a human-readable description of the command.
	Description() string
}

// Undoable is a Command that can reverse its own effect.
type Undoable interface {
	Command

	// Undo reverses a previous successful Execute.
	Undo(list *task.List) error
}

// Equal reports whether two commands have the same parsed arguments.
// Commands that do not define an Equal method compare by identity.
func Equal(a, b Command) bool {
	if e, ok := a.(interface{ Equal(Command) bool }); ok {
		return e.Equal(b)
	}
	return a == b
}
