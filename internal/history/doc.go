// Package history keeps the undo history of a session.
//
// The history is a bounded stack of undoable commands. Pushing past the
// capacity silently drops the oldest entries, so the stack always holds the
// most recent MaxSize commands:
//
//	h := history.NewStack(history.DefaultMaxSize)
//
//	if err := cmd.Execute(list); err == nil {
//	    h.Push(cmd)
//	}
//
//	if cmd, ok := h.Pop(); ok {
//	    cmd.Undo(list)
//	}
//
// Undo is one-shot: a popped command leaves the history and there is no
// redo stack.
//
// Stack methods are individually safe for concurrent use. Callers that
// execute a command and push it, or pop a command and undo it, must hold
// their own lock across the pair if other goroutines share the stack.
package history
