package task

import "errors"

// Task errors.
var (
	// ErrInvalidIndex indicates a position that can never address a task.
	ErrInvalidIndex = errors.New("task: invalid index")

	// ErrOutOfRange indicates an index beyond the end of the list.
	ErrOutOfRange = errors.New("task: index out of range")

	// ErrEmptyTitle indicates a task without a title.
	ErrEmptyTitle = errors.New("task: empty title")

	// ErrUnknownStatus indicates an unrecognized status name.
	ErrUnknownStatus = errors.New("task: unknown status")
)
