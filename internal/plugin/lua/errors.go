package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrInvalidAlias is returned for alias names that cannot match a word.
	ErrInvalidAlias = errors.New("invalid alias")
)
