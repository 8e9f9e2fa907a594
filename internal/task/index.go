package task

import (
	"fmt"
	"math"
)

// Index is a position in a task list.
type Index struct {
	zeroBased int
}

// FromOneBased creates an Index from a user-facing position.
func FromOneBased(n int) (Index, error) {
	if n <= 0 {
		return Index{}, fmt.Errorf("%w: %d", ErrInvalidIndex, n)
	}
	return Index{zeroBased: n - 1}, nil
}

// FromZeroBased creates an Index from an internal position.
func FromZeroBased(n int) (Index, error) {
	if n < 0 || n == math.MaxInt {
		return Index{}, fmt.Errorf("%w: %d", ErrInvalidIndex, n)
	}
	return Index{zeroBased: n}, nil
}

// ZeroBased returns the internal position.
func (i Index) ZeroBased() int {
	return i.zeroBased
}

// OneBased returns the user-facing position.
func (i Index) OneBased() int {
	return i.zeroBased + 1
}

// String returns the user-facing position.
func (i Index) String() string {
	return fmt.Sprintf("%d", i.OneBased())
}
