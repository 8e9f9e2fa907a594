package app

import (
	"errors"
	"testing"

	"github.com/dshills/vimtask/internal/task"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "op only",
			err:      &OperationError{Op: "undo"},
			expected: "undo",
		},
		{
			name:     "op and target",
			err:      &OperationError{Op: "execute", Target: "Delete task 4"},
			expected: "execute Delete task 4",
		},
		{
			name:     "full error chain",
			err:      &OperationError{Op: "execute", Target: "Delete task 4", Err: task.ErrOutOfRange},
			expected: "execute Delete task 4: " + task.ErrOutOfRange.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	err := NewOperationError("execute", "Mark task 9 done", task.ErrOutOfRange)
	if !errors.Is(err, task.ErrOutOfRange) {
		t.Error("errors.Is should find the wrapped error")
	}

	var nilErr *OperationError
	if nilErr.Unwrap() != nil {
		t.Error("nil OperationError should unwrap to nil")
	}
}

func TestInitError(t *testing.T) {
	cause := errors.New("bad file")
	err := &InitError{Component: "config", Err: cause}

	if !errors.Is(err, ErrInitialization) {
		t.Error("InitError should match ErrInitialization")
	}
	if !errors.Is(err, cause) {
		t.Error("InitError should match its cause")
	}
	if want := "initialization failed: config: bad file"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
