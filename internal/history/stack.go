package history

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dshills/vimtask/internal/command"
)

// DefaultMaxSize is the capacity used when none is configured.
const DefaultMaxSize = 20

// ErrNothingToUndo is returned by callers when Pop finds the stack empty.
var ErrNothingToUndo = errors.New("history: nothing to undo")

// entry wraps a command with metadata.
type entry struct {
	command   command.Undoable
	timestamp time.Time
}

// Info describes a history entry without exposing the command.
type Info struct {
	Description string
	Timestamp   time.Time
}

// Stack is a bounded, oldest-evicting stack of undoable commands.
type Stack struct {
	mu sync.Mutex

	entries []*entry
	maxSize int
}

// NewStack creates an empty stack. A non-positive maxSize selects DefaultMaxSize.
func NewStack(maxSize int) *Stack {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Stack{maxSize: maxSize}
}

// NewStackFrom creates a stack holding cmds, oldest first, trimmed to maxSize.
func NewStackFrom(maxSize int, cmds ...command.Undoable) *Stack {
	s := NewStack(maxSize)
	now := time.Now()
	for _, cmd := range cmds {
		s.entries = append(s.entries, &entry{command: cmd, timestamp: now})
	}
	s.trimLocked()
	return s
}

// Push adds cmd as the newest entry, evicting the oldest entries if the
// stack grows past its capacity. Push never fails.
func (s *Stack) Push(cmd command.Undoable) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, &entry{
		command:   cmd,
		timestamp: time.Now(),
	})
	s.trimLocked()
}

// trimLocked drops the oldest entries until the size is within maxSize.
func (s *Stack) trimLocked() {
	if len(s.entries) <= s.maxSize {
		return
	}
	excess := len(s.entries) - s.maxSize
	// Release evicted commands before reslicing.
	clear(s.entries[:excess])
	s.entries = s.entries[excess:]
}

// Pop removes and returns the newest command. ok is false when the stack
// is empty.
func (s *Stack) Pop() (cmd command.Undoable, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return nil, false
	}
	last := len(s.entries) - 1
	e := s.entries[last]
	s.entries[last] = nil
	s.entries = s.entries[:last]
	return e.command, true
}

// Peek returns info about the newest entry without removing it.
func (s *Stack) Peek() (Info, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return Info{}, false
	}
	return s.entries[len(s.entries)-1].info(), true
}

// Size returns the number of entries.
func (s *Stack) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// IsEmpty reports whether the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return s.Size() == 0
}

// MaxSize returns the capacity.
func (s *Stack) MaxSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxSize
}

// SetMaxSize changes the capacity. Shrinking below the current size evicts
// the oldest entries. A non-positive max selects DefaultMaxSize.
func (s *Stack) SetMaxSize(max int) {
	if max <= 0 {
		max = DefaultMaxSize
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxSize = max
	s.trimLocked()
}

// Clear removes all entries.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Commands returns the commands, oldest first.
func (s *Stack) Commands() []command.Undoable {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmds := make([]command.Undoable, len(s.entries))
	for i, e := range s.entries {
		cmds[i] = e.command
	}
	return cmds
}

// Info returns a description of every entry, oldest first.
func (s *Stack) Info() []Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Info, len(s.entries))
	for i, e := range s.entries {
		result[i] = e.info()
	}
	return result
}

// Equal reports whether both stacks hold equal commands in the same order.
// Capacity and timestamps are not compared.
func (s *Stack) Equal(other *Stack) bool {
	if s == other {
		return true
	}
	if other == nil {
		return false
	}
	a, b := s.Commands(), other.Commands()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !command.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// String returns a debug representation listing entry descriptions.
func (s *Stack) String() string {
	infos := s.Info()
	descs := make([]string, len(infos))
	for i, info := range infos {
		descs[i] = info.Description
	}
	return fmt.Sprintf("Stack[%d/%d]{%s}", len(infos), s.MaxSize(), strings.Join(descs, ", "))
}

func (e *entry) info() Info {
	return Info{
		Description: e.command.Description(),
		Timestamp:   e.timestamp,
	}
}
