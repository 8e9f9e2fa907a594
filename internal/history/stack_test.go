package history

import (
	"strings"
	"testing"

	"github.com/dshills/vimtask/internal/command"
	"github.com/dshills/vimtask/internal/task"
)

func deleteAt(t *testing.T, n int) *command.DeleteCommand {
	t.Helper()
	idx, err := task.FromOneBased(n)
	if err != nil {
		t.Fatalf("FromOneBased(%d) error = %v", n, err)
	}
	return command.NewDeleteCommand(idx)
}

func TestNewStack(t *testing.T) {
	s := NewStack(0)
	if s.MaxSize() != DefaultMaxSize {
		t.Errorf("MaxSize() = %d, want %d", s.MaxSize(), DefaultMaxSize)
	}
	if !s.IsEmpty() || s.Size() != 0 {
		t.Error("new stack is not empty")
	}
	if DefaultMaxSize != 20 {
		t.Errorf("DefaultMaxSize = %d", DefaultMaxSize)
	}
}

func TestPushPop(t *testing.T) {
	s := NewStack(DefaultMaxSize)
	first, second := deleteAt(t, 1), deleteAt(t, 2)
	s.Push(first)
	s.Push(second)

	if s.Size() != 2 {
		t.Fatalf("Size() = %d", s.Size())
	}
	cmd, ok := s.Pop()
	if !ok || cmd != command.Undoable(second) {
		t.Errorf("Pop() = %v, %v, want newest", cmd, ok)
	}
	cmd, ok = s.Pop()
	if !ok || cmd != command.Undoable(first) {
		t.Errorf("Pop() = %v, %v, want oldest", cmd, ok)
	}
}

func TestPopEmpty(t *testing.T) {
	s := NewStack(DefaultMaxSize)
	cmd, ok := s.Pop()
	if ok || cmd != nil {
		t.Errorf("Pop() on empty = %v, %v", cmd, ok)
	}
	if _, ok := s.Peek(); ok {
		t.Error("Peek() on empty returned ok")
	}
}

func TestBoundedWindow(t *testing.T) {
	s := NewStack(DefaultMaxSize)
	pushed := make([]*command.DeleteCommand, 25)
	for i := range pushed {
		pushed[i] = deleteAt(t, i+1)
		s.Push(pushed[i])
		if s.Size() > DefaultMaxSize {
			t.Fatalf("Size() = %d after push %d", s.Size(), i+1)
		}
	}

	if s.Size() != 20 {
		t.Fatalf("Size() = %d, want 20", s.Size())
	}
	// Commands #6 through #25, oldest first.
	cmds := s.Commands()
	for i, cmd := range cmds {
		if cmd != command.Undoable(pushed[i+5]) {
			t.Errorf("Commands()[%d] = %s, want %s", i, cmd.Description(), pushed[i+5].Description())
		}
	}
}

func TestBoundedWindowAnyN(t *testing.T) {
	for _, n := range []int{0, 1, 19, 20, 21, 40, 100} {
		s := NewStack(DefaultMaxSize)
		for i := 0; i < n; i++ {
			s.Push(deleteAt(t, i+1))
		}
		want := min(n, DefaultMaxSize)
		if s.Size() != want {
			t.Errorf("n=%d: Size() = %d, want %d", n, s.Size(), want)
		}
		if want > 0 {
			newest, _ := s.Peek()
			if newest.Description != deleteAt(t, n).Description() {
				t.Errorf("n=%d: newest = %q", n, newest.Description)
			}
		}
	}
}

func TestNewStackFrom(t *testing.T) {
	var cmds []command.Undoable
	for i := 1; i <= 5; i++ {
		cmds = append(cmds, deleteAt(t, i))
	}
	s := NewStackFrom(3, cmds...)

	if s.Size() != 3 {
		t.Fatalf("Size() = %d", s.Size())
	}
	got := s.Commands()
	for i, cmd := range got {
		if cmd != cmds[i+2] {
			t.Errorf("Commands()[%d] = %s", i, cmd.Description())
		}
	}
}

func TestSetMaxSize(t *testing.T) {
	s := NewStack(10)
	for i := 1; i <= 10; i++ {
		s.Push(deleteAt(t, i))
	}

	s.SetMaxSize(4)
	if s.Size() != 4 || s.MaxSize() != 4 {
		t.Fatalf("Size() = %d MaxSize() = %d", s.Size(), s.MaxSize())
	}
	oldest := s.Info()[0]
	if oldest.Description != "Delete task 7" {
		t.Errorf("oldest = %q, want Delete task 7", oldest.Description)
	}

	s.SetMaxSize(-1)
	if s.MaxSize() != DefaultMaxSize {
		t.Errorf("MaxSize() = %d", s.MaxSize())
	}
}

func TestClear(t *testing.T) {
	s := NewStack(DefaultMaxSize)
	s.Push(deleteAt(t, 1))
	s.Clear()
	if !s.IsEmpty() {
		t.Error("Clear() left entries")
	}
}

func TestEqual(t *testing.T) {
	a := NewStack(DefaultMaxSize)
	b := NewStack(5)
	for i := 1; i <= 3; i++ {
		a.Push(deleteAt(t, i))
		b.Push(deleteAt(t, i))
	}

	if !a.Equal(b) || !b.Equal(a) {
		t.Error("stacks with equal commands are not Equal")
	}
	if !a.Equal(a) {
		t.Error("stack not Equal to itself")
	}
	if a.Equal(nil) {
		t.Error("stack Equal to nil")
	}

	b.Pop()
	b.Push(deleteAt(t, 9))
	if a.Equal(b) {
		t.Error("stacks with different commands are Equal")
	}

	b.Pop()
	if a.Equal(b) {
		t.Error("stacks with different sizes are Equal")
	}
}

func TestPopUndoRestoresList(t *testing.T) {
	l := task.NewList()
	for _, title := range []string{"a", "b", "c"} {
		tk, _ := task.New(title)
		l.Append(tk)
	}
	before := l.All()

	s := NewStack(DefaultMaxSize)
	cmd := deleteAt(t, 2)
	if err := cmd.Execute(l); err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	s.Push(cmd)

	popped, ok := s.Pop()
	if !ok {
		t.Fatal("Pop() returned nothing")
	}
	if err := popped.Undo(l); err != nil {
		t.Fatalf("Undo error = %v", err)
	}

	after := l.All()
	if len(after) != len(before) {
		t.Fatalf("len = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("task %d = %v, want %v", i, after[i], before[i])
		}
	}
}

func TestString(t *testing.T) {
	s := NewStack(3)
	s.Push(deleteAt(t, 1))
	got := s.String()
	if !strings.HasPrefix(got, "Stack[1/3]") || !strings.Contains(got, "Delete task 1") {
		t.Errorf("String() = %q", got)
	}
}
