package app

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/dshills/vimtask/internal/command"
	"github.com/dshills/vimtask/internal/dispatcher"
	"github.com/dshills/vimtask/internal/history"
	"github.com/dshills/vimtask/internal/task"
)

func newTestSession(t *testing.T, titles ...string) *Session {
	t.Helper()
	tasks := make([]task.Task, 0, len(titles))
	for _, title := range titles {
		tk, err := task.New(title)
		if err != nil {
			t.Fatalf("task.New(%q): %v", title, err)
		}
		tasks = append(tasks, tk)
	}
	return NewSession(WithTasks(task.NewList(tasks...)))
}

func joinTitles(s *Session) string {
	var parts []string
	for _, tk := range s.Tasks() {
		parts = append(parts, tk.Title)
	}
	return strings.Join(parts, ",")
}

func TestSession_DeleteAndUndo(t *testing.T) {
	s := newTestSession(t, "a", "b", "c", "d", "e")

	res, err := s.Run("d 3")
	if err != nil {
		t.Fatalf("Run(d 3): %v", err)
	}
	if got := joinTitles(s); got != "a,b,d,e" {
		t.Errorf("after delete = %s", got)
	}
	if res.Message != `Delete task 3 "c"` {
		t.Errorf("Message = %q", res.Message)
	}
	if s.History().Size() != 1 {
		t.Errorf("history size = %d, want 1", s.History().Size())
	}

	res, err = s.Run("u")
	if err != nil {
		t.Fatalf("Run(u): %v", err)
	}
	if !res.Undo {
		t.Error("Result.Undo should be set")
	}
	if res.Message != `Undo: Delete task 3 "c"` {
		t.Errorf("undo Message = %q", res.Message)
	}
	if got := joinTitles(s); got != "a,b,c,d,e" {
		t.Errorf("after undo = %s", got)
	}
	if !s.History().IsEmpty() {
		t.Error("history should be empty after undo")
	}
}

func TestSession_ParseErrorsLeaveStateAlone(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{"unknown verb", "zap 3", dispatcher.ErrUnknownCommand},
		{"empty line", "", dispatcher.ErrUnknownCommand},
		{"missing index", "d", dispatcher.ErrMalformedArguments},
		{"non numeric", "d x", dispatcher.ErrMalformedArguments},
		{"zero index", "d 0", dispatcher.ErrMalformedArguments},
		{"trailing junk", "d 3 4", dispatcher.ErrMalformedArguments},
		{"undo with argument", "u 1", dispatcher.ErrMalformedArguments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, "a", "b", "c")
			if _, err := s.Run("d 1"); err != nil {
				t.Fatalf("setup: %v", err)
			}

			_, err := s.Run(tt.line)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Run(%q) error = %v, want %v", tt.line, err, tt.want)
			}
			if got := joinTitles(s); got != "b,c" {
				t.Errorf("tasks changed: %s", got)
			}
			if s.History().Size() != 1 {
				t.Errorf("history changed: size %d", s.History().Size())
			}
		})
	}
}

func TestSession_ExecuteFailureNotRecorded(t *testing.T) {
	s := newTestSession(t, "a", "b")

	_, err := s.Run("d 9")
	if !errors.Is(err, task.ErrOutOfRange) {
		t.Fatalf("error = %v, want ErrOutOfRange", err)
	}
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "execute" {
		t.Errorf("error should be an execute OperationError, got %#v", err)
	}
	if !s.History().IsEmpty() {
		t.Error("failed command was pushed to history")
	}
	if got := joinTitles(s); got != "a,b" {
		t.Errorf("tasks changed: %s", got)
	}
}

func TestSession_UndoEmpty(t *testing.T) {
	s := newTestSession(t, "a")

	if _, err := s.Run("u"); !errors.Is(err, history.ErrNothingToUndo) {
		t.Errorf("Run(u) error = %v, want ErrNothingToUndo", err)
	}
	if _, err := s.Undo(); !errors.Is(err, history.ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}
}

func TestSession_HistoryBound(t *testing.T) {
	names := make([]string, 30)
	for i := range names {
		names[i] = fmt.Sprintf("t%d", i+1)
	}
	s := newTestSession(t, names...)

	for i := 0; i < 25; i++ {
		if _, err := s.Run("d 1"); err != nil {
			t.Fatalf("delete %d: %v", i+1, err)
		}
	}
	if s.History().Size() != history.DefaultMaxSize {
		t.Fatalf("history size = %d, want %d", s.History().Size(), history.DefaultMaxSize)
	}

	for i := 0; i < history.DefaultMaxSize; i++ {
		if _, err := s.Run("u"); err != nil {
			t.Fatalf("undo %d: %v", i+1, err)
		}
	}
	if _, err := s.Run("u"); !errors.Is(err, history.ErrNothingToUndo) {
		t.Errorf("21st undo error = %v, want ErrNothingToUndo", err)
	}

	if got, want := joinTitles(s), strings.Join(names[5:], ","); got != want {
		t.Errorf("tasks = %s, want %s", got, want)
	}
}

func TestSession_AddMarkUndo(t *testing.T) {
	s := newTestSession(t)

	steps := []struct {
		line string
		want string
	}{
		{"a buy milk", "  1 [ ] buy milk\n"},
		{"a  write report ", "  1 [ ] buy milk\n  2 [ ] write report\n"},
		{"m 2 doing", "  1 [ ] buy milk\n  2 [~] write report\n"},
		{"m 1 done", "  1 [x] buy milk\n  2 [~] write report\n"},
		{"u", "  1 [ ] buy milk\n  2 [~] write report\n"},
		{"u", "  1 [ ] buy milk\n  2 [ ] write report\n"},
		{"u", "  1 [ ] buy milk\n"},
	}

	for _, step := range steps {
		if _, err := s.Run(step.line); err != nil {
			t.Fatalf("Run(%q): %v", step.line, err)
		}
		if got := s.Render(); got != step.want {
			t.Errorf("after %q:\n%s\nwant:\n%s", step.line, got, step.want)
		}
	}
}

type mapExpander map[string]string

func (m mapExpander) Expand(line string) string {
	fields := strings.SplitN(line, " ", 2)
	exp, ok := m[fields[0]]
	if !ok {
		return line
	}
	if len(fields) == 1 {
		return exp
	}
	return exp + " " + fields[1]
}

func TestSession_Expander(t *testing.T) {
	tk, _ := task.New("a")
	s := NewSession(
		WithTasks(task.NewList(tk)),
		WithExpander(mapExpander{"rm": "d", "undo": "u"}),
	)

	if _, err := s.Run("rm 1"); err != nil {
		t.Fatalf("Run(rm 1): %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if _, err := s.Run("undo"); err != nil {
		t.Fatalf("Run(undo): %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() after undo = %d, want 1", s.Len())
	}
	if got := s.Metrics().Snapshot().AliasExpanded; got != 2 {
		t.Errorf("AliasExpanded = %d, want 2", got)
	}
}

func TestSession_SetHistoryLimit(t *testing.T) {
	s := newTestSession(t, "a", "b", "c", "d")
	for i := 0; i < 4; i++ {
		if _, err := s.Run("d 1"); err != nil {
			t.Fatal(err)
		}
	}

	s.SetHistoryLimit(2)
	if s.History().Size() != 2 || s.History().MaxSize() != 2 {
		t.Fatalf("history = %s", s.History())
	}

	for i := 0; i < 2; i++ {
		if _, err := s.Undo(); err != nil {
			t.Fatal(err)
		}
	}
	if got := joinTitles(s); got != "c,d" {
		t.Errorf("tasks = %s, want c,d", got)
	}
}

type failingUndo struct{ command.Undoable }

func (failingUndo) Execute(*task.List) error { return nil }
func (failingUndo) Undo(*task.List) error    { return errors.New("cannot undo") }
func (failingUndo) Description() string      { return "broken" }

func TestSession_UndoFailureRestoresHistory(t *testing.T) {
	h := history.NewStack(5)
	h.Push(failingUndo{})
	s := NewSession(WithHistory(h))

	_, err := s.Undo()
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "undo" {
		t.Fatalf("Undo() error = %v, want undo OperationError", err)
	}
	if h.Size() != 1 {
		t.Errorf("history size = %d, want 1", h.Size())
	}
}

func TestSession_Metrics(t *testing.T) {
	s := newTestSession(t, "a", "b")

	lines := []string{"d 1", "zap", "d", "d 7", "u", "u"}
	for _, line := range lines {
		_, _ = s.Run(line)
	}

	snap := s.Metrics().Snapshot()
	if snap.Executed != 1 || snap.Unknown != 1 || snap.Malformed != 1 ||
		snap.Failed != 1 || snap.Undone != 1 || snap.EmptyUndos != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Rejected() != 2 {
		t.Errorf("Rejected() = %d, want 2", snap.Rejected())
	}
}

func TestSession_ConcurrentRuns(t *testing.T) {
	s := newTestSession(t)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Run(fmt.Sprintf("a item %d", i)); err != nil {
				t.Errorf("Run: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != n {
		t.Errorf("Len() = %d, want %d", s.Len(), n)
	}
	if s.History().Size() != history.DefaultMaxSize {
		t.Errorf("history size = %d, want %d", s.History().Size(), history.DefaultMaxSize)
	}
}
