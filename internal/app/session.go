package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/vimtask/internal/command"
	"github.com/dshills/vimtask/internal/dispatcher"
	"github.com/dshills/vimtask/internal/history"
	"github.com/dshills/vimtask/internal/task"
)

// Expander rewrites an input line before it is dispatched.
type Expander interface {
	Expand(line string) string
}

// Result describes a line the session handled successfully.
type Result struct {
	// Command is the command that ran. For an undo it is the command
	// that was reverted.
	Command command.Command

	// Undo reports whether the line reverted a previous command.
	Undo bool

	// Message is a one-line summary for the user.
	Message string
}

// Session owns a task list and its undo history and runs input lines
// against them.
type Session struct {
	mu sync.Mutex

	id       string
	tasks    *task.List
	history  *history.Stack
	registry *dispatcher.Registry
	expander Expander
	logger   *Logger
	metrics  *Metrics
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTasks starts the session from an existing list.
func WithTasks(list *task.List) SessionOption {
	return func(s *Session) {
		if list != nil {
			s.tasks = list
		}
	}
}

// WithHistory sets the undo history.
func WithHistory(h *history.Stack) SessionOption {
	return func(s *Session) {
		if h != nil {
			s.history = h
		}
	}
}

// WithRegistry sets the command registry.
func WithRegistry(r *dispatcher.Registry) SessionOption {
	return func(s *Session) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithExpander sets the alias expander.
func WithExpander(e Expander) SessionOption {
	return func(s *Session) {
		s.expander = e
	}
}

// WithLogger sets the session logger.
func WithLogger(l *Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics tracker.
func WithMetrics(m *Metrics) SessionOption {
	return func(s *Session) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewSession creates a session with an empty list, a default-sized
// history and the built-in commands.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		id:       uuid.NewString(),
		tasks:    task.NewList(),
		history:  history.NewStack(history.DefaultMaxSize),
		registry: dispatcher.NewDefaultRegistry(),
		logger:   NullLogger(),
		metrics:  NewMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("session").WithField("session", s.id[:8])
	return s
}

// Run parses line and applies it.
//
// Parse errors leave the list and history untouched. Undoable commands
// are pushed onto the history once they execute successfully. The undo
// command reverts the most recent entry instead of being executed.
func (s *Session) Run(line string) (Result, error) {
	expanded := line
	if s.expander != nil {
		expanded = s.expander.Expand(line)
		if expanded != line {
			s.metrics.RecordAlias()
			s.logger.Debug("alias expanded %q to %q", line, expanded)
		}
	}

	cmd, err := s.registry.Parse(expanded)
	if err != nil {
		switch {
		case errors.Is(err, dispatcher.ErrUnknownCommand):
			s.metrics.RecordUnknown()
		case errors.Is(err, dispatcher.ErrMalformedArguments):
			s.metrics.RecordMalformed()
		}
		s.logger.Debug("rejected %q: %v", expanded, err)
		return Result{}, err
	}

	if _, ok := cmd.(*command.UndoCommand); ok {
		return s.Undo()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	timer := StartTimer()
	if err := cmd.Execute(s.tasks); err != nil {
		s.metrics.RecordFailure()
		s.logger.Debug("execute failed: %v", err)
		return Result{Command: cmd}, NewOperationError("execute", cmd.Description(), err)
	}
	s.metrics.RecordExecute(timer.Elapsed())

	if u, ok := cmd.(command.Undoable); ok {
		s.history.Push(u)
	}

	msg := cmd.Description()
	s.logger.Info("executed: %s", msg)
	return Result{Command: cmd, Message: msg}, nil
}

// Undo reverts the most recent undoable command.
//
// It returns history.ErrNothingToUndo when the history is empty. A
// command whose undo fails is pushed back so the history is unchanged.
func (s *Session) Undo() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd, ok := s.history.Pop()
	if !ok {
		s.metrics.RecordEmptyUndo()
		return Result{}, history.ErrNothingToUndo
	}

	desc := cmd.Description()
	if err := cmd.Undo(s.tasks); err != nil {
		s.history.Push(cmd)
		s.metrics.RecordFailure()
		return Result{Command: cmd, Undo: true}, NewOperationError("undo", desc, err)
	}
	s.metrics.RecordUndo()

	msg := fmt.Sprintf("Undo: %s", desc)
	s.logger.Info("%s", msg)
	return Result{Command: cmd, Undo: true, Message: msg}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Tasks returns a copy of the current tasks.
func (s *Session) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.All()
}

// Len returns the number of tasks.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Len()
}

// Render returns the numbered task list.
func (s *Session) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.String()
}

// History returns the undo history.
func (s *Session) History() *history.Stack {
	return s.history
}

// Registry returns the command registry.
func (s *Session) Registry() *dispatcher.Registry {
	return s.registry
}

// Metrics returns the session metrics.
func (s *Session) Metrics() *Metrics {
	return s.metrics
}

// SetHistoryLimit changes the history capacity, dropping the oldest
// entries if it shrinks.
func (s *Session) SetHistoryLimit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.SetMaxSize(n)
	s.logger.Debug("history limit set to %d", s.history.MaxSize())
}
