package task

import (
	"fmt"
	"slices"
	"strings"
)

// List is an ordered collection of tasks.
// List is not safe for concurrent use.
type List struct {
	tasks []Task
}

// NewList creates a list holding the given tasks in order.
func NewList(tasks ...Task) *List {
	return &List{tasks: slices.Clone(tasks)}
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// All returns a copy of the tasks in order.
func (l *List) All() []Task {
	return slices.Clone(l.tasks)
}

func (l *List) check(i Index) error {
	if i.zeroBased >= len(l.tasks) {
		return fmt.Errorf("%w: %d (list has %d tasks)", ErrOutOfRange, i.OneBased(), len(l.tasks))
	}
	return nil
}

// Get returns the task at i.
func (l *List) Get(i Index) (Task, error) {
	if err := l.check(i); err != nil {
		return Task{}, err
	}
	return l.tasks[i.zeroBased], nil
}

// Append adds a task at the end and returns its index.
func (l *List) Append(t Task) Index {
	l.tasks = append(l.tasks, t)
	return Index{zeroBased: len(l.tasks) - 1}
}

// Insert places t at i, shifting later tasks down. i may equal Len.
func (l *List) Insert(i Index, t Task) error {
	if i.zeroBased > len(l.tasks) {
		return fmt.Errorf("%w: %d (list has %d tasks)", ErrOutOfRange, i.OneBased(), len(l.tasks))
	}
	l.tasks = slices.Insert(l.tasks, i.zeroBased, t)
	return nil
}

// Remove deletes and returns the task at i.
func (l *List) Remove(i Index) (Task, error) {
	if err := l.check(i); err != nil {
		return Task{}, err
	}
	t := l.tasks[i.zeroBased]
	l.tasks = slices.Delete(l.tasks, i.zeroBased, i.zeroBased+1)
	return t, nil
}

// SetStatus changes the status of the task at i and returns the old status.
func (l *List) SetStatus(i Index, s Status) (Status, error) {
	if err := l.check(i); err != nil {
		return 0, err
	}
	prev := l.tasks[i.zeroBased].Status
	l.tasks[i.zeroBased].Status = s
	return prev, nil
}

// String renders the list with one-based positions, one task per line.
func (l *List) String() string {
	var sb strings.Builder
	for i, t := range l.tasks {
		fmt.Fprintf(&sb, "%3d %s\n", i+1, t)
	}
	return sb.String()
}
