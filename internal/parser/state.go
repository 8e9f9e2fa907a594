package parser

import "fmt"

// State is an immutable view over the unconsumed part of the input.
// Advancing a State returns a new value; the position never moves backward.
type State struct {
	input string
	pos   int
}

// NewState creates a State positioned at the start of input.
func NewState(input string) State {
	return State{input: input}
}

// Remaining returns the unconsumed input.
func (s State) Remaining() string {
	return s.input[s.pos:]
}

// Pos returns the byte offset of the State within the original input.
func (s State) Pos() int {
	return s.pos
}

// AtEOF reports whether the input has been fully consumed.
func (s State) AtEOF() bool {
	return s.pos >= len(s.input)
}

// advance returns a State n bytes further along.
func (s State) advance(n int) State {
	if n < 0 || s.pos+n > len(s.input) {
		// Overrunning the input is a combinator bug.
		panic(fmt.Sprintf("parser: advance %d from %d overruns input of length %d", n, s.pos, len(s.input)))
	}
	return State{input: s.input, pos: s.pos + n}
}

// String returns a debug representation of the State.
func (s State) String() string {
	return fmt.Sprintf("State{pos=%d, rest=%q}", s.pos, s.Remaining())
}

// Result is the outcome of running a Parser.
// When OK is false, Value and Rest are meaningless.
type Result[T any] struct {
	Value T
	Rest  State
	OK    bool
}

func success[T any](value T, rest State) Result[T] {
	return Result[T]{Value: value, Rest: rest, OK: true}
}

func failure[T any]() Result[T] {
	return Result[T]{}
}
