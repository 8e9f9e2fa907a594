package dispatcher

import (
	"errors"
	"fmt"
	"strings"
)

// Dispatcher errors.
var (
	// ErrUnknownCommand indicates no grammar recognized the verb.
	ErrUnknownCommand = errors.New("dispatcher: unknown command")

	// ErrMalformedArguments indicates a recognized verb with bad arguments.
	ErrMalformedArguments = errors.New("dispatcher: malformed arguments")

	// ErrDuplicateVerb indicates a grammar was registered twice for a verb.
	ErrDuplicateVerb = errors.New("dispatcher: verb already registered")
)

// ErrorKind classifies a parse failure.
type ErrorKind uint8

const (
	// KindUnknownCommand means no recognizer matched.
	KindUnknownCommand ErrorKind = iota

	// KindMalformedArguments means a recognizer matched but its body failed.
	KindMalformedArguments
)

// String returns a string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUnknownCommand:
		return "unknownCommand"
	case KindMalformedArguments:
		return "malformedArguments"
	default:
		return "unknown"
	}
}

// ParseError describes a rejected input line.
type ParseError struct {
	Kind  ErrorKind
	Input string // the rejected line
	Verb  string // recognized verb, or the first token for unknown commands
	Usage string // synopsis of the recognized grammar
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindMalformedArguments:
		return fmt.Sprintf("invalid arguments for %q, usage: %s", e.Verb, e.Usage)
	default:
		if e.Verb == "" {
			return "not a recognized command"
		}
		return fmt.Sprintf("%q is not a recognized command", e.Verb)
	}
}

// Is maps the error kind onto the package sentinels.
func (e *ParseError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case KindUnknownCommand:
		return target == ErrUnknownCommand
	case KindMalformedArguments:
		return target == ErrMalformedArguments
	}
	return false
}

func firstToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
