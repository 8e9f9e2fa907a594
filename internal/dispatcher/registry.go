package dispatcher

import (
	"fmt"
	"sync"

	"github.com/dshills/vimtask/internal/command"
	"github.com/dshills/vimtask/internal/grammar"
	"github.com/dshills/vimtask/internal/parser"
)

// Registry holds grammars in registration order and parses lines with them.
type Registry struct {
	mu       sync.RWMutex
	grammars []grammar.Grammar
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry creates a registry with the built-in grammars.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, g := range grammar.All() {
		// Built-in verbs are distinct.
		_ = r.Register(g)
	}
	return r
}

// Register appends a grammar. Later grammars are tried after earlier ones.
func (r *Registry) Register(g grammar.Grammar) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.grammars {
		if existing.Verb() == g.Verb() {
			return fmt.Errorf("%w: %q", ErrDuplicateVerb, g.Verb())
		}
	}
	r.grammars = append(r.grammars, g)
	return nil
}

// Verbs returns the registered verbs in registration order.
func (r *Registry) Verbs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	verbs := make([]string, len(r.grammars))
	for i, g := range r.grammars {
		verbs[i] = g.Verb()
	}
	return verbs
}

// Usages returns the synopsis of every registered grammar.
func (r *Registry) Usages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	usages := make([]string, len(r.grammars))
	for i, g := range r.grammars {
		usages[i] = g.Usage()
	}
	return usages
}

// Count returns the number of registered grammars.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.grammars)
}

// Parse converts one input line into a command.
// Every recognizer starts from the beginning of the line. The first one to
// match commits; a failing body is reported as malformed arguments and no
// further grammars are tried.
func (r *Registry) Parse(line string) (command.Command, error) {
	r.mu.RLock()
	grammars := r.grammars
	r.mu.RUnlock()

	start := parser.NewState(line)
	for _, g := range grammars {
		rec := g.Recognizer().Run(start)
		if !rec.OK {
			continue
		}
		body := rec.Value.Run(rec.Rest)
		if !body.OK {
			return nil, &ParseError{
				Kind:  KindMalformedArguments,
				Input: line,
				Verb:  g.Verb(),
				Usage: g.Usage(),
			}
		}
		return body.Value, nil
	}

	return nil, &ParseError{
		Kind:  KindUnknownCommand,
		Input: line,
		Verb:  firstToken(line),
	}
}
