package lua

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds a single script run.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps gopher-lua with the vimtask module installed.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes access
// from Go code.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	version          string
	aliases          map[string]string
	printer          func(string)

	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the timeout for each script run.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		if d > 0 {
			s.executionTimeout = d
		}
	}
}

// WithVersion sets the value of vimtask.version.
func WithVersion(v string) StateOption {
	return func(s *State) {
		s.version = v
	}
}

// WithPrinter redirects the Lua print function.
func WithPrinter(fn func(string)) StateOption {
	return func(s *State) {
		s.printer = fn
	}
}

// NewState creates a sandboxed Lua state.
func NewState(opts ...StateOption) (*State, error) {
	s := &State{
		executionTimeout: DefaultExecutionTimeout,
		version:          "dev",
		aliases:          make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	s.L = L

	installSandbox(L)
	s.installModule()

	return s, nil
}

func (s *State) installModule() {
	mod := s.L.NewTable()
	s.L.SetField(mod, "version", lua.LString(s.version))
	s.L.SetField(mod, "alias", s.L.NewFunction(s.luaAlias))
	s.L.SetField(mod, "unalias", s.L.NewFunction(s.luaUnalias))
	s.L.SetGlobal("vimtask", mod)

	if s.printer != nil {
		s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
			parts := make([]string, L.GetTop())
			for i := range parts {
				parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
			}
			s.printer(strings.Join(parts, "\t"))
			return 0
		}))
	}
}

// luaAlias implements vimtask.alias(name, expansion).
func (s *State) luaAlias(L *lua.LState) int {
	name := L.CheckString(1)
	expansion := L.CheckString(2)
	if err := s.setAlias(name, expansion); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// luaUnalias implements vimtask.unalias(name).
func (s *State) luaUnalias(L *lua.LState) int {
	delete(s.aliases, L.CheckString(1))
	return 0
}

// setAlias is called with s.mu held, from inside a script run.
func (s *State) setAlias(name, expansion string) error {
	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAlias, name)
	}
	if strings.TrimSpace(expansion) == "" {
		return fmt.Errorf("%w: empty expansion for %q", ErrInvalidAlias, name)
	}
	s.aliases[name] = expansion
	return nil
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	return s.run(func() error { return s.L.DoFile(path) })
}

// DoString executes a Lua chunk.
func (s *State) DoString(code string) error {
	return s.run(func() error { return s.L.DoString(code) })
}

func (s *State) run(fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.executionTimeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Aliases returns a copy of the defined aliases.
func (s *State) Aliases() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.aliases))
	for k, v := range s.aliases {
		out[k] = v
	}
	return out
}

// Expand rewrites the first word of line if it names an alias.
// Leading whitespace and everything after the first word are preserved.
func (s *State) Expand(line string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	lead := line[:len(line)-len(trimmed)]

	end := strings.IndexFunc(trimmed, unicode.IsSpace)
	if end < 0 {
		end = len(trimmed)
	}
	expansion, ok := s.aliases[trimmed[:end]]
	if !ok {
		return line
	}
	return lead + expansion + trimmed[end:]
}

// Close releases the Lua state.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}

// IsClosed reports whether Close has been called.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
