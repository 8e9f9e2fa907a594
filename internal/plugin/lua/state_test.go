package lua

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	s, err := NewState(opts...)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestAliasDefinition(t *testing.T) {
	s := newTestState(t)

	err := s.DoString(`
		vimtask.alias("rm", "d")
		vimtask.alias("done", "m")
	`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	aliases := s.Aliases()
	if aliases["rm"] != "d" || aliases["done"] != "m" || len(aliases) != 2 {
		t.Errorf("Aliases() = %v", aliases)
	}
}

func TestUnalias(t *testing.T) {
	s := newTestState(t)
	if err := s.DoString(`vimtask.alias("rm", "d"); vimtask.unalias("rm")`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if len(s.Aliases()) != 0 {
		t.Errorf("Aliases() = %v", s.Aliases())
	}
}

func TestInvalidAlias(t *testing.T) {
	s := newTestState(t)
	tests := []string{
		`vimtask.alias("", "d")`,
		`vimtask.alias("r m", "d")`,
		`vimtask.alias("rm", "  ")`,
		`vimtask.alias("rm")`,
	}
	for _, code := range tests {
		if err := s.DoString(code); err == nil {
			t.Errorf("DoString(%q) succeeded", code)
		}
	}
	if len(s.Aliases()) != 0 {
		t.Errorf("Aliases() = %v", s.Aliases())
	}
}

func TestExpand(t *testing.T) {
	s := newTestState(t)
	if err := s.DoString(`vimtask.alias("rm", "d"); vimtask.alias("todo", "a")`); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"rm 3", "d 3"},
		{"  rm   3  ", "  d   3  "},
		{"rm", "d"},
		{"todo call mom", "a call mom"},
		{"d 3", "d 3"},
		{"rmx 3", "rmx 3"},
		{"a rm", "a rm"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := s.Expand(tt.in); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandSinglePass(t *testing.T) {
	s := newTestState(t)
	if err := s.DoString(`vimtask.alias("x", "y"); vimtask.alias("y", "d")`); err != nil {
		t.Fatal(err)
	}
	if got := s.Expand("x 1"); got != "y 1" {
		t.Errorf("Expand(x 1) = %q, want y 1", got)
	}
}

func TestSandbox(t *testing.T) {
	s := newTestState(t)
	for _, code := range []string{
		`io.write("x")`,
		`os.exit(1)`,
		`dofile("/etc/passwd")`,
		`require("os")`,
		`load("return 1")`,
	} {
		if err := s.DoString(code); err == nil {
			t.Errorf("DoString(%q) succeeded", code)
		}
	}
	if err := s.DoString(`x = string.upper("a") .. math.floor(1.5)`); err != nil {
		t.Errorf("safe libraries unavailable: %v", err)
	}
}

func TestSandboxLeavesStackEmpty(t *testing.T) {
	s := newTestState(t)
	if top := s.L.GetTop(); top != 0 {
		t.Errorf("stack depth after NewState = %d, want 0", top)
	}
	if err := s.DoString(`local t = {} table.insert(t, "a") assert(#t == 1)`); err != nil {
		t.Errorf("table library unavailable: %v", err)
	}
}

func TestVersionAndPrint(t *testing.T) {
	var printed []string
	s := newTestState(t,
		WithVersion("1.2.3"),
		WithPrinter(func(line string) { printed = append(printed, line) }),
	)
	if err := s.DoString(`print("version", vimtask.version)`); err != nil {
		t.Fatal(err)
	}
	if len(printed) != 1 || printed[0] != "version\t1.2.3" {
		t.Errorf("printed = %q", printed)
	}
}

func TestExecutionTimeout(t *testing.T) {
	s := newTestState(t, WithExecutionTimeout(50*time.Millisecond))
	start := time.Now()
	err := s.DoString(`while true do end`)
	if err == nil {
		t.Fatal("infinite loop returned no error")
	}
	if time.Since(start) > 5*time.Second {
		t.Errorf("timeout took %v", time.Since(start))
	}
}

func TestDoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(`vimtask.alias("del", "d")`), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newTestState(t)
	if err := s.DoFile(path); err != nil {
		t.Fatalf("DoFile() error = %v", err)
	}
	if s.Expand("del 1") != "d 1" {
		t.Errorf("alias from file not applied")
	}

	err := s.DoFile(filepath.Join(t.TempDir(), "missing.lua"))
	if err == nil || !strings.Contains(err.Error(), "missing.lua") {
		t.Errorf("DoFile(missing) error = %v", err)
	}
}

func TestClosedState(t *testing.T) {
	s, err := NewState()
	if err != nil {
		t.Fatal(err)
	}
	s.Close()
	s.Close()
	if !s.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString after Close error = %v", err)
	}
}
