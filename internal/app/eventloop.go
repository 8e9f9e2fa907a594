package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dshills/vimtask/internal/history"
)

// console reads input lines and receives output.
type console interface {
	io.Writer
	ReadLine() (string, error)
}

// lineConsole reads newline-terminated lines from a plain reader.
type lineConsole struct {
	io.Writer
	scanner *bufio.Scanner
	prompt  func() string
}

func (c *lineConsole) ReadLine() (string, error) {
	if _, err := io.WriteString(c.Writer, c.prompt()); err != nil {
		return "", err
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.scanner.Text(), nil
}

// openConsole returns a terminal console when in is a TTY and a line
// console otherwise. The returned function restores the terminal.
func (app *App) openConsole(in io.Reader, out io.Writer) (console, func(), error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		saved, err := term.MakeRaw(fd)
		if err != nil {
			return nil, nil, fmt.Errorf("raw mode: %w", err)
		}
		rw := struct {
			io.Reader
			io.Writer
		}{f, out}
		t := term.NewTerminal(rw, app.Config().UI.Prompt)
		return t, func() { _ = term.Restore(fd, saved) }, nil
	}

	sc := bufio.NewScanner(in)
	c := &lineConsole{
		Writer:  out,
		scanner: sc,
		prompt:  func() string { return app.Config().UI.Prompt },
	}
	return c, func() {}, nil
}

type readResult struct {
	line string
	err  error
}

// Run reads commands from in until :q, end of input or ctx is done.
func (app *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	con, restore, err := app.openConsole(in, out)
	if err != nil {
		return err
	}
	defer restore()

	app.logger.Info("session %s started", app.session.ID())
	defer func() {
		snap := app.session.Metrics().Snapshot()
		app.logger.WithFields(map[string]any{
			"executed": snap.Executed,
			"undone":   snap.Undone,
			"rejected": snap.Rejected(),
			"failed":   snap.Failed,
		}).Info("session %s ended", app.session.ID())
	}()

	lines := make(chan readResult)
	next := make(chan struct{}, 1)
	go func() {
		defer close(lines)
		for range next {
			line, err := con.ReadLine()
			select {
			case lines <- readResult{line, err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	defer close(next)

	for {
		next <- struct{}{}

		var r readResult
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-lines:
			if !ok {
				return ctx.Err()
			}
			r = res
		}

		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				return nil
			}
			return r.err
		}

		if err := app.handleLine(con, r.line); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// handleLine runs one input line and reports the outcome to w.
// Command errors are reported, not returned.
func (app *App) handleLine(w io.Writer, line string) error {
	trimmed := strings.TrimSpace(line)
	switch trimmed {
	case "":
		return nil
	case ":q", ":quit":
		return ErrQuit
	case ":help", "?":
		return app.printHelp(w)
	case ":list":
		_, err := io.WriteString(w, app.session.Render())
		return err
	case ":history":
		return app.printHistory(w)
	case ":stats":
		return app.printStats(w)
	}

	res, err := app.session.Run(line)
	if err != nil {
		if errors.Is(err, history.ErrNothingToUndo) {
			_, werr := fmt.Fprintln(w, "nothing to undo")
			return werr
		}
		_, werr := fmt.Fprintf(w, "error: %v\n", err)
		return werr
	}

	if _, err := fmt.Fprintln(w, res.Message); err != nil {
		return err
	}
	_, err = io.WriteString(w, app.session.Render())
	return err
}

func (app *App) printHelp(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("commands:\n")
	for _, usage := range app.session.Registry().Usages() {
		fmt.Fprintf(&sb, "  %s\n", usage)
	}
	sb.WriteString("  :list  :history  :stats  :help  :q\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func (app *App) printHistory(w io.Writer) error {
	infos := app.session.History().Info()
	if len(infos) == 0 {
		_, err := fmt.Fprintln(w, "history is empty")
		return err
	}

	var sb strings.Builder
	for i := len(infos) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%3d %s  %s\n", len(infos)-i, infos[i].Timestamp.Format("15:04:05"), infos[i].Description)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (app *App) printStats(w io.Writer) error {
	snap := app.session.Metrics().Snapshot()
	_, err := fmt.Fprintf(w,
		"executed %d, undone %d, unknown %d, malformed %d, failed %d, empty undos %d, aliases %d\n",
		snap.Executed, snap.Undone, snap.Unknown, snap.Malformed, snap.Failed, snap.EmptyUndos, snap.AliasExpanded)
	return err
}
