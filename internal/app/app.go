// Package app wires configuration, logging, scripting and the command
// session together and runs the interactive loop.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/vimtask/internal/config"
	"github.com/dshills/vimtask/internal/dispatcher"
	"github.com/dshills/vimtask/internal/history"
	luaplugin "github.com/dshills/vimtask/internal/plugin/lua"
)

// Options configures application startup.
type Options struct {
	// ConfigPath is the configuration file. Empty uses defaults and
	// environment overrides only.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// Script overrides the configured Lua alias script when non-empty.
	Script string

	// Watch reloads ConfigPath when it changes on disk.
	Watch bool

	// LogOutput receives log lines when no log file is configured.
	// Defaults to os.Stderr.
	LogOutput io.Writer

	// Version is reported to scripts as vimtask.version.
	Version string
}

// App is the vimtask application.
type App struct {
	opts Options

	mu  sync.RWMutex
	cfg *config.Config

	logger  *Logger
	logFile *os.File
	session *Session
	plugin  *luaplugin.State
	watcher *config.Watcher

	closeOnce sync.Once
}

// New creates an application from opts.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Script != "" {
		cfg.Plugin.Script = opts.Script
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	app := &App{opts: opts, cfg: cfg}
	if err := app.initLogger(); err != nil {
		return nil, &InitError{Component: "logger", Err: err}
	}

	var expander Expander
	if cfg.Plugin.Script != "" {
		if err := app.initPlugin(); err != nil {
			app.Shutdown()
			return nil, &InitError{Component: "plugin", Err: err}
		}
		expander = app.plugin
	}

	app.session = NewSession(
		WithHistory(history.NewStack(cfg.History.MaxSize)),
		WithRegistry(dispatcher.NewDefaultRegistry()),
		WithExpander(expander),
		WithLogger(app.logger),
	)

	if opts.ConfigPath != "" && opts.Watch {
		if err := app.initWatcher(); err != nil {
			app.Shutdown()
			return nil, &InitError{Component: "watcher", Err: err}
		}
	}

	app.logger.Debug("initialized (history=%d, script=%q)", cfg.History.MaxSize, cfg.Plugin.Script)
	return app, nil
}

func (app *App) initLogger() error {
	out := app.opts.LogOutput
	if out == nil {
		out = os.Stderr
	}

	if path := app.cfg.Logging.File; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}

	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(app.cfg.Logging.Level)
	cfg.Output = out
	app.logger = NewLogger(cfg)
	return nil
}

func (app *App) initPlugin() error {
	log := app.logger.WithComponent("lua")
	state, err := luaplugin.NewState(
		luaplugin.WithVersion(app.opts.Version),
		luaplugin.WithPrinter(func(s string) { log.Info("%s", s) }),
	)
	if err != nil {
		return err
	}
	app.plugin = state

	if err := state.DoFile(app.cfg.Plugin.Script); err != nil {
		return fmt.Errorf("load %s: %w", app.cfg.Plugin.Script, err)
	}
	log.Debug("loaded %d aliases from %s", len(state.Aliases()), app.cfg.Plugin.Script)
	return nil
}

func (app *App) initWatcher() error {
	w, err := config.NewWatcher(app.opts.ConfigPath)
	if err != nil {
		return err
	}
	log := app.logger.WithComponent("config")
	w.OnReload(app.applyConfig)
	w.OnError(func(err error) {
		log.Warn("reload failed: %v", err)
	})
	if err := w.Start(); err != nil {
		_ = w.Close()
		return err
	}
	app.watcher = w
	return nil
}

// applyConfig applies the reloadable settings of cfg.
func (app *App) applyConfig(cfg *config.Config) {
	cfg = cfg.Clone()
	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}

	app.mu.Lock()
	app.cfg = cfg
	app.mu.Unlock()

	app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	app.session.SetHistoryLimit(cfg.History.MaxSize)
	app.logger.Info("configuration reloaded (level=%s, history=%d)", cfg.Logging.Level, cfg.History.MaxSize)
}

// Config returns a copy of the active configuration.
func (app *App) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg.Clone()
}

// Session returns the command session.
func (app *App) Session() *Session {
	return app.session
}

// Logger returns the application logger.
func (app *App) Logger() *Logger {
	return app.logger
}

// Shutdown releases the watcher, the Lua state and the log file.
// It is safe to call more than once.
func (app *App) Shutdown() {
	app.closeOnce.Do(func() {
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				app.logger.Warn("closing watcher: %v", err)
			}
		}
		if app.plugin != nil {
			app.plugin.Close()
		}
		if app.logger != nil {
			app.logger.Debug("shutdown complete")
		}
		if app.logFile != nil {
			_ = app.logFile.Close()
		}
	})
}
