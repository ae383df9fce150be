// Package app wires the calculator together and runs the interactive
// session: configuration, logging, the operation registry with plugins,
// the engine, persistence, subscribers and the command table.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/dshills/calcstorm/internal/calc/operation"
	"github.com/dshills/calcstorm/internal/config"
	"github.com/dshills/calcstorm/internal/dispatcher"
	"github.com/dshills/calcstorm/internal/engine"
	"github.com/dshills/calcstorm/internal/event"
	"github.com/dshills/calcstorm/internal/persist"
	"github.com/dshills/calcstorm/internal/plugin"
)

// Options adjust how the App binds to its environment. The zero value uses
// stdin/stdout and a file logger, which is what cmd/calcstorm wants; tests
// inject buffers.
type Options struct {
	Stdin   io.Reader
	Stdout  io.Writer
	NoColor bool

	// LogWriter overrides the config-driven file logger when set.
	LogWriter io.Writer
}

// App is the assembled interactive calculator.
type App struct {
	cfg      config.Config
	log      *Logger
	ui       *UI
	calc     *engine.Calculator
	store    *persist.Store
	commands *dispatcher.Registry
	plugins  []*plugin.Operation
	watcher  *config.Watcher
	stdin    io.Reader
}

// New assembles an App from the given configuration.
func New(cfg config.Config, opts Options) (*App, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	var log *Logger
	if opts.LogWriter != nil {
		log = NewLogger(opts.LogWriter, ParseLogLevel(cfg.LogLevel))
	} else {
		var err error
		log, err = NewFileLogger(cfg.LogPath(), ParseLogLevel(cfg.LogLevel))
		if err != nil {
			return nil, err
		}
	}

	a := &App{
		cfg:   cfg,
		log:   log,
		ui:    NewUI(opts.Stdout, opts.NoColor),
		store: persist.NewStore(cfg.HistoryPath()),
		stdin: opts.Stdin,
	}

	registry := operation.NewRegistry()
	a.loadPlugins(registry)

	a.calc = engine.New(registry, engine.Options{
		Precision:  cfg.Precision,
		MaxInput:   decimal.NewFromFloat(cfg.MaxInputValue),
		MaxHistory: cfg.MaxHistorySize,
	})

	a.restoreHistory()

	a.calc.Subscribe(NewLoggingSubscriber(log))
	if cfg.AutoSave {
		a.calc.Subscribe(NewAutosaveSubscriber(a.store, a.calc.History))
	}

	a.commands = a.buildCommands()

	log.Info("session started")
	return a, nil
}

// Calculator exposes the engine, mainly for tests.
func (a *App) Calculator() *engine.Calculator { return a.calc }

// loadPlugins registers Lua operations. Plugin problems degrade the
// session instead of killing it: the builtins always work.
func (a *App) loadPlugins(registry *operation.Registry) {
	if a.cfg.PluginDir == "" {
		return
	}

	ops, err := plugin.LoadDir(a.cfg.PluginDir)
	if err != nil {
		a.log.Warn("plugin load failed: %v", err)
		a.ui.Warnf("Plugins disabled: %v", err)
		return
	}

	for _, op := range ops {
		if err := registry.Register(op); err != nil {
			a.log.Warn("plugin %s rejected: %v", op.Name(), err)
			op.Close()
			continue
		}
		a.plugins = append(a.plugins, op)
		a.log.WithField("op", op.Name()).Info("plugin operation registered")
	}
}

// restoreHistory seeds the session from the history file when one exists.
func (a *App) restoreHistory() {
	records, err := a.store.Load()
	if err != nil {
		a.log.Warn("could not load history: %v", err)
		a.ui.Warnf("Starting with empty history: %v", err)
		return
	}
	if len(records) > 0 {
		a.calc.LoadHistory(records)
		a.log.Info("restored %d calculations from %s", len(records), a.store.Path())
	}
}

// WatchConfig reloads path whenever it changes on disk, applying the
// runtime tunables to the live session.
func (a *App) WatchConfig(path string) error {
	w, err := config.Watch(path,
		func(cfg config.Config) { a.applyConfig(cfg) },
		func(err error) { a.log.Warn("config reload failed: %v", err) },
	)
	if err != nil {
		return fmt.Errorf("app: watching %s: %w", path, err)
	}
	a.watcher = w
	return nil
}

// applyConfig applies the live-reloadable settings: precision, operand
// cap, history cap and log level. Paths and the plugin dir need a restart.
func (a *App) applyConfig(cfg config.Config) {
	a.calc.SetPrecision(cfg.Precision)
	a.calc.SetMaxInput(decimal.NewFromFloat(cfg.MaxInputValue))
	a.calc.SetMaxHistory(cfg.MaxHistorySize)
	a.log.SetLevel(ParseLogLevel(cfg.LogLevel))
	a.log.Info("configuration reloaded")
}

// Close releases the watcher, the plugin states and the log file.
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Close()
	}
	for _, op := range a.plugins {
		op.Close()
	}
	return a.log.Close()
}

// Subscribe registers an additional subscriber, e.g. from tests.
func (a *App) Subscribe(s event.Subscriber) string {
	return a.calc.Subscribe(s)
}
