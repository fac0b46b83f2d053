// Package app wires the task store, preference store and sweep scheduler
// together from configuration.
package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todue/internal/config"
	"github.com/nibzard/todue/internal/kv"
	"github.com/nibzard/todue/internal/logging"
	"github.com/nibzard/todue/internal/pref"
	"github.com/nibzard/todue/internal/sweep"
	"github.com/nibzard/todue/internal/task"
)

// App owns the single instance of each store for one process.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Tasks   *task.Store
	Prefs   *pref.Store
	Sweeper *sweep.Scheduler

	kv     kv.Store
	runLog *logging.RunLogger
}

type options struct {
	clock     task.Clock
	kv        kv.Store
	logWriter io.Writer
	runLog    bool
}

// Option configures New.
type Option func(*options)

// WithClock overrides the clock used by the task store and scheduler.
func WithClock(c task.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithKV uses store instead of opening the configured backend.
func WithKV(store kv.Store) Option {
	return func(o *options) {
		o.kv = store
	}
}

// WithLogWriter sends logs to w instead of a run log file.
func WithLogWriter(w io.Writer) Option {
	return func(o *options) {
		o.logWriter = w
		o.runLog = false
	}
}

// WithRunLog sends logs to a fresh file in the configured log directory.
func WithRunLog() Option {
	return func(o *options) {
		o.runLog = true
	}
}

// New opens the preference backend, loads the preference once and builds an
// empty task store.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	o := &options{clock: task.SystemClock{}, logWriter: io.Discard}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{Config: cfg}

	w := o.logWriter
	if o.runLog {
		rl, err := logging.NewRunLogger(cfg.LogDir)
		if err != nil {
			return nil, fmt.Errorf("opening run log: %w", err)
		}
		a.runLog = rl
		w = rl.Writer()
	}
	a.Logger = logging.New(w, logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
		Caller:     cfg.LogCaller,
		Prefix:     "todue",
	})

	a.kv = o.kv
	if a.kv == nil {
		store, err := kv.Open(cfg.PrefBackend, cfg.PrefFile)
		if err != nil {
			a.runLog.Close()
			return nil, fmt.Errorf("opening preference store: %w", err)
		}
		a.kv = store
	}

	a.Prefs = pref.Open(a.kv, a.Logger.WithPrefix("pref"))
	a.Tasks = task.NewStore(
		task.WithClock(o.clock),
		task.WithLogger(a.Logger.WithPrefix("task")),
	)
	a.Sweeper = sweep.New(a.Tasks,
		sweep.WithClock(o.clock),
		sweep.WithInterval(cfg.SweepInterval.D()),
		sweep.WithLogger(a.Logger.WithPrefix("sweep")),
	)

	a.Logger.Info("started",
		"backend", cfg.PrefBackend,
		"pref_file", cfg.PrefFile,
		"theme", a.Prefs.Theme(),
		"sweep_interval", cfg.SweepInterval,
	)
	return a, nil
}

// LogPath returns the run log path, or "" when logging elsewhere.
func (a *App) LogPath() string {
	if a.runLog == nil {
		return ""
	}
	return a.runLog.LogPath
}

// Close releases the preference backend and the run log.
func (a *App) Close() error {
	var errs []error
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing preference store: %w", err))
		}
	}
	if err := a.runLog.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing run log: %w", err))
	}
	return errors.Join(errs...)
}
