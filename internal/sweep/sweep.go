// Package sweep runs the recurring expiry sweep over a task store.
package sweep

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todue/internal/task"
)

// DefaultInterval is the sweep cadence.
const DefaultInterval = time.Second

// Sweeper removes expired tasks relative to a reference instant.
type Sweeper interface {
	SweepExpired(ref time.Time) []task.ID
}

// Event reports a sweep that removed at least one task.
type Event struct {
	At      time.Time
	Removed []task.ID
}

// Scheduler sweeps once immediately and then on a fixed interval.
type Scheduler struct {
	sweeper  Sweeper
	clock    task.Clock
	interval time.Duration
	logger   *log.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the clock that supplies the reference instant.
func WithClock(c task.Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithInterval sets the sweep cadence. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// New creates a scheduler for sweeper.
func New(sweeper Sweeper, opts ...Option) *Scheduler {
	s := &Scheduler{
		sweeper:  sweeper,
		clock:    task.SystemClock{},
		interval: DefaultInterval,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Interval returns the sweep cadence.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Once runs a single sweep against the scheduler's clock.
func (s *Scheduler) Once() Event {
	now := s.clock.Now()
	return Event{At: now, Removed: s.sweeper.SweepExpired(now)}
}

// Run sweeps immediately and then every interval until ctx is done. Sweeps
// that removed tasks are sent on out when out is non-nil. Run closes out
// before returning.
func (s *Scheduler) Run(ctx context.Context, out chan<- Event) {
	if out != nil {
		defer close(out)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug("sweep scheduler started", "interval", s.interval)
	for {
		ev := s.Once()
		if len(ev.Removed) > 0 {
			s.logger.Info("sweep removed tasks", "count", len(ev.Removed), "ids", ev.Removed)
			if out != nil {
				select {
				case out <- ev:
				case <-ctx.Done():
					s.logger.Debug("sweep scheduler stopped")
					return
				}
			}
		}

		select {
		case <-ctx.Done():
			s.logger.Debug("sweep scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}
