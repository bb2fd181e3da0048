// Package schedule provides ports.Scheduler implementations.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jsamuelsen/quote-sync/internal/ports"
)

// MinInterval is the finest period cron's @every schedules honour.
const MinInterval = time.Second

// ErrIntervalTooShort is returned by Every for intervals below MinInterval.
var ErrIntervalTooShort = errors.New("schedule interval too short")

// CronScheduler runs jobs on a robfig/cron runner. A job never overlaps
// itself: a tick that fires while the previous run is still going is skipped.
type CronScheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	mu      sync.Mutex
	stopped bool
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler creates and starts a scheduler.
func NewCronScheduler(logger *slog.Logger) *CronScheduler {
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "schedule.CronScheduler"))
	cl := cronLogger{logger: logger}

	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	c.Start()

	return &CronScheduler{cron: c, logger: logger}
}

// Every implements ports.Scheduler.
func (s *CronScheduler) Every(interval time.Duration, job func()) (func(), error) {
	if interval < MinInterval {
		return nil, fmt.Errorf("%w: %s (minimum %s)", ErrIntervalTooShort, interval, MinInterval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, errors.New("scheduler stopped")
	}

	spec := "@every " + interval.String()

	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return nil, fmt.Errorf("scheduling %q: %w", spec, err)
	}

	s.logger.Debug("job scheduled", slog.String("spec", spec), slog.Int("entry", int(id)))

	var once sync.Once

	return func() {
		once.Do(func() {
			s.cron.Remove(id)
			s.logger.Debug("job cancelled", slog.Int("entry", int(id)))
		})
	}, nil
}

// Stop halts the runner and waits for running jobs until ctx is done.
// Calling Stop more than once is safe.
func (s *CronScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}

	s.stopped = true
	s.mu.Unlock()

	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for scheduled jobs: %w", ctx.Err())
	}
}

// cronLogger adapts slog to cron.Logger. Info lines are per-tick
// chatter and are logged at debug.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, slog.Any("error", err))...)
}
