package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-sync/internal/domain"
	"github.com/jsamuelsen/quote-sync/internal/platform/ctxid"
	"github.com/jsamuelsen/quote-sync/internal/platform/logging"
	"github.com/jsamuelsen/quote-sync/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-sync/internal/ports"
)

// DefaultSyncInterval is used when SyncConfig.Interval is zero.
const DefaultSyncInterval = 30 * time.Second

// maxListedUpdates caps how many updated texts a conflict notification names.
const maxListedUpdates = 3

// SyncStatus is the outcome of one sync cycle.
type SyncStatus string

// Sync outcomes.
const (
	// StatusSuccess means the merge changed the local collection.
	StatusSuccess SyncStatus = "success"

	// StatusNoConflict means the remote had nothing the local collection lacked.
	StatusNoConflict SyncStatus = "no_conflict"

	// StatusServerUnavailable means the fetch came back empty; nothing was merged.
	StatusServerUnavailable SyncStatus = "server_unavailable"

	// StatusFailed means a stage errored or panicked.
	StatusFailed SyncStatus = "failed"

	// StatusSkipped means another cycle was already running.
	StatusSkipped SyncStatus = "skipped"
)

// SyncReport describes one sync cycle.
type SyncReport struct {
	CycleID    string               `json:"cycleId,omitempty"`
	Status     SyncStatus           `json:"status"`
	Added      int                  `json:"added"`
	Updated    int                  `json:"updated"`
	Changes    []domain.ChangeEntry `json:"changes,omitempty"`
	PushFailed bool                 `json:"pushFailed"`
	Error      string               `json:"error,omitempty"`
	Stage      Stage                `json:"stage,omitempty"`
	StartedAt  time.Time            `json:"startedAt"`
	Duration   time.Duration        `json:"duration"`
}

// SyncConfig holds the optional settings of a SyncService.
type SyncConfig struct {
	Interval    time.Duration
	SyncOnStart bool
	Metrics     *telemetry.SyncMetrics
	Tracer      trace.Tracer
	Logger      *slog.Logger
}

// SyncService reconciles the local collection with the remote endpoint.
// At most one cycle runs at a time; overlapping calls are skipped, not queued.
type SyncService struct {
	store     *QuoteStore
	remote    ports.RemoteGateway
	scheduler ports.Scheduler
	notifier  ports.Notifier
	clock     ports.Clock

	interval    time.Duration
	syncOnStart bool
	metrics     *telemetry.SyncMetrics
	tracer      trace.Tracer
	logger      *slog.Logger

	inProgress atomic.Bool

	mu       sync.Mutex
	cancel   func()
	startup  sync.WaitGroup
	last     SyncReport
	haveLast bool
}

// NewSyncService creates a stopped SyncService. Panics if store or remote is nil.
func NewSyncService(
	store *QuoteStore,
	remote ports.RemoteGateway,
	scheduler ports.Scheduler,
	notifier ports.Notifier,
	clock ports.Clock,
	cfg SyncConfig,
) *SyncService {
	if store == nil || remote == nil {
		panic("SyncService: store and remote are required")
	}

	if clock == nil {
		clock = ports.SystemClock{}
	}

	if notifier == nil {
		notifier = discardNotifier{}
	}

	if cfg.Interval <= 0 {
		cfg.Interval = DefaultSyncInterval
	}

	if cfg.Tracer == nil {
		cfg.Tracer = telemetry.Tracer()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SyncService{
		store:       store,
		remote:      remote,
		scheduler:   scheduler,
		notifier:    notifier,
		clock:       clock,
		interval:    cfg.Interval,
		syncOnStart: cfg.SyncOnStart,
		metrics:     cfg.Metrics,
		tracer:      cfg.Tracer,
		logger:      logger.With(slog.String("component", "app.SyncService")),
	}
}

// SyncNow runs one cycle. If a cycle is already running it returns a
// StatusSkipped report without touching the network. The returned error is
// non-nil only for StatusFailed.
func (s *SyncService) SyncNow(ctx context.Context) (SyncReport, error) {
	if !s.inProgress.CompareAndSwap(false, true) {
		logging.FromContextOr(ctx, s.logger).DebugContext(ctx, "sync already in progress, skipping")

		if s.metrics != nil {
			s.metrics.CycleSkipped()
		}

		return SyncReport{Status: StatusSkipped, StartedAt: s.clock.Now()}, nil
	}
	defer s.inProgress.Store(false)

	cycleID := uuid.NewString()
	ctx = ctxid.WithCorrelationID(ctx, cycleID)
	ctx = logging.WithContext(ctx, logging.FromContextOr(ctx, s.logger))
	ctx = logging.WithCycleID(ctx, cycleID)

	ctx, span := s.tracer.Start(ctx, "sync.cycle",
		trace.WithAttributes(attribute.String("sync.cycle_id", cycleID)),
	)
	defer span.End()

	if s.metrics != nil {
		s.metrics.CycleStarted()
	}

	report := SyncReport{CycleID: cycleID, StartedAt: s.clock.Now()}
	start := time.Now()

	err := s.runCycle(ctx, &report)

	report.Duration = time.Since(start)
	if err != nil {
		report.Status = StatusFailed
		report.Error = err.Error()
		report.Stage, _ = FailedStage(err)

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.notifier.Notify(ports.NotifyError, "Sync failed")
	}

	span.SetAttributes(
		attribute.String("sync.status", string(report.Status)),
		attribute.Int("sync.added", report.Added),
		attribute.Int("sync.updated", report.Updated),
		attribute.Bool("sync.push_failed", report.PushFailed),
		attribute.String("sync.failed_stage", string(report.Stage)),
	)

	if s.metrics != nil {
		s.metrics.CycleFinished(string(report.Status), report.Added, report.Updated, report.PushFailed, report.Duration)
		s.metrics.SetQuoteCount(s.store.Len())
	}

	s.mu.Lock()
	s.last = report
	s.haveLast = true
	s.mu.Unlock()

	logger := logging.FromContext(ctx)
	logger.InfoContext(ctx, "sync finished",
		slog.String("status", string(report.Status)),
		slog.Int("added", report.Added),
		slog.Int("updated", report.Updated),
		slog.Bool("push_failed", report.PushFailed),
		slog.Duration("duration", report.Duration),
	)

	return report, err
}

// runCycle recovers panics raised outside a stage.
func (s *SyncService) runCycle(ctx context.Context, report *SyncReport) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "sync cycle panicked", slog.Any("panic", r))

			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return s.cycle(ctx, report)
}

// cycle runs the stages and fills report. Stage failures come back as *StageError.
func (s *SyncService) cycle(ctx context.Context, report *SyncReport) error {
	logger := logging.FromContext(ctx)

	s.notifier.Notify(ports.NotifyInfo, "Syncing with server…")

	var (
		snapshot []domain.Quote
		version  uint64
		remote   []domain.Quote
		result   domain.MergeResult
	)

	err := runStage(ctx, logger, StageSnapshot, func(context.Context) error {
		snapshot, version = s.store.Snapshot(s.clock.Now())
		return nil
	})
	if err != nil {
		return err
	}

	err = runStage(ctx, logger, StageFetch, func(ctx context.Context) error {
		remote = s.remote.FetchRemoteQuotes(ctx)
		return nil
	})
	if err != nil {
		return err
	}

	if len(remote) == 0 {
		report.Status = StatusServerUnavailable
		s.notifier.Notify(ports.NotifyWarning, "Server unavailable, working offline")

		return nil
	}

	err = runStage(ctx, logger, StageMerge, func(context.Context) error {
		result = domain.Merge(snapshot, remote, s.store.MergeOptions())
		return nil
	})
	if err != nil {
		return err
	}

	err = runStage(ctx, logger, StageCommit, func(ctx context.Context) error {
		var commitErr error
		result, commitErr = s.store.CommitMerge(ctx, version, result, remote, s.clock.Now())

		return commitErr
	})
	if err != nil {
		return err
	}

	report.Added, report.Updated = result.Counts()
	report.Changes = result.Changes

	if result.HasChanges() {
		report.Status = StatusSuccess
	} else {
		report.Status = StatusNoConflict
	}

	err = runStage(ctx, logger, StageNotify, func(context.Context) error {
		s.notifyOutcome(report)
		return nil
	})
	if err != nil {
		return err
	}

	return runStage(ctx, logger, StagePush, func(ctx context.Context) error {
		if !s.remote.PushLocalQuotes(ctx, s.store.All()) {
			report.PushFailed = true

			logger.WarnContext(ctx, "push to server failed")
		}

		return nil
	})
}

func (s *SyncService) notifyOutcome(report *SyncReport) {
	if report.Status == StatusNoConflict {
		s.notifier.Notify(ports.NotifyInfo, "Quotes are already up to date")
		return
	}

	if report.Updated > 0 {
		s.notifier.Notify(ports.NotifyConflict, conflictMessage(report.Changes, report.Updated))
	}

	s.notifier.Notify(ports.NotifySuccess,
		fmt.Sprintf("Sync complete: %d added, %d updated", report.Added, report.Updated))
}

func conflictMessage(changes []domain.ChangeEntry, updated int) string {
	noun := "quotes"
	if updated == 1 {
		noun = "quote"
	}

	texts := make([]string, 0, maxListedUpdates)

	for _, c := range changes {
		if c.Kind != domain.ChangeUpdated {
			continue
		}

		if len(texts) == maxListedUpdates {
			texts = append(texts, "…")
			break
		}

		texts = append(texts, fmt.Sprintf("%q", truncate(c.Quote.Text, 40)))
	}

	return fmt.Sprintf("%d %s updated from server: %s", updated, noun, strings.Join(texts, ", "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n]) + "…"
}

// Start schedules SyncNow every interval and, if configured, runs one cycle
// right away in the background. Calling Start on a running service is a no-op.
func (s *SyncService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return nil
	}

	if s.scheduler == nil {
		return fmt.Errorf("starting sync: no scheduler configured")
	}

	job := func() {
		if _, err := s.SyncNow(ctx); err != nil {
			logging.FromContextOr(ctx, s.logger).DebugContext(ctx, "scheduled sync failed", slog.Any("error", err))
		}
	}

	cancel, err := s.scheduler.Every(s.interval, job)
	if err != nil {
		return fmt.Errorf("scheduling sync: %w", err)
	}

	s.cancel = cancel

	s.logger.InfoContext(ctx, "automatic sync started",
		slog.Duration("interval", s.interval),
		slog.Bool("sync_on_start", s.syncOnStart),
	)

	if s.syncOnStart {
		s.startup.Go(job)
	}

	return nil
}

// Stop cancels the schedule and waits for the start-up cycle, if any.
// Calling Stop on a stopped service is a no-op.
func (s *SyncService) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	s.startup.Wait()

	s.logger.Info("automatic sync stopped")
}

// Running reports whether the schedule is active.
func (s *SyncService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cancel != nil
}

// InProgress reports whether a cycle is executing right now.
func (s *SyncService) InProgress() bool {
	return s.inProgress.Load()
}

// LastReport returns the report of the most recent completed cycle.
// Skipped calls do not count.
func (s *SyncService) LastReport() (SyncReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.last, s.haveLast
}

// Interval returns the configured period.
func (s *SyncService) Interval() time.Duration {
	return s.interval
}

type discardNotifier struct{}

func (discardNotifier) Notify(ports.NotificationKind, string) {}
