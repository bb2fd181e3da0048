package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"
)

// A sync cycle runs these stages in order; each one starts only after the
// previous one finished cleanly:
//
//	snapshot -> fetch -> merge -> commit -> notify -> push
//
// commit is the only stage that changes local state, so a failure before it
// leaves the collection untouched.

// Stage names one step of a sync cycle.
type Stage string

// Sync cycle stages.
const (
	StageSnapshot Stage = "snapshot"
	StageFetch    Stage = "fetch"
	StageMerge    Stage = "merge"
	StageCommit   Stage = "commit"
	StageNotify   Stage = "notify"
	StagePush     Stage = "push"
)

// StageError records the stage a sync cycle failed in.
type StageError struct {
	Stage Stage
	Cause error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *StageError) Unwrap() error {
	return e.Cause
}

// ErrPanic marks a StageError caused by a recovered panic.
var ErrPanic = errors.New("panic")

// FailedStage extracts the stage from a StageError.
func FailedStage(err error) (Stage, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, true
	}

	return "", false
}

// runStage runs fn with debug start/end logging. Errors and panics come back
// as *StageError.
func runStage(ctx context.Context, logger *slog.Logger, stage Stage, fn func(context.Context) error) (err error) {
	logger = logger.With(slog.String("stage", string(stage)))
	start := time.Now()

	logger.DebugContext(ctx, "stage started")

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "stage panicked",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)

			err = &StageError{Stage: stage, Cause: fmt.Errorf("%w: %v", ErrPanic, r)}
		}
	}()

	if err := fn(ctx); err != nil {
		logger.WarnContext(ctx, "stage failed", slog.Any("error", err))

		return &StageError{Stage: stage, Cause: err}
	}

	logger.DebugContext(ctx, "stage finished", slog.Duration("duration", time.Since(start)))

	return nil
}
