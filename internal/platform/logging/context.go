package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var defaultLogger = slog.Default()

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOr(ctx, defaultLogger)
}

// FromContextOr returns the logger stored in ctx, or fallback when there is none.
// Components use it to prefer request-scoped loggers over their own.
func FromContextOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return logger
		}
	}

	return fallback
}

// WithContext stores a logger in the context.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithRequestID adds request_id to the logger in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return with(ctx, slog.String("request_id", requestID))
}

// WithTraceID adds trace_id to the logger in context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return with(ctx, slog.String("trace_id", traceID))
}

// WithCorrelationID adds correlation_id to the logger in context.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return with(ctx, slog.String("correlation_id", correlationID))
}

// WithCycleID adds sync_cycle_id to the logger in context.
func WithCycleID(ctx context.Context, cycleID string) context.Context {
	return with(ctx, slog.String("sync_cycle_id", cycleID))
}

func with(ctx context.Context, attr slog.Attr) context.Context {
	return WithContext(ctx, FromContext(ctx).With(attr))
}

// SetDefault sets the logger used when no logger is in context.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
	slog.SetDefault(logger)
}
