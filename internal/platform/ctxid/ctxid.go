// Package ctxid carries request and correlation identifiers through
// context.Context so outbound calls can forward them.
package ctxid

import "context"

// Header names shared by the API server and the remote client.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

type key int

const (
	requestIDKey key = iota
	correlationIDKey
)

// WithRequestID stores the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithCorrelationID stores the correlation id. A sync cycle uses its cycle id here.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// RequestID returns the stored request id or "".
func RequestID(ctx context.Context) string {
	return value(ctx, requestIDKey)
}

// CorrelationID returns the stored correlation id or "".
func CorrelationID(ctx context.Context) string {
	return value(ctx, correlationIDKey)
}

func value(ctx context.Context, k key) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(k).(string)

	return id
}
