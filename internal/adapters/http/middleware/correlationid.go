package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-sync/internal/platform/ctxid"
	"github.com/jsamuelsen/quote-sync/internal/platform/logging"
)

const (
	// HeaderCorrelationID is the header name for correlation ID.
	// Unlike request ID (per-request), correlation ID tracks a whole
	// transaction; it is forwarded to the remote quote endpoint.
	HeaderCorrelationID = ctxid.HeaderCorrelationID

	// ContextKeyCorrelationID is the gin context key for the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID returns middleware that handles correlation ID propagation.
// An upstream X-Correlation-ID is kept; otherwise this request starts a new
// one. The id reaches handlers, the response headers, the context logger and
// outbound calls made by the remote gateway.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderCorrelationID,
		contextKey: ContextKeyCorrelationID,
		enrichers: []func(context.Context, string) context.Context{
			logging.WithCorrelationID,
			ctxid.WithCorrelationID,
		},
	})
}

// GetCorrelationID extracts the correlation ID from the gin.Context.
// Returns empty string if not set.
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}
