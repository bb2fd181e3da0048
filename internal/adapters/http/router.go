package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-sync/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-sync/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-sync/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName names the otelgin tracer.
	ServiceName string

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	QuoteHandler        *handlers.QuoteHandler
	SyncHandler         *handlers.SyncHandler
	NotificationHandler *handlers.NotificationHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Context logger - seed the service logger
//  3. Request ID - generate/extract request ID
//  4. Correlation ID - forwarded to the remote quote endpoint
//  5. OpenTelemetry - tracing and metrics
//  6. Logging - request logging (skips health endpoints)
//  7. Timeout - request deadline on /api/v1 only
//
// Route groups:
//   - /-/ (internal): health, build info and metrics
//   - /api/v1/: quotes, filter, import/export, sync, notifications
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.ContextLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	setupAPIRoutes(apiV1, cfg)
}

func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(rg)
	}

	if cfg.SyncHandler != nil {
		cfg.SyncHandler.RegisterSyncRoutes(rg)
	}

	if cfg.NotificationHandler != nil {
		cfg.NotificationHandler.RegisterNotificationRoutes(rg)
	}
}
