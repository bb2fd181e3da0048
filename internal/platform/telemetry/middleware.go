package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// HTTPMetrics holds API server instruments.
type HTTPMetrics struct {
	requestDuration metric.Float64Histogram
	activeRequests  metric.Int64UpDownCounter
}

// NewHTTPMetrics creates the API server instruments on the global meter.
func NewHTTPMetrics() (*HTTPMetrics, error) {
	meter := otel.Meter(InstrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{requestDuration: requestDuration, activeRequests: activeRequests}, nil
}

// Middleware returns the otelgin tracing handler followed by request metrics.
// The trace id is echoed in the X-Trace-ID response header.
func Middleware(serviceName string) []gin.HandlerFunc {
	metrics, err := NewHTTPMetrics()
	if err != nil {
		otel.Handle(err)
	}

	record := func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		if span := trace.SpanFromContext(ctx); span.SpanContext().HasTraceID() {
			c.Header("X-Trace-ID", span.SpanContext().TraceID().String())
		}

		route := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
		)

		if metrics != nil {
			metrics.activeRequests.Add(ctx, 1, route)
			defer metrics.activeRequests.Add(ctx, -1, route)
		}

		c.Next()

		if metrics != nil {
			metrics.requestDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", c.FullPath()),
				attribute.Int("http.status_code", c.Writer.Status()),
			))
		}
	}

	return []gin.HandlerFunc{otelgin.Middleware(serviceName), record}
}
