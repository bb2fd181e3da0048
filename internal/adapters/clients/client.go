package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-sync/internal/platform/config"
	"github.com/jsamuelsen/quote-sync/internal/platform/ctxid"
	"github.com/jsamuelsen/quote-sync/internal/platform/logging"
	"github.com/jsamuelsen/quote-sync/internal/platform/telemetry"
)

const defaultTimeout = 10 * time.Second

// Config configures a Client.
type Config struct {
	// BaseURL prefixes every request path, e.g. "https://jsonplaceholder.typicode.com".
	BaseURL string

	// ServiceName identifies the remote in logs, spans and metrics.
	ServiceName string

	// Timeout bounds a single attempt. Retries and backoff add to the wall time.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// AuthFunc, if set, decorates every attempt.
	AuthFunc func(*http.Request)

	Logger *slog.Logger

	// HTTPClient overrides the underlying client; tests use it to inject transports.
	HTTPClient *http.Client
}

// Client is an HTTP client for the remote quote endpoint with retry,
// circuit breaking, tracing, metrics and id propagation.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	cfg         *Config
	logger      *slog.Logger
	cb          *CircuitBreaker

	tracer          trace.Tracer
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New creates a Client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	cfg.Retry.MaxAttempts = max(cfg.Retry.MaxAttempts, 1)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", cfg.ServiceName),
	)

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   cfg.Circuit.MaxFailures,
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
	})
	cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	meter := otel.Meter(telemetry.InstrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of requests to the remote quote endpoint"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Requests to the remote quote endpoint"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newTransport(cfg.Transport),
		}
	}

	return &Client{
		http:            httpClient,
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName:     cfg.ServiceName,
		cfg:             cfg,
		logger:          logger,
		cb:              cb,
		tracer:          otel.Tracer(telemetry.InstrumentationName),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

func newTransport(tc config.TransportConfig) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()

	if tc.MaxIdleConns > 0 {
		t.MaxIdleConns = tc.MaxIdleConns
	}

	if tc.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = tc.MaxIdleConnsPerHost
	}

	if tc.IdleConnTimeout > 0 {
		t.IdleConnTimeout = tc.IdleConnTimeout
	}

	return t
}

// Do sends req with retries. Requests with a body are retried only when
// req.GetBody is set; Post always sets it.
//
// 5xx responses and network errors are retried; 4xx responses are returned
// to the caller as-is.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContextOr(ctx, c.logger).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.cb.Allow() {
		c.recordMetrics(ctx, req.Method, 0, time.Since(start), "circuit_open")
		logger.DebugContext(ctx, "request blocked by circuit breaker")

		return nil, ErrCircuitOpen
	}

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	c.injectHeaders(ctx, req)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.executeWithRetry(ctx, req, logger)

	return c.recordResult(ctx, req, resp, err, span, logger, start)
}

func (c *Client) executeWithRetry(ctx context.Context, req *http.Request, logger *slog.Logger) (*http.Response, error) {
	var lastErr error

	for attempt := range c.cfg.Retry.MaxAttempts {
		if attempt > 0 {
			if err := c.prepareRetry(ctx, req, attempt, logger); err != nil {
				return nil, err
			}
		}

		resp, err := c.http.Do(req.WithContext(ctx))

		retry, err := c.classify(resp, err, attempt, logger)
		if retry {
			lastErr = err
			continue
		}

		if err != nil {
			return nil, err
		}

		return resp, nil
	}

	return nil, lastErr
}

// prepareRetry waits out the backoff and rewinds the body.
func (c *Client) prepareRetry(ctx context.Context, req *http.Request, attempt int, logger *slog.Logger) error {
	backoff := c.calculateBackoff(attempt)
	logger.DebugContext(ctx, "retrying request",
		slog.Int("attempt", attempt+1),
		slog.Duration("backoff", backoff),
	)

	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			return errors.New("request body cannot be replayed")
		}

		body, err := req.GetBody()
		if err != nil {
			return fmt.Errorf("rewinding request body: %w", err)
		}

		req.Body = body
	}

	if c.cfg.AuthFunc != nil {
		c.cfg.AuthFunc(req)
	}

	return nil
}

// classify returns whether the attempt should be retried.
func (c *Client) classify(resp *http.Response, err error, attempt int, logger *slog.Logger) (bool, error) {
	if err != nil {
		if isRetryableError(err) {
			logger.Debug("request failed with retryable error",
				slog.Int("attempt", attempt+1),
				slog.Any("error", err),
			)

			return true, err
		}

		return false, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		logger.Debug("request failed with server error",
			slog.Int("attempt", attempt+1),
			slog.Int("status", resp.StatusCode),
		)

		drain(resp)

		return true, fmt.Errorf("server error: %d", resp.StatusCode)
	}

	return false, nil
}

func (c *Client) recordResult(
	ctx context.Context,
	req *http.Request,
	resp *http.Response,
	err error,
	span trace.Span,
	logger *slog.Logger,
	start time.Time,
) (*http.Response, error) {
	elapsed := time.Since(start)

	if err != nil {
		c.cb.RecordFailure()
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)

		result := "error"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			result = "context_canceled"
		}

		c.recordMetrics(ctx, req.Method, 0, elapsed, result)
		logger.WarnContext(ctx, "request failed",
			slog.Duration("duration", elapsed),
			slog.Any("error", err),
		)

		return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, err)
	}

	c.cb.RecordSuccess()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	c.recordMetrics(ctx, req.Method, resp.StatusCode, elapsed, fmt.Sprintf("%dxx", resp.StatusCode/100))
	logger.Log(ctx, logging.LevelTrace, "request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", elapsed),
	)

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return c.Do(ctx, req)
}

// Post sends v encoded as JSON. The body is replayable across retries.
func (c *Client) Post(ctx context.Context, path string, v any) (*http.Response, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.Do(ctx, req)
}

// CircuitState returns the breaker state.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

// ServiceName returns the configured remote name.
func (c *Client) ServiceName() string {
	return c.serviceName
}

func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	if id := ctxid.RequestID(ctx); id != "" {
		req.Header.Set(ctxid.HeaderRequestID, id)
	}

	if id := ctxid.CorrelationID(ctx); id != "" {
		req.Header.Set(ctxid.HeaderCorrelationID, id)
	}

	if c.cfg.AuthFunc != nil {
		c.cfg.AuthFunc(req)
	}
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// calculateBackoff is initial*multiplier^attempt, capped at MaxInterval, with
// symmetric jitter of JitterFactor.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := float64(c.cfg.Retry.InitialInterval) * math.Pow(c.cfg.Retry.Multiplier, float64(attempt))
	backoff = math.Min(backoff, float64(c.cfg.Retry.MaxInterval))

	jitter := backoff * c.cfg.Retry.JitterFactor * (rand.Float64()*2 - 1) //nolint:gosec // jitter only
	backoff += jitter

	return time.Duration(backoff)
}

func (c *Client) recordMetrics(ctx context.Context, method string, status int, d time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if status > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}

	c.requestDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	_ = resp.Body.Close()
}

func isRetryableError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
