//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-sync/internal/adapters/clients"
	"github.com/jsamuelsen/quote-sync/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/quote-sync/internal/adapters/http"
	"github.com/jsamuelsen/quote-sync/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-sync/internal/adapters/schedule"
	"github.com/jsamuelsen/quote-sync/internal/adapters/storage"
	"github.com/jsamuelsen/quote-sync/internal/app"
	"github.com/jsamuelsen/quote-sync/internal/domain"
	"github.com/jsamuelsen/quote-sync/internal/platform/config"
	"github.com/jsamuelsen/quote-sync/internal/ports"
)

// remoteRecord is what the stub remote serves on its list endpoint.
type remoteRecord struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
}

// stubRemote is an in-process quote endpoint whose content and health the
// test controls.
type stubRemote struct {
	server *httptest.Server

	mu      sync.Mutex
	records []remoteRecord
	pushed  [][]map[string]any

	down       atomic.Bool
	failNext   atomic.Int32
	rejectPush atomic.Bool
	gate       chan struct{}
	fetches    atomic.Int32
}

func newStubRemote(t *testing.T) *stubRemote {
	t.Helper()

	r := &stubRemote{}
	r.server = httptest.NewServer(http.HandlerFunc(r.serve))
	t.Cleanup(r.server.Close)

	return r
}

func (r *stubRemote) serve(w http.ResponseWriter, req *http.Request) {
	if r.down.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	if r.failNext.Load() > 0 {
		r.failNext.Add(-1)
		w.WriteHeader(http.StatusBadGateway)

		return
	}

	switch req.Method {
	case http.MethodGet:
		r.fetches.Add(1)

		if r.gate != nil {
			<-r.gate
		}

		r.mu.Lock()
		records := append([]remoteRecord(nil), r.records...)
		r.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(records)

	case http.MethodPost:
		if r.rejectPush.Load() {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var batch []map[string]any
		body, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(body, &batch)

		r.mu.Lock()
		r.pushed = append(r.pushed, batch)
		r.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}
}

func (r *stubRemote) set(records ...remoteRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = records
}

func (r *stubRemote) pushedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, b := range r.pushed {
		n += len(b)
	}

	return n
}

// stepClock advances one millisecond on every read so successive fetches
// carry strictly increasing timestamps while notifications stay active.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(time.Millisecond)

	return c.now
}

// stack is the whole service wired in-process: real client, gateway,
// storage and router against a stub remote.
type stack struct {
	remote    *stubRemote
	store     *storage.Store
	services  *app.Services
	scheduler *schedule.Manual
	api       *httptest.Server
}

type stackOptions struct {
	policy     domain.DeletionPolicy
	driver     string
	dataDir    string
	remote     *stubRemote
	clientOpts func(*clients.Config)
}

func newStack(t *testing.T, opts stackOptions) *stack {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	remote := opts.remote
	if remote == nil {
		remote = newStubRemote(t)
	}

	if opts.policy == "" {
		opts.policy = domain.DeletionReadd
	}

	storageOpts := storage.Options{Driver: opts.driver, InMemory: opts.dataDir == "", Logger: logger}
	if opts.dataDir != "" {
		storageOpts.Path = filepath.Join(opts.dataDir, "badger")
		storageOpts.SQLitePath = filepath.Join(opts.dataDir, "quotes.db")
	}

	kv, err := storage.OpenKV(storageOpts)
	require.NoError(t, err)

	store := storage.NewStore(kv, logger)
	t.Cleanup(func() { _ = store.Close() })

	session, err := storage.NewSessionStore(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	clientCfg := &clients.Config{
		BaseURL:     remote.server.URL,
		ServiceName: "quote-remote",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     2,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   100,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
		Logger: logger,
	}
	if opts.clientOpts != nil {
		opts.clientOpts(clientCfg)
	}

	client, err := clients.New(clientCfg)
	require.NoError(t, err)

	clock := &stepClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}

	gateway := acl.NewQuoteGateway(acl.QuoteGatewayConfig{
		Client:        client,
		Clock:         clock,
		Logger:        logger,
		PushBatchSize: 2,
	})

	scheduler := schedule.NewManual()

	services := app.New(app.Deps{
		Persist:        store,
		Session:        session,
		Remote:         gateway,
		Scheduler:      scheduler,
		Clock:          clock,
		DeletionPolicy: opts.policy,
		Sync:           app.SyncConfig{Interval: 30 * time.Second},
		Logger:         logger,
	})
	require.NoError(t, services.Quotes.Restore(context.Background()))
	t.Cleanup(services.Sync.Stop)

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(store))
	require.NoError(t, registry.RegisterNonCritical(gateway))

	server := httpadapter.New(&config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           0,
		MaxRequestSize: 1 << 20,
	}, logger)

	httpadapter.SetupRouter(server.Engine(), httpadapter.RouterConfig{
		Logger:              logger,
		ServiceName:         "quotesync-integration",
		HealthHandler:       handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "now")),
		QuoteHandler:        handlers.NewQuoteHandler(services.Quotes),
		SyncHandler:         handlers.NewSyncHandler(services.Sync),
		NotificationHandler: handlers.NewNotificationHandler(services.Notifications),
		Timeout:             5 * time.Second,
	})

	api := httptest.NewServer(server.Engine())
	t.Cleanup(api.Close)

	return &stack{
		remote:    remote,
		store:     store,
		services:  services,
		scheduler: scheduler,
		api:       api,
	}
}
