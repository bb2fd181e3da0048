package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quote-sync/internal/adapters/clients"
	"github.com/jsamuelsen/quote-sync/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-sync/internal/adapters/storage"
	"github.com/jsamuelsen/quote-sync/internal/app"
	"github.com/jsamuelsen/quote-sync/internal/domain"
	"github.com/jsamuelsen/quote-sync/internal/platform/config"
	"github.com/jsamuelsen/quote-sync/internal/platform/logging"
	"github.com/jsamuelsen/quote-sync/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-sync/internal/ports"
)

// appEnv holds everything a command needs once bootstrap has finished.
type appEnv struct {
	cfg      *config.Config
	logger   *slog.Logger
	tel      *telemetry.Provider
	store    *storage.Store
	session  *storage.SessionStore
	gateway  *acl.QuoteGateway
	health   *ports.DefaultHealthRegistry
	services *app.Services
}

// wiring holds the per-command variations of bootstrap. The zero value suits
// one-shot commands: no scheduler and unregistered sync metrics.
type wiring struct {
	newScheduler func(*slog.Logger) ports.Scheduler
	registerer   prometheus.Registerer
}

// bootstrap loads configuration and wires the adapters and application
// services shared by every command.
func bootstrap(ctx context.Context, opts *rootOptions, w wiring) (*appEnv, error) {
	// 1. Load and validate configuration (fail fast)
	cfg, err := config.LoadFrom(opts.configDir, opts.profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// 2. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	rt := &appEnv{cfg: cfg, logger: logger}

	// 3. Initialize telemetry (noop if disabled)
	rt.tel, err = telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	// 4. Open persistence
	kv, err := storage.OpenKV(storage.Options{
		Driver:     cfg.Storage.Driver,
		Path:       cfg.Storage.Path,
		SQLitePath: cfg.Storage.SQLitePath,
		InMemory:   cfg.Storage.InMemory,
		Logger:     logger,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("opening storage: %w", err), rt.Close(ctx))
	}

	rt.store = storage.NewStore(kv, logger)

	rt.session, err = storage.NewSessionStore(logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("opening session store: %w", err), rt.Close(ctx))
	}

	// 5. Create the remote gateway (ACL over the resilient client)
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quote.BaseURL,
		ServiceName: cfg.Services.Quote.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		AuthFunc:    bearerAuth(cfg.Services.Quote.APIKey),
		Logger:      logger,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("creating HTTP client: %w", err), rt.Close(ctx))
	}

	rt.gateway = acl.NewQuoteGateway(acl.QuoteGatewayConfig{
		Client:          httpClient,
		Logger:          logger,
		ListPath:        cfg.Services.Quote.ListPath,
		PushPath:        cfg.Services.Quote.PushPath,
		FetchLimit:      cfg.Services.Quote.FetchLimit,
		DefaultCategory: cfg.Sync.RemoteCategory,
		PushBatchSize:   cfg.Sync.PushBatchSize,
		PushConcurrency: cfg.Sync.PushConcurrency,
	})

	// 6. Register health checks: storage is critical, the remote is not
	rt.health = ports.NewHealthRegistry()
	if err := rt.health.Register(rt.store); err != nil {
		return nil, errors.Join(fmt.Errorf("registering storage health check: %w", err), rt.Close(ctx))
	}

	if err := rt.health.RegisterNonCritical(rt.gateway); err != nil {
		return nil, errors.Join(fmt.Errorf("registering remote health check: %w", err), rt.Close(ctx))
	}

	// 7. Wire the application services and restore persisted state
	var scheduler ports.Scheduler
	if w.newScheduler != nil {
		scheduler = w.newScheduler(logger)
	}

	rt.services = app.New(app.Deps{
		Persist:        rt.store,
		Session:        rt.session,
		Remote:         rt.gateway,
		Scheduler:      scheduler,
		DeletionPolicy: domain.DeletionPolicy(cfg.Sync.DeletionPolicy),
		Sync: app.SyncConfig{
			Interval:    cfg.Sync.Interval,
			SyncOnStart: cfg.Sync.SyncOnStart,
			Metrics:     telemetry.NewSyncMetrics(w.registerer),
		},
		Logger: logger,
	})

	if err := rt.services.Quotes.Restore(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("restoring quotes: %w", err), rt.Close(ctx))
	}

	logger.DebugContext(ctx, "bootstrap complete",
		slog.String("environment", cfg.App.Environment),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("remote", cfg.Services.Quote.BaseURL),
	)

	return rt, nil
}

// Close releases storage and flushes telemetry. Safe on a partial runtime.
func (rt *appEnv) Close(ctx context.Context) error {
	var errs []error

	if rt.services != nil {
		rt.services.Sync.Stop()
	}

	if rt.session != nil {
		if err := rt.session.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing session store: %w", err))
		}
	}

	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing storage: %w", err))
		}
	}

	if rt.tel != nil {
		if err := rt.tel.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}

func bearerAuth(apiKey string) func(*http.Request) {
	if apiKey == "" {
		return nil
	}

	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
}
