package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-sync/internal/adapters/http"
	"github.com/jsamuelsen/quote-sync/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-sync/internal/adapters/schedule"
	"github.com/jsamuelsen/quote-sync/internal/ports"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the automatic sync schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cron *schedule.CronScheduler

			newCron := func(logger *slog.Logger) ports.Scheduler {
				cron = schedule.NewCronScheduler(logger)
				return cron
			}

			return runWith(cmd, opts, wiring{newScheduler: newCron, registerer: prometheus.DefaultRegisterer}, func(ctx context.Context, env *appEnv) error {
				return serve(ctx, env, cron)
			})
		},
	}
}

func serve(ctx context.Context, env *appEnv, cron *schedule.CronScheduler) error {
	cfg := env.cfg
	logger := env.logger

	logger.Info("starting quotesync",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 1. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	// 2. Create HTTP server and router
	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:              logger,
		ServiceName:         cfg.Telemetry.ServiceName,
		HealthHandler:       handlers.NewHealthHandler(env.health, buildInfo),
		QuoteHandler:        handlers.NewQuoteHandler(env.services.Quotes),
		SyncHandler:         handlers.NewSyncHandler(env.services.Sync),
		NotificationHandler: handlers.NewNotificationHandler(env.services.Notifications),
		Timeout:             cfg.Server.RequestTimeout,
	})

	// 3. Start automatic sync
	if cfg.Sync.Enabled {
		if err := env.services.Sync.Start(ctx); err != nil {
			return fmt.Errorf("starting sync: %w", err)
		}
	}

	// 4. Start server (non-blocking)
	serverErr := server.Start()

	// 5. Wait for shutdown signal
	return waitForShutdown(ctx, env, server, cron, serverErr)
}

// waitForShutdown blocks until a shutdown signal is received or the server
// fails. It then stops the sync schedule and drains the HTTP server.
func waitForShutdown(
	ctx context.Context,
	env *appEnv,
	server *http.Server,
	cron *schedule.CronScheduler,
	serverErr <-chan error,
) error {
	logger := env.logger
	shutdownTimeout := env.cfg.Server.ShutdownTimeout

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))

	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop scheduling new cycles, then wait for a running one to finish
	env.services.Sync.Stop()

	if cron != nil {
		if err := cron.Stop(shutdownCtx); err != nil {
			logger.Warn("sync scheduler did not stop in time", slog.Any("error", err))
		}
	}

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
