// Package app contains the application services of quotesync.
// This is the application layer: it coordinates domain logic and
// infrastructure through ports.
//
// Application Layer Responsibilities:
//   - Own the in-memory collection and mirror it to persistence (QuoteStore)
//   - Run user actions: add, filter, random, import, export (QuoteService)
//   - Reconcile with the remote endpoint on a schedule (SyncService)
//   - Publish transient status messages (NotificationCenter)
//
// What does NOT belong here:
//   - HTTP and CLI specifics (that's adapters and cmd)
//   - Storage encodings and remote wire formats (that's adapters)
//   - Merge rules (that's the domain layer)
package app

import (
	"log/slog"

	"github.com/jsamuelsen/quote-sync/internal/domain"
	"github.com/jsamuelsen/quote-sync/internal/ports"
)

// Deps are the adapters the application layer runs on.
type Deps struct {
	Persist   ports.Persistence
	Session   ports.SessionStore
	Remote    ports.RemoteGateway
	Scheduler ports.Scheduler
	Clock     ports.Clock

	DeletionPolicy domain.DeletionPolicy
	Sync           SyncConfig
	Logger         *slog.Logger
}

// Services bundles the wired application services.
type Services struct {
	Store         *QuoteStore
	Quotes        *QuoteService
	Sync          *SyncService
	Notifications *NotificationCenter
}

// New wires the application services together. Call Quotes.Restore before use.
func New(deps Deps) *Services {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := deps.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	notifications := NewNotificationCenter(clock, logger)
	store := NewQuoteStore(deps.Persist, deps.DeletionPolicy, logger)

	quotes := NewQuoteService(QuoteServiceConfig{
		Store:    store,
		Persist:  deps.Persist,
		Session:  deps.Session,
		Notifier: notifications,
		Clock:    clock,
		Logger:   logger,
	})

	syncCfg := deps.Sync
	if syncCfg.Logger == nil {
		syncCfg.Logger = logger
	}

	syncSvc := NewSyncService(store, deps.Remote, deps.Scheduler, notifications, clock, syncCfg)

	return &Services{
		Store:         store,
		Quotes:        quotes,
		Sync:          syncSvc,
		Notifications: notifications,
	}
}
