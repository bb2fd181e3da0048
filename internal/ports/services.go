// Package ports defines the contracts between the sync core and its adapters.
//
// Port conventions:
//   - Context is the first parameter of every blocking method
//   - Methods take and return domain types, never wire DTOs
//   - Failures use domain errors (ErrNotFound, ErrCorrupt, ...), except the
//     remote gateway, which never fails loudly
package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/quote-sync/internal/domain"
)

// Persistence stores the durable slots: the collection, the selected filter
// and the deletion tombstones. Slots survive process restarts.
type Persistence interface {
	// SaveCollection replaces the stored collection.
	SaveCollection(ctx context.Context, quotes []domain.Quote) error

	// LoadCollection returns the stored collection. ok is false when the slot
	// is absent or its content could not be decoded.
	LoadCollection(ctx context.Context) (quotes []domain.Quote, ok bool, err error)

	// SaveFilter stores the selected category filter.
	SaveFilter(ctx context.Context, category string) error

	// LoadFilter returns the stored filter, or domain.FilterAll when absent.
	LoadFilter(ctx context.Context) (string, error)

	// SaveTombstones replaces the set of locally deleted keys.
	SaveTombstones(ctx context.Context, keys []domain.QuoteKey) error

	// LoadTombstones returns the stored tombstones; empty when absent.
	LoadTombstones(ctx context.Context) ([]domain.QuoteKey, error)
}

// SessionStore holds state that lives only as long as the current session.
type SessionStore interface {
	SaveLastViewed(ctx context.Context, quote domain.Quote) error

	// LoadLastViewed returns ok=false when nothing was viewed this session.
	LoadLastViewed(ctx context.Context) (quote domain.Quote, ok bool, err error)
}

// RemoteGateway exchanges quotes with the remote endpoint.
//
// Both methods fail soft: transport and decode failures are logged by the
// adapter and surface only as an empty fetch or a false push.
type RemoteGateway interface {
	// FetchRemoteQuotes returns the remote snapshot translated to domain quotes
	// with Source=server. An empty result means the server was unavailable.
	FetchRemoteQuotes(ctx context.Context) []domain.Quote

	// PushLocalQuotes sends every quote whose Source is not server.
	// Returns true when the remote accepted all of them.
	PushLocalQuotes(ctx context.Context, quotes []domain.Quote) bool
}

// Clock supplies the current time. Tests inject a fixed clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// Scheduler runs a job periodically.
type Scheduler interface {
	// Every registers job to run once per interval until cancel is called.
	Every(interval time.Duration, job func()) (cancel func(), err error)
}

// NotificationKind classifies a status-channel message.
type NotificationKind string

// Notification kinds, each with its own display lifetime.
const (
	NotifySuccess  NotificationKind = "success"
	NotifyError    NotificationKind = "error"
	NotifyWarning  NotificationKind = "warning"
	NotifyInfo     NotificationKind = "info"
	NotifyConflict NotificationKind = "conflict"
)

// Notifier publishes transient user-facing status messages.
type Notifier interface {
	Notify(kind NotificationKind, message string)
}
