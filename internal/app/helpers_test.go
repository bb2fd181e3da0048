package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/quote-sync/internal/domain"
	"github.com/jsamuelsen/quote-sync/internal/ports"
)

var testNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fixedClock is a settable ports.Clock.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock() *fixedClock {
	return &fixedClock{now: testNow}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// memPersistence is an in-memory ports.Persistence.
type memPersistence struct {
	mu         sync.Mutex
	quotes     []domain.Quote
	stored     bool
	filter     string
	tombstones []domain.QuoteKey
	saves      int
}

func (m *memPersistence) SaveCollection(_ context.Context, quotes []domain.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.quotes = domain.CloneQuotes(quotes)
	m.stored = true
	m.saves++

	return nil
}

func (m *memPersistence) LoadCollection(context.Context) ([]domain.Quote, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return domain.CloneQuotes(m.quotes), m.stored, nil
}

func (m *memPersistence) SaveFilter(_ context.Context, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.filter = category

	return nil
}

func (m *memPersistence) LoadFilter(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.filter == "" {
		return domain.FilterAll, nil
	}

	return m.filter, nil
}

func (m *memPersistence) SaveTombstones(_ context.Context, keys []domain.QuoteKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tombstones = append([]domain.QuoteKey(nil), keys...)

	return nil
}

func (m *memPersistence) LoadTombstones(context.Context) ([]domain.QuoteKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]domain.QuoteKey(nil), m.tombstones...), nil
}

func (m *memPersistence) snapshot() []domain.Quote {
	m.mu.Lock()
	defer m.mu.Unlock()

	return domain.CloneQuotes(m.quotes)
}

// memSession is an in-memory ports.SessionStore.
type memSession struct {
	mu   sync.Mutex
	last *domain.Quote
}

func (m *memSession) SaveLastViewed(_ context.Context, q domain.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.last = &q

	return nil
}

func (m *memSession) LoadLastViewed(context.Context) (domain.Quote, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.last == nil {
		return domain.Quote{}, false, nil
	}

	return *m.last, true, nil
}

// recordingNotifier keeps every notification in order.
type recordingNotifier struct {
	mu    sync.Mutex
	items []recorded
}

type recorded struct {
	Kind    ports.NotificationKind
	Message string
}

func (r *recordingNotifier) Notify(kind ports.NotificationKind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, recorded{Kind: kind, Message: message})
}

func (r *recordingNotifier) kinds() []ports.NotificationKind {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]ports.NotificationKind, len(r.items))
	for i, it := range r.items {
		out[i] = it.Kind
	}

	return out
}

func (r *recordingNotifier) last() recorded {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) == 0 {
		return recorded{}
	}

	return r.items[len(r.items)-1]
}

func q(id, text, category, ts string, source domain.Source) domain.Quote {
	return domain.Quote{ID: id, Text: text, Category: category, LastModified: ts, Source: source}
}
