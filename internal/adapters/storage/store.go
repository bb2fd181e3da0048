package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quote-sync/internal/domain"
	"github.com/jsamuelsen/quote-sync/internal/platform/logging"
)

// Store implements ports.Persistence on top of a KV.
type Store struct {
	kv     KV
	logger *slog.Logger
}

// NewStore wraps kv. A nil logger discards output.
func NewStore(kv KV, logger *slog.Logger) *Store {
	if kv == nil {
		panic("storage: kv is required")
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Store{kv: kv, logger: logger.With("component", "storage", "driver", kv.Driver())}
}

// SaveCollection replaces the stored collection.
func (s *Store) SaveCollection(ctx context.Context, quotes []domain.Quote) error {
	return save(ctx, s.kv, KeyQuotes, domain.CloneQuotes(quotes))
}

// LoadCollection returns the stored collection. Corrupt content counts as absent.
func (s *Store) LoadCollection(ctx context.Context) ([]domain.Quote, bool, error) {
	var quotes []domain.Quote

	ok, err := s.load(ctx, KeyQuotes, &quotes)
	if err != nil || !ok {
		return nil, false, err
	}

	if quotes == nil {
		quotes = []domain.Quote{}
	}

	return quotes, true, nil
}

// SaveFilter stores the selected category.
func (s *Store) SaveFilter(ctx context.Context, category string) error {
	return save(ctx, s.kv, KeyFilter, category)
}

// LoadFilter returns the stored filter or domain.FilterAll.
func (s *Store) LoadFilter(ctx context.Context) (string, error) {
	var category string

	ok, err := s.load(ctx, KeyFilter, &category)
	if err != nil {
		return "", err
	}

	if !ok || category == "" {
		return domain.FilterAll, nil
	}

	return category, nil
}

// SaveTombstones replaces the stored deletion keys.
func (s *Store) SaveTombstones(ctx context.Context, keys []domain.QuoteKey) error {
	if keys == nil {
		keys = []domain.QuoteKey{}
	}

	return save(ctx, s.kv, KeyTombstones, keys)
}

// LoadTombstones returns the stored deletion keys.
func (s *Store) LoadTombstones(ctx context.Context) ([]domain.QuoteKey, error) {
	var keys []domain.QuoteKey

	if _, err := s.load(ctx, KeyTombstones, &keys); err != nil {
		return nil, err
	}

	return keys, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "storage"
}

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	if err := s.kv.Ping(ctx); err != nil {
		return domain.NewUnavailableError(s.kv.Driver(), err.Error())
	}

	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) load(ctx context.Context, key string, v any) (bool, error) {
	return load(ctx, s.kv, s.logger, key, v)
}

func save(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

// load decodes the slot into v. Absent and undecodable slots both report ok=false;
// only backend failures are returned as errors.
func load(ctx context.Context, kv KV, logger *slog.Logger, key string, v any) (bool, error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		logging.FromContextOr(ctx, logger).DebugContext(ctx, "discarding undecodable slot",
			slog.String("slot", key),
			slog.Any("error", domain.NewCorruptDataError(key, err)),
		)

		return false, nil
	}

	return true, nil
}

// SessionStore implements ports.SessionStore on an in-memory badger instance.
type SessionStore struct {
	kv     KV
	logger *slog.Logger
}

// NewSessionStore opens a fresh in-memory session slot.
func NewSessionStore(logger *slog.Logger) (*SessionStore, error) {
	kv, err := OpenBadger(BadgerOptions{InMemory: true, Logger: logger})
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &SessionStore{kv: kv, logger: logger.With("component", "session")}, nil
}

// SaveLastViewed remembers the quote most recently shown.
func (s *SessionStore) SaveLastViewed(ctx context.Context, quote domain.Quote) error {
	return save(ctx, s.kv, KeyLastViewed, quote)
}

// LoadLastViewed returns the remembered quote.
func (s *SessionStore) LoadLastViewed(ctx context.Context) (domain.Quote, bool, error) {
	var q domain.Quote

	ok, err := load(ctx, s.kv, s.logger, KeyLastViewed, &q)
	if err != nil || !ok {
		return domain.Quote{}, false, err
	}

	return q, true, nil
}

// Close discards the session.
func (s *SessionStore) Close() error {
	return s.kv.Close()
}
