package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen/quote-sync/internal/domain"
	"github.com/jsamuelsen/quote-sync/internal/platform/logging"
	"github.com/jsamuelsen/quote-sync/internal/ports"
)

// QuoteStore owns the in-memory collection and mirrors every mutation to
// persistence. All mutations are whole-collection transitions under a single
// write lock; readers always see a complete collection.
type QuoteStore struct {
	persist ports.Persistence
	policy  domain.DeletionPolicy
	logger  *slog.Logger

	mu         sync.RWMutex
	quotes     []domain.Quote
	tombstones map[domain.QuoteKey]struct{}
	version    uint64

	obsMu     sync.Mutex
	nextObs   int
	observers map[int]func([]domain.Quote)
}

// NewQuoteStore creates an empty store. Call Load to restore persisted state.
func NewQuoteStore(persist ports.Persistence, policy domain.DeletionPolicy, logger *slog.Logger) *QuoteStore {
	if persist == nil {
		panic("QuoteStore: persistence is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	if policy == "" {
		policy = domain.DeletionReadd
	}

	return &QuoteStore{
		persist:    persist,
		policy:     policy,
		logger:     logger.With(slog.String("component", "app.QuoteStore")),
		quotes:     []domain.Quote{},
		tombstones: map[domain.QuoteKey]struct{}{},
		observers:  map[int]func([]domain.Quote){},
	}
}

// Load replaces the in-memory state with the persisted collection and
// tombstones. An absent or unreadable collection loads as empty.
func (s *QuoteStore) Load(ctx context.Context) error {
	quotes, ok, err := s.persist.LoadCollection(ctx)
	if err != nil {
		return fmt.Errorf("loading collection: %w", err)
	}

	if !ok {
		quotes = []domain.Quote{}
	}

	keys, err := s.persist.LoadTombstones(ctx)
	if err != nil {
		return fmt.Errorf("loading tombstones: %w", err)
	}

	s.mu.Lock()
	s.quotes = domain.CloneQuotes(quotes)
	s.tombstones = domain.TombstoneSet(keys)
	s.version++
	snapshot := domain.CloneQuotes(s.quotes)
	s.mu.Unlock()

	logging.FromContextOr(ctx, s.logger).DebugContext(ctx, "collection loaded",
		slog.Int("quotes", len(quotes)),
		slog.Int("tombstones", len(keys)),
		slog.Bool("stored", ok),
	)

	s.publish(snapshot)

	return nil
}

// All returns a copy of the collection in order.
func (s *QuoteStore) All() []domain.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.CloneQuotes(s.quotes)
}

// Snapshot returns a copy of the collection with every quote normalized at
// now, plus the version it was taken at. Pass the version to CommitMerge.
func (s *QuoteStore) Snapshot(now time.Time) ([]domain.Quote, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return normalized(s.quotes, now), s.version
}

// Len returns the collection size.
func (s *QuoteStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.quotes)
}

// Find returns the quote with the given id.
func (s *QuoteStore) Find(id string) (domain.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.quotes, func(q domain.Quote) bool { return q.ID == id })
	if i < 0 {
		return domain.Quote{}, false
	}

	return s.quotes[i], true
}

// ReplaceAll swaps the whole collection and persists it.
func (s *QuoteStore) ReplaceAll(ctx context.Context, quotes []domain.Quote) error {
	next := domain.CloneQuotes(quotes)

	s.mu.Lock()
	s.quotes = next
	s.version++
	err := s.persist.SaveCollection(ctx, next)
	snapshot := domain.CloneQuotes(next)
	s.mu.Unlock()

	s.publish(snapshot)

	if err != nil {
		return fmt.Errorf("persisting collection: %w", err)
	}

	return nil
}

// CommitMerge installs a merge computed from the snapshot taken at base.
// If the collection changed since then, the merge is recomputed against the
// current collection so edits made during the fetch are kept. The result
// actually applied is returned; nothing is written when it has no changes.
// The in-memory collection is only swapped once the merge is persisted.
func (s *QuoteStore) CommitMerge(
	ctx context.Context,
	base uint64,
	result domain.MergeResult,
	remote []domain.Quote,
	now time.Time,
) (domain.MergeResult, error) {
	s.mu.Lock()

	if s.version != base {
		result = domain.Merge(normalized(s.quotes, now), remote, s.mergeOptionsLocked())

		logging.FromContextOr(ctx, s.logger).DebugContext(ctx, "collection changed during sync, merge recomputed",
			slog.Uint64("base", base),
			slog.Uint64("current", s.version),
		)
	}

	if !result.HasChanges() {
		s.mu.Unlock()
		return result, nil
	}

	next := domain.CloneQuotes(result.Merged)

	if err := s.persist.SaveCollection(ctx, next); err != nil {
		s.mu.Unlock()
		return result, fmt.Errorf("persisting collection: %w", err)
	}

	s.quotes = next
	s.version++
	snapshot := domain.CloneQuotes(next)
	s.mu.Unlock()

	s.publish(snapshot)

	return result, nil
}

// Append adds quotes at the end of the collection. A quote whose id is
// already present, in the collection or earlier in the same call, rejects
// the whole call with a conflict. Adding a key clears its tombstone.
func (s *QuoteStore) Append(ctx context.Context, quotes ...domain.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	s.mu.Lock()

	taken := make(map[string]struct{}, len(s.quotes)+len(quotes))
	for _, q := range s.quotes {
		taken[q.ID] = struct{}{}
	}

	for _, q := range quotes {
		if _, dup := taken[q.ID]; dup {
			s.mu.Unlock()
			return domain.NewDuplicateIDError(q.ID)
		}

		taken[q.ID] = struct{}{}
	}

	next := make([]domain.Quote, 0, len(s.quotes)+len(quotes))
	next = append(next, s.quotes...)
	next = append(next, quotes...)
	s.quotes = next
	s.version++

	cleared := false

	for _, q := range quotes {
		if _, ok := s.tombstones[q.Key()]; ok {
			delete(s.tombstones, q.Key())
			cleared = true
		}
	}

	err := s.persist.SaveCollection(ctx, next)
	if err == nil && cleared {
		err = s.persist.SaveTombstones(ctx, s.tombstoneKeys())
	}

	snapshot := domain.CloneQuotes(next)
	s.mu.Unlock()

	s.publish(snapshot)

	if err != nil {
		return fmt.Errorf("persisting collection: %w", err)
	}

	return nil
}

// Remove deletes the quote with the given id. Under the respect policy its
// key is tombstoned so a later merge does not bring it back.
func (s *QuoteStore) Remove(ctx context.Context, id string) (domain.Quote, error) {
	s.mu.Lock()

	i := slices.IndexFunc(s.quotes, func(q domain.Quote) bool { return q.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return domain.Quote{}, domain.NewNotFoundError("quote", id)
	}

	removed := s.quotes[i]
	s.quotes = slices.Delete(slices.Clone(s.quotes), i, i+1)
	s.version++

	err := s.persist.SaveCollection(ctx, s.quotes)

	if err == nil && s.policy == domain.DeletionRespect {
		s.tombstones[removed.Key()] = struct{}{}
		err = s.persist.SaveTombstones(ctx, s.tombstoneKeys())
	}

	snapshot := domain.CloneQuotes(s.quotes)
	s.mu.Unlock()

	s.publish(snapshot)

	if err != nil {
		return removed, fmt.Errorf("persisting removal: %w", err)
	}

	return removed, nil
}

// MergeOptions returns the merge options for the configured deletion policy.
func (s *QuoteStore) MergeOptions() domain.MergeOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mergeOptionsLocked()
}

func (s *QuoteStore) mergeOptionsLocked() domain.MergeOptions {
	if s.policy != domain.DeletionRespect {
		return domain.MergeOptions{}
	}

	return domain.MergeOptions{Tombstones: domain.TombstoneSet(s.tombstoneKeys())}
}

// Categories returns the distinct categories, compared case-insensitively.
// The first spelling seen wins. The result is sorted case-insensitively.
func (s *QuoteStore) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.quotes))
	out := make([]string, 0)

	for _, q := range s.quotes {
		k := strings.ToLower(q.Category)
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		out = append(out, q.Category)
	}

	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	return out
}

// Subscribe registers fn to receive a copy of the collection after every
// mutation. The returned function unregisters it.
func (s *QuoteStore) Subscribe(fn func([]domain.Quote)) func() {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()

		delete(s.observers, id)
	}
}

func (s *QuoteStore) publish(snapshot []domain.Quote) {
	s.obsMu.Lock()
	fns := make([]func([]domain.Quote), 0, len(s.observers))

	for id := range s.nextObs {
		if fn, ok := s.observers[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(domain.CloneQuotes(snapshot))
	}
}

// normalized back-fills missing timestamps and provenance on a copy.
func normalized(quotes []domain.Quote, now time.Time) []domain.Quote {
	out := domain.CloneQuotes(quotes)
	for i := range out {
		out[i] = out[i].Normalize(now)
	}

	return out
}

// tombstoneKeys must be called with mu held. Keys are sorted for stable storage.
func (s *QuoteStore) tombstoneKeys() []domain.QuoteKey {
	keys := make([]domain.QuoteKey, 0, len(s.tombstones))
	for k := range s.tombstones {
		keys = append(keys, k)
	}

	slices.SortFunc(keys, func(a, b domain.QuoteKey) int {
		if c := strings.Compare(a.Category, b.Category); c != 0 {
			return c
		}

		return strings.Compare(a.Text, b.Text)
	})

	return keys
}
