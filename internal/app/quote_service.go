package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/jsamuelsen/quote-sync/internal/domain"
	"github.com/jsamuelsen/quote-sync/internal/platform/logging"
	"github.com/jsamuelsen/quote-sync/internal/ports"
)

// Format is an import/export document format.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ParseFormat maps a user-supplied format name to a Format. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	default:
		return "", domain.NewValidationErrorWithValue("format", "must be json or toml", s)
	}
}

// ImportResult counts the outcome of an import.
type ImportResult struct {
	Accepted int `json:"accepted"`
	Skipped  int `json:"skipped"`
}

// tomlDocument is the TOML shape of an export: one [[quotes]] table per quote.
type tomlDocument struct {
	Quotes []domain.Quote `toml:"quotes"`
}

// QuoteServiceConfig contains the dependencies of a QuoteService.
type QuoteServiceConfig struct {
	Store    *QuoteStore
	Persist  ports.Persistence
	Session  ports.SessionStore
	Notifier ports.Notifier
	Clock    ports.Clock
	Logger   *slog.Logger

	// Intn overrides the random source used by Random. Tests pin it.
	Intn func(n int) int
}

// QuoteService implements the user-facing quote actions.
type QuoteService struct {
	store    *QuoteStore
	persist  ports.Persistence
	session  ports.SessionStore
	notifier ports.Notifier
	clock    ports.Clock
	logger   *slog.Logger
	intn     func(int) int

	mu     sync.RWMutex
	filter string
}

// NewQuoteService creates a QuoteService. Panics if Store, Persist or Session is nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Store == nil || cfg.Persist == nil || cfg.Session == nil {
		panic("QuoteService: Store, Persist and Session are required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	svc := &QuoteService{
		store:    cfg.Store,
		persist:  cfg.Persist,
		session:  cfg.Session,
		notifier: cfg.Notifier,
		clock:    cfg.Clock,
		logger:   logger.With(slog.String("component", "app.QuoteService")),
		intn:     cfg.Intn,
		filter:   domain.FilterAll,
	}

	if svc.notifier == nil {
		svc.notifier = discardNotifier{}
	}

	if svc.clock == nil {
		svc.clock = ports.SystemClock{}
	}

	if svc.intn == nil {
		svc.intn = rand.IntN
	}

	return svc
}

// Restore loads the persisted collection and filter concurrently.
func (s *QuoteService) Restore(ctx context.Context) error {
	_, filter, err := Parallel2(ctx,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, s.store.Load(ctx) },
		s.persist.LoadFilter,
	)
	if err != nil {
		return fmt.Errorf("restoring state: %w", err)
	}

	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()

	return nil
}

// Add appends a new local quote.
func (s *QuoteService) Add(ctx context.Context, text, category string) (domain.Quote, error) {
	logger := logging.FromContextOr(ctx, s.logger)

	q, err := domain.NewQuote(text, category, domain.SourceLocal, s.clock.Now())
	if err != nil {
		s.notifier.Notify(ports.NotifyError, "Please enter both quote text and category")
		return domain.Quote{}, err
	}

	if err := s.store.Append(ctx, q); err != nil {
		s.notifier.Notify(ports.NotifyError, "Could not save quote")
		return domain.Quote{}, fmt.Errorf("adding quote: %w", err)
	}

	logger.DebugContext(ctx, "quote added", slog.String("id", q.ID), slog.String("category", q.Category))
	s.notifier.Notify(ports.NotifySuccess, "Quote added")

	return q, nil
}

// List returns the quotes matching category; domain.FilterAll or "" returns all.
func (s *QuoteService) List(_ context.Context, category string) []domain.Quote {
	all := s.store.All()
	if category == "" || category == domain.FilterAll {
		return all
	}

	out := make([]domain.Quote, 0, len(all))

	for _, q := range all {
		if q.MatchesCategory(category) {
			out = append(out, q)
		}
	}

	return out
}

// Get returns the quote with the given id.
func (s *QuoteService) Get(_ context.Context, id string) (domain.Quote, error) {
	q, ok := s.store.Find(id)
	if !ok {
		return domain.Quote{}, domain.NewNotFoundError("quote", id)
	}

	return q, nil
}

// Categories returns the distinct categories in the collection.
func (s *QuoteService) Categories(_ context.Context) []string {
	return s.store.Categories()
}

// Filter returns the selected category filter.
func (s *QuoteService) Filter(_ context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filter
}

// SetFilter selects and persists the category filter. Any category is
// accepted; blank selects domain.FilterAll.
func (s *QuoteService) SetFilter(ctx context.Context, category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = domain.FilterAll
	}

	if err := s.persist.SaveFilter(ctx, category); err != nil {
		return "", fmt.Errorf("saving filter: %w", err)
	}

	s.mu.Lock()
	s.filter = category
	s.mu.Unlock()

	return category, nil
}

// Random picks a quote under category and remembers it as last viewed for
// the session.
func (s *QuoteService) Random(ctx context.Context, category string) (domain.Quote, error) {
	candidates := s.List(ctx, category)
	if len(candidates) == 0 {
		entity := "quote"
		if category != "" && category != domain.FilterAll {
			entity = fmt.Sprintf("quote in category %q", category)
		}

		return domain.Quote{}, domain.NewNotFoundError(entity, "")
	}

	q := candidates[s.intn(len(candidates))]

	if err := s.session.SaveLastViewed(ctx, q); err != nil {
		logging.FromContextOr(ctx, s.logger).WarnContext(ctx, "saving last viewed quote failed", slog.Any("error", err))
	}

	return q, nil
}

// LastViewed returns the quote most recently shown in this session.
func (s *QuoteService) LastViewed(ctx context.Context) (domain.Quote, error) {
	q, ok, err := s.session.LoadLastViewed(ctx)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("loading last viewed quote: %w", err)
	}

	if !ok {
		return domain.Quote{}, domain.NewNotFoundError("last viewed quote", "")
	}

	return q, nil
}

// Remove deletes a quote by id.
func (s *QuoteService) Remove(ctx context.Context, id string) (domain.Quote, error) {
	q, err := s.store.Remove(ctx, id)
	if err != nil {
		if !domain.IsNotFound(err) {
			s.notifier.Notify(ports.NotifyError, "Could not delete quote")
		}

		return q, err
	}

	s.notifier.Notify(ports.NotifySuccess, "Quote deleted")

	return q, nil
}

// Export writes the whole collection to w.
func (s *QuoteService) Export(_ context.Context, w io.Writer, format Format) error {
	quotes := s.store.All()

	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(tomlDocument{Quotes: quotes}); err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(quotes); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
	}

	return nil
}

// Import reads a document of quotes and appends the valid ones. An element is
// valid when it is an object with non-blank string text and category and,
// if present, a lastModified in the timestamp layout; others are skipped
// and counted. A document that is not a list is rejected.
func (s *QuoteService) Import(ctx context.Context, r io.Reader, format Format) (ImportResult, error) {
	logger := logging.FromContextOr(ctx, s.logger)

	elements, err := decodeImport(r, format)
	if err != nil {
		s.notifier.Notify(ports.NotifyError, "Invalid file format")
		return ImportResult{}, err
	}

	now := s.clock.Now()
	taken := make(map[string]struct{})

	for _, q := range s.store.All() {
		taken[q.ID] = struct{}{}
	}

	var (
		result   ImportResult
		accepted []domain.Quote
	)

	for _, el := range elements {
		q, ok := importElement(el)
		if !ok {
			result.Skipped++
			continue
		}

		if q.Source == "" {
			q.Source = domain.SourceImported
		}

		if q.LastModified == "" {
			q.LastModified = domain.FormatTimestamp(now)
		}

		if _, dup := taken[q.ID]; q.ID == "" || dup {
			q.ID = domain.NewID(domain.SourceImported, now)
		}

		taken[q.ID] = struct{}{}
		accepted = append(accepted, q)
	}

	result.Accepted = len(accepted)

	if err := s.store.Append(ctx, accepted...); err != nil {
		s.notifier.Notify(ports.NotifyError, "Import failed")
		return ImportResult{}, fmt.Errorf("importing quotes: %w", err)
	}

	logger.InfoContext(ctx, "quotes imported",
		slog.Int("accepted", result.Accepted),
		slog.Int("skipped", result.Skipped),
		slog.String("format", string(format)),
	)

	switch {
	case result.Accepted == 0:
		s.notifier.Notify(ports.NotifyWarning, fmt.Sprintf("No valid quotes found (%d skipped)", result.Skipped))
	case result.Skipped > 0:
		s.notifier.Notify(ports.NotifySuccess,
			fmt.Sprintf("Imported %d quotes (%d skipped)", result.Accepted, result.Skipped))
	default:
		s.notifier.Notify(ports.NotifySuccess, fmt.Sprintf("Imported %d quotes", result.Accepted))
	}

	return result, nil
}

func decodeImport(r io.Reader, format Format) ([]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}

	var doc any

	switch format {
	case FormatTOML:
		var table map[string]any
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, domain.NewValidationError("document", "not valid toml: "+err.Error())
		}

		doc = table["quotes"]
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()

		if err := dec.Decode(&doc); err != nil {
			return nil, domain.NewValidationError("document", "not valid json: "+err.Error())
		}
	}

	switch list := doc.(type) {
	case []any:
		return list, nil
	case []map[string]any:
		out := make([]any, len(list))
		for i := range list {
			out[i] = list[i]
		}

		return out, nil
	default:
		return nil, domain.NewValidationError("document", "must be a list of quotes")
	}
}

// importElement validates one decoded element. Present id, lastModified and
// source strings are kept; an unknown source is dropped.
func importElement(el any) (domain.Quote, bool) {
	obj, ok := el.(map[string]any)
	if !ok {
		return domain.Quote{}, false
	}

	text, _ := obj["text"].(string)
	category, _ := obj["category"].(string)

	q := domain.Quote{
		Text:     strings.TrimSpace(text),
		Category: strings.TrimSpace(category),
	}

	if q.Validate() != nil {
		return domain.Quote{}, false
	}

	q.ID, _ = obj["id"].(string)

	if ts, _ := obj["lastModified"].(string); ts != "" {
		parsed, err := domain.ParseTimestamp(ts)
		if err != nil {
			return domain.Quote{}, false
		}

		q.LastModified = domain.FormatTimestamp(parsed)
	}

	if src, _ := obj["source"].(string); domain.Source(src).Valid() {
		q.Source = domain.Source(src)
	}

	return q, true
}
