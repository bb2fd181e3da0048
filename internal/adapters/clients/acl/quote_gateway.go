package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quote-sync/internal/adapters/clients"
	"github.com/jsamuelsen/quote-sync/internal/domain"
	"github.com/jsamuelsen/quote-sync/internal/platform/logging"
	"github.com/jsamuelsen/quote-sync/internal/ports"
)

// Defaults applied by NewQuoteGateway to zero-valued config fields.
const (
	DefaultListPath        = "/posts"
	DefaultPushBatchSize   = 50
	DefaultPushConcurrency = 4
	DefaultRemoteCategory  = "Remote"
)

var (
	errMissingID   = errors.New("missing id")
	errMissingText = errors.New("missing text")
)

// QuoteGatewayConfig configures a QuoteGateway.
type QuoteGatewayConfig struct {
	Client *clients.Client
	Clock  ports.Clock
	Logger *slog.Logger

	ListPath string
	PushPath string

	// FetchLimit caps how many remote records are translated. Zero means no cap.
	FetchLimit int

	// DefaultCategory labels remote records that carry no category.
	DefaultCategory string

	PushBatchSize   int
	PushConcurrency int
}

// QuoteGateway implements ports.RemoteGateway and ports.HealthChecker against
// a JSON list endpoint.
type QuoteGateway struct {
	BaseAdapter

	clock  ports.Clock
	logger *slog.Logger

	listPath        string
	pushPath        string
	fetchLimit      int
	defaultCategory string
	batchSize       int
	concurrency     int
}

var (
	_ ports.RemoteGateway = (*QuoteGateway)(nil)
	_ ports.HealthChecker = (*QuoteGateway)(nil)
)

// NewQuoteGateway creates a gateway. Panics if Client is nil.
func NewQuoteGateway(cfg QuoteGatewayConfig) *QuoteGateway {
	if cfg.Client == nil {
		panic("QuoteGateway: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	g := &QuoteGateway{
		BaseAdapter:     NewBaseAdapter(cfg.Client, cfg.Client.ServiceName()),
		clock:           clock,
		logger:          logger.With(slog.String("component", "acl.QuoteGateway")),
		listPath:        orDefault(cfg.ListPath, DefaultListPath),
		pushPath:        orDefault(cfg.PushPath, orDefault(cfg.ListPath, DefaultListPath)),
		fetchLimit:      max(cfg.FetchLimit, 0),
		defaultCategory: orDefault(cfg.DefaultCategory, DefaultRemoteCategory),
		batchSize:       DefaultPushBatchSize,
		concurrency:     DefaultPushConcurrency,
	}

	if cfg.PushBatchSize > 0 {
		g.batchSize = cfg.PushBatchSize
	}

	if cfg.PushConcurrency > 0 {
		g.concurrency = cfg.PushConcurrency
	}

	return g
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}

	return v
}

// remoteID accepts both JSON numbers and strings.
type remoteID string

func (id *remoteID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = remoteID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}

	*id = remoteID(n.String())

	return nil
}

// remoteQuote is the wire shape of one remote record. Never leaves this package.
type remoteQuote struct {
	ID       remoteID `json:"id"`
	Text     string   `json:"text"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Category string   `json:"category"`
}

// outgoingQuote is the create payload sent on push.
type outgoingQuote struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	Category     string `json:"category"`
	LastModified string `json:"lastModified"`
	Source       string `json:"source"`
	LocalID      string `json:"localId"`
}

// toDomain translates one remote record. stamp is the fetch time shared by
// every record of the same fetch.
func (g *QuoteGateway) toDomain(stamp string) Translator[remoteQuote, domain.Quote] {
	return func(ext *remoteQuote) (domain.Quote, error) {
		if ext.ID == "" {
			return domain.Quote{}, errMissingID
		}

		text := firstNonBlank(ext.Text, ext.Title, ext.Body)
		if text == "" {
			return domain.Quote{}, errMissingText
		}

		category := strings.TrimSpace(ext.Category)
		if category == "" {
			category = g.defaultCategory
		}

		return domain.Quote{
			ID:           domain.ServerID(string(ext.ID)),
			Text:         text,
			Category:     category,
			LastModified: stamp,
			Source:       domain.SourceServer,
		}, nil
	}
}

func toOutgoing(q domain.Quote) outgoingQuote {
	return outgoingQuote{
		Title:        q.Text,
		Body:         q.Text,
		Category:     q.Category,
		LastModified: q.LastModified,
		Source:       string(q.Source),
		LocalID:      q.ID,
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return ""
}

// FetchRemoteQuotes implements ports.RemoteGateway. Any failure is logged and
// yields an empty slice.
func (g *QuoteGateway) FetchRemoteQuotes(ctx context.Context) []domain.Quote {
	logger := logging.FromContextOr(ctx, g.logger)
	logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", g.listPath))

	quotes, err := g.fetch(ctx, logger)
	if err != nil {
		logger.WarnContext(ctx, "fetching remote quotes failed", slog.Any("error", err))
		return []domain.Quote{}
	}

	logger.DebugContext(ctx, "fetched remote quotes", slog.Int("count", len(quotes)))

	return quotes
}

func (g *QuoteGateway) fetch(ctx context.Context, logger *slog.Logger) ([]domain.Quote, error) {
	body, err := g.Get(ctx, g.listPath, "fetch quotes")
	if err != nil {
		return nil, err
	}

	records, err := DecodeResponse[[]remoteQuote](body)
	if err != nil {
		return nil, domain.NewUnavailableError(g.ServiceName(), err.Error())
	}

	items := *records
	if g.fetchLimit > 0 && len(items) > g.fetchLimit {
		items = items[:g.fetchLimit]
	}

	stamp := domain.FormatTimestamp(g.clock.Now())

	quotes, dropped := TranslateValid(items, g.toDomain(stamp))
	if len(dropped) > 0 {
		logger.DebugContext(ctx, "dropped partial remote records",
			slog.Int("dropped", len(dropped)),
			slog.Any("first", dropped[0]),
		)
	}

	return quotes, nil
}

// PushLocalQuotes implements ports.RemoteGateway. Server-sourced quotes are
// never sent back. Returns false if any batch was rejected.
func (g *QuoteGateway) PushLocalQuotes(ctx context.Context, quotes []domain.Quote) bool {
	logger := logging.FromContextOr(ctx, g.logger)

	outgoing := make([]outgoingQuote, 0, len(quotes))
	for _, q := range quotes {
		if q.Source != domain.SourceServer {
			outgoing = append(outgoing, toOutgoing(q))
		}
	}

	if len(outgoing) == 0 {
		logger.DebugContext(ctx, "nothing to push")
		return true
	}

	batches := chunk(outgoing, g.batchSize)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)

	for i, batch := range batches {
		eg.Go(func() error {
			body, err := g.Post(egCtx, g.pushPath, batch, "push quotes")
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}

			return body.Close()
		})
	}

	if err := eg.Wait(); err != nil {
		logger.WarnContext(ctx, "pushing local quotes failed",
			slog.Int("quotes", len(outgoing)),
			slog.Int("batches", len(batches)),
			slog.Any("error", err),
		)

		return false
	}

	logger.DebugContext(ctx, "pushed local quotes",
		slog.Int("quotes", len(outgoing)),
		slog.Int("batches", len(batches)),
	)

	return true
}

func chunk[T any](items []T, size int) [][]T {
	batches := make([][]T, 0, (len(items)+size-1)/size)

	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}

	return batches
}

// Name implements ports.HealthChecker.
func (g *QuoteGateway) Name() string {
	return g.ServiceName()
}

// Check implements ports.HealthChecker by requesting the first list page.
func (g *QuoteGateway) Check(ctx context.Context) error {
	body, err := g.Get(ctx, g.listPath+"?_limit="+strconv.Itoa(1), "health check")
	if err != nil {
		return err
	}

	return body.Close()
}
