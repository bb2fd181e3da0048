// Package domain contains the quote entity, the merge rules used during
// synchronisation, and the error taxonomy shared by every layer.
// Nothing in this package performs I/O or reads a clock.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the fixed-width UTC layout of Quote.LastModified.
// Two timestamps in this layout compare chronologically as plain strings.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FilterAll is the category filter value that matches every quote.
const FilterAll = "all"

// Source records where a quote originated.
type Source string

// Known quote sources.
const (
	SourceLocal    Source = "local"
	SourceServer   Source = "server"
	SourceImported Source = "imported"
)

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	switch s {
	case SourceLocal, SourceServer, SourceImported:
		return true
	default:
		return false
	}
}

// Quote is a single quotation in the local collection.
type Quote struct {
	// ID is unique within the collection. Server quotes use "server_<remoteID>".
	ID string `json:"id" toml:"id"`

	// Text is the quotation itself. Never empty.
	Text string `json:"text" toml:"text"`

	// Category is a free-form label. Never empty.
	Category string `json:"category" toml:"category"`

	// LastModified is a TimestampLayout string. Later timestamps win during merge.
	LastModified string `json:"lastModified" toml:"lastModified"`

	// Source is the provenance of the quote.
	Source Source `json:"source" toml:"source"`
}

// QuoteKey is the natural identity used to match quotes across replicas.
type QuoteKey struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// String renders the key for logs.
func (k QuoteKey) String() string {
	return fmt.Sprintf("%q/%s", k.Text, k.Category)
}

// Key returns the natural key of q: exact text plus lower-cased category.
func (q Quote) Key() QuoteKey {
	return QuoteKey{Text: q.Text, Category: strings.ToLower(q.Category)}
}

// Validate checks that the quote carries the fields required in a collection.
func (q Quote) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewValidationError("text", "must not be empty")
	}

	if strings.TrimSpace(q.Category) == "" {
		return NewValidationError("category", "must not be empty")
	}

	return nil
}

// MatchesCategory reports whether q belongs to the given filter.
// FilterAll and the empty string match everything.
func (q Quote) MatchesCategory(category string) bool {
	if category == "" || category == FilterAll {
		return true
	}

	return strings.EqualFold(q.Category, category)
}

// Normalize fills in LastModified, Source and ID when they are missing.
// Fields that are already set are never changed.
func (q Quote) Normalize(now time.Time) Quote {
	if q.LastModified == "" {
		q.LastModified = FormatTimestamp(now)
	}

	if q.Source == "" {
		q.Source = SourceLocal
	}

	if q.ID == "" {
		q.ID = NewID(q.Source, now)
	}

	return q
}

// NewQuote builds a validated quote from user input.
func NewQuote(text, category string, source Source, now time.Time) (Quote, error) {
	q := Quote{
		Text:     strings.TrimSpace(text),
		Category: strings.TrimSpace(category),
	}

	if err := q.Validate(); err != nil {
		return Quote{}, err
	}

	q.ID = NewID(source, now)
	q.LastModified = FormatTimestamp(now)
	q.Source = source

	return q, nil
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a TimestampLayout string. Other RFC 3339 forms are
// accepted too; FormatTimestamp brings them back to the layout.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, NewValidationErrorWithValue("lastModified", "not a valid timestamp", s)
	}

	return t.UTC(), nil
}

// NewID generates a collection-unique id for a locally created or imported quote.
// Server quotes get their ids from ServerID instead.
func NewID(source Source, now time.Time) string {
	prefix := string(source)
	if source == SourceServer || !source.Valid() {
		prefix = string(SourceLocal)
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), suffix)
}

// ServerID returns the deterministic local id of a remote record.
func ServerID(remoteID string) string {
	return "server_" + remoteID
}

// CloneQuotes returns a copy of quotes that shares no backing array with the input.
func CloneQuotes(quotes []Quote) []Quote {
	if quotes == nil {
		return []Quote{}
	}

	out := make([]Quote, len(quotes))
	copy(out, quotes)

	return out
}
