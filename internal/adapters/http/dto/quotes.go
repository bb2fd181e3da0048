package dto

import (
	"errors"

	"github.com/jsamuelsen/quote-sync/internal/domain"
)

// QuoteResponse is the wire form of a quote.
type QuoteResponse struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Category     string `json:"category"`
	LastModified string `json:"lastModified"`
	Source       string `json:"source"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:           q.ID,
		Text:         q.Text,
		Category:     q.Category,
		LastModified: q.LastModified,
		Source:       string(q.Source),
	}
}

// NewQuoteResponses converts a slice of domain quotes.
func NewQuoteResponses(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, len(quotes))
	for i, q := range quotes {
		out[i] = NewQuoteResponse(q)
	}

	return out
}

// CreateQuoteRequest is the body of POST /quotes.
type CreateQuoteRequest struct {
	Text     string `json:"text" validate:"required,notempty,max=2000"`
	Category string `json:"category" validate:"required,notempty,max=100"`
}

// ListQuotesRequest holds the query of GET /quotes.
type ListQuotesRequest struct {
	PaginationRequest

	// Category filters case-insensitively; empty or "all" lists everything.
	Category string `form:"category" json:"category" validate:"max=100"`
}

// FilterRequest is the body of PUT /filter. Blank selects all categories.
type FilterRequest struct {
	Category string `json:"category" validate:"max=100"`
}

// FilterResponse reports the selected category filter.
type FilterResponse struct {
	Category string `json:"category"`
}

// CategoriesResponse lists distinct categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// PageQuotes slices quotes into the page that follows the cursor. The cursor
// carries the id of the last quote of the previous page, so pages stay
// stable while quotes are appended. An id no longer present is invalid.
func PageQuotes(quotes []domain.Quote, req *PaginationRequest) (*PaginatedResponse[QuoteResponse], error) {
	start := 0

	cursor, err := req.DecodeCursor()

	switch {
	case err == nil:
		start = -1

		for i, q := range quotes {
			if q.ID == cursor.ID {
				start = i + 1
				break
			}
		}

		if start < 0 {
			return nil, ErrInvalidCursor
		}
	case !errors.Is(err, ErrNoCursor):
		return nil, err
	}

	limit := req.GetLimit()
	end := min(start+limit+1, len(quotes))

	return NewPaginatedResponse(NewQuoteResponses(quotes[start:end]), limit, func(q QuoteResponse) *CursorData {
		return NewCursor("id", q.ID, q.ID)
	}), nil
}
