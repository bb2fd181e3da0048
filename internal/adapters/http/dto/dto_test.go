package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-sync/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewErrorResponse(t *testing.T) {
	got := NewErrorResponse(ErrorCodeNotFound, "quote not found").WithTraceID("abc")

	assert.Equal(t, &ErrorResponse{
		Error:   ErrorDetail{Code: ErrorCodeNotFound, Message: "quote not found"},
		TraceID: "abc",
	}, got)

	details := map[string]string{"text": "this field is required"}
	withDetails := NewErrorResponseWithDetails(ErrorCodeValidation, "invalid", details)
	assert.Equal(t, details, withDetails.Error.Details)
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantDetails map[string]string
	}{
		{name: "not found", err: domain.NewNotFoundError("quote", "local_1"), wantStatus: http.StatusNotFound, wantCode: ErrorCodeNotFound},
		{name: "duplicate id", err: domain.NewDuplicateIDError("local_1"), wantStatus: http.StatusConflict, wantCode: ErrorCodeConflict},
		{
			name:        "validation with field",
			err:         fmt.Errorf("add: %w", domain.NewValidationError("text", "must not be empty")),
			wantStatus:  http.StatusBadRequest,
			wantCode:    ErrorCodeValidation,
			wantDetails: map[string]string{"text": "must not be empty"},
		},
		{name: "validation without field", err: domain.NewValidationError("", "bad"), wantStatus: http.StatusBadRequest, wantCode: ErrorCodeValidation},
		{name: "unavailable", err: domain.NewUnavailableError("badger", "closed"), wantStatus: http.StatusServiceUnavailable, wantCode: ErrorCodeUnavailable},
		{name: "unknown", err: errors.New("disk on fire"), wantStatus: http.StatusInternalServerError, wantCode: ErrorCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := MapDomainError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantDetails, resp.Error.Details)
		})
	}

	status, resp := MapDomainError(nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, resp)

	_, resp = MapDomainError(errors.New("secret path /var/lib"))
	assert.NotContains(t, resp.Error.Message, "/var/lib")
}

func TestHandleError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, domain.NewNotFoundError("last viewed quote", ""))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, c.IsAborted())
	assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"last viewed quote not found"}}`, w.Body.String())
	assert.Empty(t, GetTraceID(c))
}

func TestHandleBindError(t *testing.T) {
	t.Run("validator failure lists fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		HandleBindError(c, Validate(&CreateQuoteRequest{Text: "x"}))

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrorCodeValidation, resp.Error.Code)
		assert.Equal(t, map[string]string{"category": "this field is required"}, resp.Error.Details)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
		c.Request.Header.Set("Content-Type", "application/json")

		HandleBindError(c, BindAndValidate(c, &CreateQuoteRequest{}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrorCodeBadRequest)
	})
}

func TestGetLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultLimit},
		{-3, DefaultLimit},
		{5, 5},
		{MaxLimit, MaxLimit},
		{MaxLimit + 1, MaxLimit},
	}

	for _, tt := range tests {
		p := PaginationRequest{Limit: tt.limit}
		assert.Equal(t, tt.want, p.GetLimit(), "limit %d", tt.limit)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	cursor := NewCursor("id", "local_1", "local_1")

	encoded := EncodeCursor(cursor)
	decoded, err := DecodeCursor(encoded)

	require.NoError(t, err)
	assert.Equal(t, cursor, decoded)
	assert.Empty(t, EncodeCursor(nil))

	_, err = DecodeCursor("")
	require.ErrorIs(t, err, ErrNoCursor)

	_, err = DecodeCursor("!!!")
	require.ErrorIs(t, err, ErrInvalidCursor)
}

func TestNewPaginatedResponse(t *testing.T) {
	build := func(s string) *CursorData { return NewCursor("v", s, s) }

	page := NewPaginatedResponse([]string{"a", "b", "c"}, 2, build)
	assert.Equal(t, []string{"a", "b"}, page.Items)
	assert.True(t, page.HasMore)
	assert.NotEmpty(t, page.NextCursor)

	last := NewPaginatedResponse([]string{"a", "b"}, 2, build)
	assert.False(t, last.HasMore)
	assert.Empty(t, last.NextCursor)
}

func TestPageQuotes(t *testing.T) {
	quotes := make([]domain.Quote, 5)
	for i := range quotes {
		quotes[i] = domain.Quote{ID: fmt.Sprintf("local_%d", i), Text: "t", Category: "c"}
	}

	first, err := PageQuotes(quotes, &PaginationRequest{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"local_0", "local_1"}, ids(first.Items))
	require.True(t, first.HasMore)

	second, err := PageQuotes(quotes, &PaginationRequest{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"local_2", "local_3"}, ids(second.Items))

	third, err := PageQuotes(quotes, &PaginationRequest{Limit: 2, Cursor: second.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"local_4"}, ids(third.Items))
	assert.False(t, third.HasMore)

	gone := EncodeCursor(NewCursor("id", "local_99", "local_99"))
	_, err = PageQuotes(quotes, &PaginationRequest{Cursor: gone})
	require.ErrorIs(t, err, ErrInvalidCursor)

	_, err = PageQuotes(quotes, &PaginationRequest{Cursor: "not-base64!"})
	require.ErrorIs(t, err, ErrInvalidCursor)

	empty, err := PageQuotes(nil, &PaginationRequest{})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
}

func ids(items []QuoteResponse) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}

	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		req        any
		wantFields map[string]string
	}{
		{name: "valid", req: &CreateQuoteRequest{Text: "Be brief.", Category: "Writing"}},
		{
			name:       "blank text",
			req:        &CreateQuoteRequest{Text: "   ", Category: "Writing"},
			wantFields: map[string]string{"text": "must not be empty"},
		},
		{
			name:       "category too long",
			req:        &CreateQuoteRequest{Text: "x", Category: strings.Repeat("c", 101)},
			wantFields: map[string]string{"category": "must be at most 100 characters"},
		},
		{
			name:       "limit out of range",
			req:        &ListQuotesRequest{PaginationRequest: PaginationRequest{Limit: 500}},
			wantFields: map[string]string{"limit": "must be less than or equal to 100"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrValidation)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, tt.wantFields, ValidationErrors(err))
		})
	}
}

func TestBindQueryAndValidate(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/quotes?category=Life&limit=5&cursor=abc", nil)

	var req ListQuotesRequest
	require.NoError(t, BindQueryAndValidate(c, &req))

	assert.Equal(t, "Life", req.Category)
	assert.Equal(t, 5, req.Limit)
	assert.Equal(t, "abc", req.Cursor)
}

func TestValidationMessageUnknownTag(t *testing.T) {
	type odd struct {
		Value string `json:"value" validate:"alpha"`
	}

	err := Validate(&odd{Value: "123"})
	assert.Equal(t, map[string]string{"value": "failed validation: alpha"}, ValidationErrors(err))
}
