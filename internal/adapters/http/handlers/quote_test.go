package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-sync/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-sync/internal/domain"
)

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v))

	return v
}

func TestQuoteHandler_CreateAndList(t *testing.T) {
	a := newTestApp(t)

	w := a.do(http.MethodPost, "/api/v1/quotes", `{"text":" Be brief. ","category":"Writing"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[dto.QuoteResponse](t, w.Body.Bytes())
	assert.Equal(t, "Be brief.", created.Text)
	assert.Equal(t, "local", created.Source)
	assert.Equal(t, "2024-06-01T09:00:00.000Z", created.LastModified)

	w = a.do(http.MethodGet, "/api/v1/quotes", "")
	require.Equal(t, http.StatusOK, w.Code)

	page := decode[dto.PaginatedResponse[dto.QuoteResponse]](t, w.Body.Bytes())
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)
	assert.False(t, page.HasMore)
}

func TestQuoteHandler_CreateValidation(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "missing category", body: `{"text":"x"}`, wantCode: dto.ErrorCodeValidation},
		{name: "blank text", body: `{"text":"  ","category":"x"}`, wantCode: dto.ErrorCodeValidation},
		{name: "malformed", body: `{"text":`, wantCode: dto.ErrorCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(http.MethodPost, "/api/v1/quotes", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantCode, decode[dto.ErrorResponse](t, w.Body.Bytes()).Error.Code)
		})
	}

	assert.Zero(t, a.services.Store.Len())
}

func TestQuoteHandler_ListFilterAndPaging(t *testing.T) {
	a := newTestApp(t,
		q("local_1", "A", "Life", domain.SourceLocal),
		q("local_2", "B", "work", domain.SourceLocal),
		q("local_3", "C", "life", domain.SourceLocal),
	)

	w := a.do(http.MethodGet, "/api/v1/quotes?category=LIFE&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	first := decode[dto.PaginatedResponse[dto.QuoteResponse]](t, w.Body.Bytes())
	require.Len(t, first.Items, 1)
	assert.Equal(t, "local_1", first.Items[0].ID)
	require.True(t, first.HasMore)

	w = a.do(http.MethodGet, "/api/v1/quotes?category=LIFE&limit=1&cursor="+first.NextCursor, "")
	second := decode[dto.PaginatedResponse[dto.QuoteResponse]](t, w.Body.Bytes())
	require.Len(t, second.Items, 1)
	assert.Equal(t, "local_3", second.Items[0].ID)
	assert.False(t, second.HasMore)

	w = a.do(http.MethodGet, "/api/v1/quotes?cursor=garbage", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodGet, "/api/v1/quotes?limit=1000", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuoteHandler_RandomAndLastViewed(t *testing.T) {
	a := newTestApp(t, q("local_1", "A", "life", domain.SourceLocal))

	w := a.do(http.MethodGet, "/api/v1/quotes/last-viewed", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodGet, "/api/v1/quotes/random?category=work", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodGet, "/api/v1/quotes/random", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "local_1", decode[dto.QuoteResponse](t, w.Body.Bytes()).ID)

	w = a.do(http.MethodGet, "/api/v1/quotes/last-viewed", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "local_1", decode[dto.QuoteResponse](t, w.Body.Bytes()).ID)
}

func TestQuoteHandler_GetByID(t *testing.T) {
	a := newTestApp(t, q("local_1", "A", "x", domain.SourceLocal))

	w := a.do(http.MethodGet, "/api/v1/quotes/local_1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A", decode[dto.QuoteResponse](t, w.Body.Bytes()).Text)

	w = a.do(http.MethodGet, "/api/v1/quotes/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuoteHandler_Delete(t *testing.T) {
	a := newTestApp(t, q("local_1", "A", "x", domain.SourceLocal))

	w := a.do(http.MethodDelete, "/api/v1/quotes/local_1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(http.MethodDelete, "/api/v1/quotes/local_1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, a.services.Store.Len())
}

func TestQuoteHandler_CategoriesAndFilter(t *testing.T) {
	a := newTestApp(t,
		q("local_1", "A", "Life", domain.SourceLocal),
		q("local_2", "B", "life", domain.SourceLocal),
	)

	w := a.do(http.MethodGet, "/api/v1/categories", "")
	assert.JSONEq(t, `{"categories":["Life"]}`, w.Body.String())

	w = a.do(http.MethodGet, "/api/v1/filter", "")
	assert.JSONEq(t, `{"category":"all"}`, w.Body.String())

	w = a.do(http.MethodPut, "/api/v1/filter", `{"category":"Life"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"category":"Life"}`, w.Body.String())

	w = a.do(http.MethodGet, "/api/v1/filter", "")
	assert.JSONEq(t, `{"category":"Life"}`, w.Body.String())
}

func TestQuoteHandler_ExportImport(t *testing.T) {
	src := newTestApp(t, q("local_1", "A", "x", domain.SourceLocal))

	for _, format := range []string{"json", "toml"} {
		t.Run(format, func(t *testing.T) {
			w := src.do(http.MethodGet, "/api/v1/export?format="+format, "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Disposition"), "quotes."+format)

			dst := newTestApp(t)
			w = dst.do(http.MethodPost, "/api/v1/import?format="+format, w.Body.String())

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.JSONEq(t, `{"accepted":1,"skipped":0}`, w.Body.String())
			assert.Equal(t, src.services.Store.All(), dst.services.Store.All())
		})
	}
}

func TestQuoteHandler_ImportErrors(t *testing.T) {
	a := newTestApp(t)

	w := a.do(http.MethodPost, "/api/v1/import", `{"text":"A","category":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, "/api/v1/import?format=yaml", `[]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"format"`)

	w = a.do(http.MethodGet, "/api/v1/export?format=csv", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, "/api/v1/import", `[{"text":"A","category":"x"},{"text":"B"}]`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"accepted":1,"skipped":1}`, w.Body.String())
	assert.True(t, strings.HasPrefix(a.services.Store.All()[0].ID, "imported_"))
}

func TestQuoteHandler_RegisterQuoteRoutes(t *testing.T) {
	a := newTestApp(t)

	routes := make(map[string]bool)
	for _, r := range a.router.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /api/v1/quotes",
		"POST /api/v1/quotes",
		"GET /api/v1/quotes/:id",
		"DELETE /api/v1/quotes/:id",
		"GET /api/v1/quotes/random",
		"GET /api/v1/quotes/last-viewed",
		"GET /api/v1/categories",
		"GET /api/v1/filter",
		"PUT /api/v1/filter",
		"GET /api/v1/export",
		"POST /api/v1/import",
		"POST /api/v1/sync",
		"GET /api/v1/sync/status",
		"GET /api/v1/notifications",
	} {
		assert.True(t, routes[want], "missing route: %s", want)
	}
}
