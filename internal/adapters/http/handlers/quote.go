package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-sync/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-sync/internal/app"
)

// QuoteHandler serves the user-facing quote actions.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// ListQuotes handles GET /api/v1/quotes.
//
// @Summary List quotes
// @Tags quotes
// @Produce json
// @Param category query string false "Category filter, case-insensitive"
// @Param limit query int false "Page size (1-100)"
// @Param cursor query string false "Cursor from a previous page"
// @Success 200 {object} dto.PaginatedResponse[dto.QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var req dto.ListQuotesRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	page, err := dto.PageQuotes(h.service.List(c.Request.Context(), req.Category), &req.PaginationRequest)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, err.Error()).
			WithTraceID(dto.GetTraceID(c)))

		return
	}

	c.JSON(http.StatusOK, page)
}

// CreateQuote handles POST /api/v1/quotes.
//
// @Summary Add a local quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param body body dto.CreateQuoteRequest true "Quote"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	quote, err := h.service.Add(c.Request.Context(), req.Text, req.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(quote))
}

// GetQuote handles GET /api/v1/quotes/:id.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// DeleteQuote handles DELETE /api/v1/quotes/:id.
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	if _, err := h.service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetRandomQuote handles GET /api/v1/quotes/random.
// The picked quote becomes the session's last viewed quote.
//
// @Summary Get a random quote
// @Tags quotes
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/random [get]
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	quote, err := h.service.Random(c.Request.Context(), c.Query("category"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// GetLastViewed handles GET /api/v1/quotes/last-viewed.
func (h *QuoteHandler) GetLastViewed(c *gin.Context) {
	quote, err := h.service.LastViewed(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// ListCategories handles GET /api/v1/categories.
func (h *QuoteHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: h.service.Categories(c.Request.Context())})
}

// GetFilter handles GET /api/v1/filter.
func (h *QuoteHandler) GetFilter(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FilterResponse{Category: h.service.Filter(c.Request.Context())})
}

// PutFilter handles PUT /api/v1/filter.
func (h *QuoteHandler) PutFilter(c *gin.Context) {
	var req dto.FilterRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	category, err := h.service.SetFilter(c.Request.Context(), req.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FilterResponse{Category: category})
}

var exportContentTypes = map[app.Format]string{
	app.FormatJSON: "application/json",
	app.FormatTOML: "application/toml",
}

// Export handles GET /api/v1/export?format=json|toml.
func (h *QuoteHandler) Export(c *gin.Context) {
	format, err := app.ParseFormat(c.Query("format"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), &buf, format); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="quotes.`+string(format)+`"`)
	c.Data(http.StatusOK, exportContentTypes[format], buf.Bytes())
}

// Import handles POST /api/v1/import?format=json|toml. The request body is
// the document; invalid elements are skipped and counted.
func (h *QuoteHandler) Import(c *gin.Context) {
	format, err := app.ParseFormat(c.Query("format"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	result, err := h.service.Import(c.Request.Context(), c.Request.Body, format)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.POST("", h.CreateQuote)
	quotes.GET("/random", h.GetRandomQuote)
	quotes.GET("/last-viewed", h.GetLastViewed)
	quotes.GET("/:id", h.GetQuote)
	quotes.DELETE("/:id", h.DeleteQuote)

	rg.GET("/categories", h.ListCategories)
	rg.GET("/filter", h.GetFilter)
	rg.PUT("/filter", h.PutFilter)
	rg.GET("/export", h.Export)
	rg.POST("/import", h.Import)
}
