package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-sync/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-sync/internal/app"
	"github.com/jsamuelsen/quote-sync/internal/platform/logging"
)

// SyncHandler exposes manual sync and the sync state.
type SyncHandler struct {
	sync *app.SyncService
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(sync *app.SyncService) *SyncHandler {
	return &SyncHandler{sync: sync}
}

// SyncStatusResponse describes the sync subsystem.
type SyncStatusResponse struct {
	Running    bool            `json:"running"`
	InProgress bool            `json:"inProgress"`
	Interval   string          `json:"interval"`
	LastReport *app.SyncReport `json:"lastReport,omitempty"`
}

// TriggerSync handles POST /api/v1/sync. A sync already in flight yields
// 202 with status "skipped"; a failed cycle yields 500 with its report.
// The cycle runs to completion even if the request deadline passes or the
// client goes away.
//
// @Summary Run a sync cycle now
// @Tags sync
// @Produce json
// @Success 200 {object} app.SyncReport
// @Success 202 {object} app.SyncReport
// @Failure 500 {object} app.SyncReport
// @Router /api/v1/sync [post]
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	ctx := context.WithoutCancel(c.Request.Context())

	report, err := h.sync.SyncNow(ctx)

	switch {
	case err != nil:
		logging.FromContext(ctx).WarnContext(ctx, "manual sync failed",
			slog.String("cycle_id", report.CycleID),
			slog.String("stage", string(report.Stage)),
		)

		status, _ := dto.MapDomainError(err)
		c.JSON(status, report)
	case report.Status == app.StatusSkipped:
		c.JSON(http.StatusAccepted, report)
	default:
		c.JSON(http.StatusOK, report)
	}
}

// GetStatus handles GET /api/v1/sync/status.
func (h *SyncHandler) GetStatus(c *gin.Context) {
	resp := SyncStatusResponse{
		Running:    h.sync.Running(),
		InProgress: h.sync.InProgress(),
		Interval:   h.sync.Interval().String(),
	}

	if last, ok := h.sync.LastReport(); ok {
		resp.LastReport = &last
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterSyncRoutes registers sync routes on the given router group.
func (h *SyncHandler) RegisterSyncRoutes(rg *gin.RouterGroup) {
	rg.POST("/sync", h.TriggerSync)
	rg.GET("/sync/status", h.GetStatus)
}
