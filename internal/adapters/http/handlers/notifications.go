package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-sync/internal/app"
)

// NotificationHandler lists the active status messages.
type NotificationHandler struct {
	center *app.NotificationCenter
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(center *app.NotificationCenter) *NotificationHandler {
	return &NotificationHandler{center: center}
}

type notificationsResponse struct {
	Notifications []app.Notification `json:"notifications"`
}

// ListNotifications handles GET /api/v1/notifications.
// Expired notifications are pruned before listing.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	active := h.center.Active()
	if active == nil {
		active = []app.Notification{}
	}

	c.JSON(http.StatusOK, notificationsResponse{Notifications: active})
}

// RegisterNotificationRoutes registers notification routes on the given router group.
func (h *NotificationHandler) RegisterNotificationRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.ListNotifications)
}
