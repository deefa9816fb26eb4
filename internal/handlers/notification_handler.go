package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storyweave/backend/internal/middleware"
	"github.com/storyweave/backend/internal/notify"
)

// NotificationHandler handles notification HTTP requests.
type NotificationHandler struct {
	fanout *notify.Fanout
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(fanout *notify.Fanout) *NotificationHandler {
	return &NotificationHandler{fanout: fanout}
}

// RegisterNotificationRoutes registers notification-related routes.
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread/count", h.GetUnreadCount)
	g.PATCH("/notifications/:id/read", h.MarkAsRead)
}

// GetNotifications returns the caller's notifications, newest first.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	notifications, err := h.fanout.NotificationsFor(c.Request().Context(), middleware.ViewerID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// GetUnreadCount returns the caller's unread notification count.
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.fanout.UnreadCount(c.Request().Context(), middleware.ViewerID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unreadCount": count})
}

// MarkAsRead performs the idempotent unread -> read transition.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	if err := h.fanout.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
