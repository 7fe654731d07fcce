package handlers

import (
	"net/http"
	"strconv"

	"github.com/jmalone/microblog/backend/internal/models"
	"github.com/jmalone/microblog/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification polling requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
}

// GetNotifications returns the current user's notifications newer than the
// optional "since" epoch timestamp, oldest first. Clients poll with the last
// timestamp they saw.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	since := 0.0
	if raw := c.QueryParam("since"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid since parameter")
		}
		since = parsed
	}

	notifications, err := h.notificationRepository.GetSince(currentUserID, since)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	items := make([]models.Dict, len(notifications))
	for i := range notifications {
		items[i] = notifications[i].ToDict()
	}

	return c.JSON(http.StatusOK, echo.Map{"notifications": items})
}
