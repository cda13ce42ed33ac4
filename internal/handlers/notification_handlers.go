package handlers

import (
	"net/http"
	"strings"

	"pharmatrack/internal/common"
	"pharmatrack/internal/models"
	"pharmatrack/internal/services"

	"github.com/labstack/echo/v4"
)

// NotificationHandlers handles HTTP requests for the notifications page
type NotificationHandlers struct {
	notificationService services.NotificationService
}

func NewNotificationHandlers(notificationService services.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{notificationService: notificationService}
}

// ListNotifications handles GET /api/notifications
func (h *NotificationHandlers) ListNotifications(c echo.Context) error {
	limit, offset := common.PaginationParams(c)

	notifications, err := h.notificationService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err, "notifications")
	}
	return common.SendData(c, http.StatusOK, notifications, "")
}

// GetNotification handles GET /api/notifications/:id
func (h *NotificationHandlers) GetNotification(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	notification, err := h.notificationService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "notification")
	}
	return common.SendData(c, http.StatusOK, notification, "")
}

// GetNotificationsByStatus handles GET /api/notifications/status/:status
func (h *NotificationHandlers) GetNotificationsByStatus(c echo.Context) error {
	status := models.NotificationStatus(strings.ToUpper(c.Param("status")))

	notifications, err := h.notificationService.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return respondError(c, err, "notifications")
	}
	return common.SendData(c, http.StatusOK, notifications, "")
}

// GetNotificationCounts handles GET /api/notifications/count
func (h *NotificationHandlers) GetNotificationCounts(c echo.Context) error {
	counts, err := h.notificationService.Counts(c.Request().Context())
	if err != nil {
		return respondError(c, err, "notification counts")
	}
	return common.SendData(c, http.StatusOK, counts, "")
}

// RetryNotification handles PATCH /api/notifications/:id/retry
func (h *NotificationHandlers) RetryNotification(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	notification, err := h.notificationService.Retry(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "notification")
	}

	message := "Notification re-sent"
	if notification.Status == models.NotificationFailed {
		message = "Retry attempted but delivery failed again"
	}
	return common.SendData(c, http.StatusOK, notification, message)
}
