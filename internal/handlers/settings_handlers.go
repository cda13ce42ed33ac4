package handlers

import (
	"net/http"

	"pharmatrack/internal/common"
	"pharmatrack/internal/models"
	"pharmatrack/internal/services"

	"github.com/labstack/echo/v4"
)

// SettingsHandlers handles HTTP requests for alert settings
type SettingsHandlers struct {
	settingsService services.SettingsService
}

func NewSettingsHandlers(settingsService services.SettingsService) *SettingsHandlers {
	return &SettingsHandlers{settingsService: settingsService}
}

// GetSettings handles GET /api/settings
func (h *SettingsHandlers) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.Get(c.Request().Context())
	if err != nil {
		return respondError(c, err, "settings")
	}
	return common.SendData(c, http.StatusOK, settings, "")
}

// UpdateSettings handles PUT /api/settings
func (h *SettingsHandlers) UpdateSettings(c echo.Context) error {
	var update models.AlertSettingsUpdate
	if err := c.Bind(&update); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	settings, err := h.settingsService.Update(c.Request().Context(), &update)
	if err != nil {
		return respondError(c, err, "settings")
	}
	return common.SendData(c, http.StatusOK, settings, "Settings updated")
}

// ResetSettings handles POST /api/settings/reset
func (h *SettingsHandlers) ResetSettings(c echo.Context) error {
	settings, err := h.settingsService.Reset(c.Request().Context())
	if err != nil {
		return respondError(c, err, "settings")
	}
	return common.SendData(c, http.StatusOK, settings, "Settings reset to defaults")
}
