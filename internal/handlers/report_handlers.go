package handlers

import (
	"net/http"
	"strconv"

	"pharmatrack/internal/common"
	"pharmatrack/internal/reports"

	"github.com/labstack/echo/v4"
)

// ReportHandlers serves the dashboard aggregation endpoints.
type ReportHandlers struct {
	reportService *reports.ReportService
}

func NewReportHandlers(reportService *reports.ReportService) *ReportHandlers {
	return &ReportHandlers{reportService: reportService}
}

// GetOverview handles GET /api/reports/overview
func (h *ReportHandlers) GetOverview(c echo.Context) error {
	overview, err := h.reportService.Overview(c.Request().Context())
	if err != nil {
		return respondError(c, err, "report")
	}
	return common.SendData(c, http.StatusOK, overview, "")
}

// GetTopPatients handles GET /api/reports/top-patients?limit=N
func (h *ReportHandlers) GetTopPatients(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return common.SendValidationError(c, map[string]string{"limit": "must be a positive integer"})
		}
		limit = parsed
	}

	rows, err := h.reportService.TopPatients(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, err, "report")
	}
	return common.SendData(c, http.StatusOK, rows, "")
}
