package handlers

import (
	"net/http"

	"pharmatrack/internal/common"
	"pharmatrack/internal/jobs"

	"github.com/labstack/echo/v4"
)

// DemoHandlers exposes the alert sweeps as on-demand endpoints so the checks
// can be exercised without waiting for the scheduler.
type DemoHandlers struct {
	alertService *jobs.ExpiryAlertService
}

func NewDemoHandlers(alertService *jobs.ExpiryAlertService) *DemoHandlers {
	return &DemoHandlers{alertService: alertService}
}

// CheckMedications handles GET /api/demo/check-medications
func (h *DemoHandlers) CheckMedications(c echo.Context) error {
	summary, err := h.alertService.RunMedicationCheck(c.Request().Context())
	if err != nil {
		return respondError(c, err, "medication check")
	}
	return common.SendData(c, http.StatusOK, summary, "Medication check completed")
}

// CheckAll handles GET /api/demo/check-all
func (h *DemoHandlers) CheckAll(c echo.Context) error {
	summary := h.alertService.RunAll(c.Request().Context())
	return common.SendData(c, http.StatusOK, summary, "Alert sweep completed")
}
