package handlers

import (
	"net/http"
	"strings"
	"time"

	"pharmatrack/internal/common"
	"pharmatrack/internal/models"
	"pharmatrack/internal/services"

	"github.com/labstack/echo/v4"
)

// MedicationHandlers handles HTTP requests for medication courses
type MedicationHandlers struct {
	medicationService services.MedicationService
}

func NewMedicationHandlers(medicationService services.MedicationService) *MedicationHandlers {
	return &MedicationHandlers{medicationService: medicationService}
}

type medicationRequest struct {
	PatientID    string   `json:"patientId"`
	ProductID    string   `json:"productId"`
	DosageAmount float64  `json:"dosageAmount"`
	DosageUnit   string   `json:"dosageUnit"`
	Frequency    string   `json:"frequency"`
	StartDate    string   `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	Status       *string  `json:"status"`
	Notes        *string  `json:"notes"`
}

func (h *MedicationHandlers) bindMedication(c echo.Context) (*models.Medication, error) {
	var req medicationRequest
	if err := c.Bind(&req); err != nil {
		return nil, common.SendClientError(c, "invalid request format")
	}

	fields := map[string]string{}
	patientID, err := common.ValidateUUID(req.PatientID, "patientId")
	if err != nil {
		fields["patientId"] = "must be a valid UUID"
	}
	productID, err := common.ValidateUUID(req.ProductID, "productId")
	if err != nil {
		fields["productId"] = "must be a valid UUID"
	}
	startDate, err := common.ParseDate(req.StartDate, "startDate")
	if err != nil {
		fields["startDate"] = "must be in YYYY-MM-DD format"
	}
	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := common.ParseDate(*req.EndDate, "endDate")
		if err != nil {
			fields["endDate"] = "must be in YYYY-MM-DD format"
		} else {
			endDate = &parsed
		}
	}
	if strings.TrimSpace(req.DosageUnit) == "" {
		fields["dosageUnit"] = "is required"
	}
	if len(fields) > 0 {
		return nil, common.SendValidationError(c, fields)
	}

	medication := &models.Medication{
		PatientID:    patientID,
		ProductID:    productID,
		DosageAmount: req.DosageAmount,
		DosageUnit:   strings.TrimSpace(req.DosageUnit),
		Frequency:    models.MedicationFrequency(strings.ToUpper(req.Frequency)),
		StartDate:    startDate,
		EndDate:      endDate,
		Notes:        req.Notes,
	}
	if req.Status != nil {
		medication.Status = models.MedicationStatus(strings.ToUpper(*req.Status))
	}
	return medication, nil
}

// CreateMedication handles POST /api/medications
func (h *MedicationHandlers) CreateMedication(c echo.Context) error {
	medication, bindErr := h.bindMedication(c)
	if bindErr != nil {
		return bindErr
	}

	if err := h.medicationService.Create(c.Request().Context(), medication); err != nil {
		return respondError(c, err, "patient")
	}

	view, err := h.medicationService.GetByID(c.Request().Context(), medication.ID)
	if err != nil {
		return respondError(c, err, "medication")
	}
	return common.SendData(c, http.StatusCreated, view, "Medication created")
}

// GetMedication handles GET /api/medications/:id
func (h *MedicationHandlers) GetMedication(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	view, err := h.medicationService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "medication")
	}
	return common.SendData(c, http.StatusOK, view, "")
}

// ListMedications handles GET /api/medications
func (h *MedicationHandlers) ListMedications(c echo.Context) error {
	limit, offset := common.PaginationParams(c)

	views, err := h.medicationService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err, "medications")
	}
	return common.SendData(c, http.StatusOK, views, "")
}

// UpdateMedication handles PUT /api/medications/:id
func (h *MedicationHandlers) UpdateMedication(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	medication, bindErr := h.bindMedication(c)
	if bindErr != nil {
		return bindErr
	}
	medication.ID = id

	if err := h.medicationService.Update(c.Request().Context(), medication); err != nil {
		return respondError(c, err, "medication")
	}

	view, err := h.medicationService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "medication")
	}
	return common.SendData(c, http.StatusOK, view, "Medication updated")
}

// DeleteMedication handles DELETE /api/medications/:id
func (h *MedicationHandlers) DeleteMedication(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.medicationService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "medication")
	}
	return common.SendData(c, http.StatusOK, nil, "Medication deleted")
}

// GetMedicationSummary handles GET /api/medications/summary
func (h *MedicationHandlers) GetMedicationSummary(c echo.Context) error {
	summary, err := h.medicationService.Summary(c.Request().Context())
	if err != nil {
		return respondError(c, err, "medication summary")
	}
	return common.SendData(c, http.StatusOK, summary, "")
}

// GetMedicationsByPatient handles GET /api/medications/patient/:id
func (h *MedicationHandlers) GetMedicationsByPatient(c echo.Context) error {
	patientID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	views, err := h.medicationService.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		return respondError(c, err, "medications")
	}
	return common.SendData(c, http.StatusOK, views, "")
}

// GetMedicationsByStatus handles GET /api/medications/status/:status
func (h *MedicationHandlers) GetMedicationsByStatus(c echo.Context) error {
	status := models.MedicationStatus(strings.ToUpper(c.Param("status")))

	views, err := h.medicationService.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return respondError(c, err, "medications")
	}
	return common.SendData(c, http.StatusOK, views, "")
}

// GetRefillNeeded handles GET /api/medications/refill-needed
func (h *MedicationHandlers) GetRefillNeeded(c echo.Context) error {
	views, err := h.medicationService.RefillNeeded(c.Request().Context())
	if err != nil {
		return respondError(c, err, "medications")
	}
	return common.SendData(c, http.StatusOK, views, "")
}
