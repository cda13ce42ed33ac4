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

// PrescriptionHandlers handles HTTP requests for prescriptions
type PrescriptionHandlers struct {
	prescriptionService services.PrescriptionService
}

func NewPrescriptionHandlers(prescriptionService services.PrescriptionService) *PrescriptionHandlers {
	return &PrescriptionHandlers{prescriptionService: prescriptionService}
}

type prescriptionRequest struct {
	PatientID          string  `json:"patientId"`
	PrescriptionNumber string  `json:"prescriptionNumber"`
	Type               *string `json:"type"`
	IssueDate          *string `json:"issueDate"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	ValidityDays       int     `json:"validityDays"`
	DoctorName         string  `json:"doctorName"`
	DoctorSpecialty    *string `json:"doctorSpecialty"`
	Institution        *string `json:"institution"`
	Diagnosis          *string `json:"diagnosis"`
	Notes              *string `json:"notes"`
	RefillCount        int     `json:"refillCount"`
	Status             *string `json:"status"`
}

func (h *PrescriptionHandlers) bindPrescription(c echo.Context) (*models.Prescription, error) {
	var req prescriptionRequest
	if err := c.Bind(&req); err != nil {
		return nil, common.SendClientError(c, "invalid request format")
	}

	fields := map[string]string{}
	patientID, err := common.ValidateUUID(req.PatientID, "patientId")
	if err != nil {
		fields["patientId"] = "must be a valid UUID"
	}
	startDate, err := common.ParseDate(req.StartDate, "startDate")
	if err != nil {
		fields["startDate"] = "must be in YYYY-MM-DD format"
	}
	endDate, err := common.ParseDate(req.EndDate, "endDate")
	if err != nil {
		fields["endDate"] = "must be in YYYY-MM-DD format"
	}
	var issueDate time.Time
	if req.IssueDate != nil && *req.IssueDate != "" {
		issueDate, err = common.ParseDate(*req.IssueDate, "issueDate")
		if err != nil {
			fields["issueDate"] = "must be in YYYY-MM-DD format"
		}
	}
	if len(fields) > 0 {
		return nil, common.SendValidationError(c, fields)
	}

	prescription := &models.Prescription{
		PatientID:          patientID,
		PrescriptionNumber: strings.TrimSpace(req.PrescriptionNumber),
		IssueDate:          issueDate,
		StartDate:          startDate,
		EndDate:            endDate,
		ValidityDays:       req.ValidityDays,
		DoctorName:         strings.TrimSpace(req.DoctorName),
		DoctorSpecialty:    req.DoctorSpecialty,
		Institution:        req.Institution,
		Diagnosis:          req.Diagnosis,
		Notes:              req.Notes,
		RefillCount:        req.RefillCount,
	}
	if req.Type != nil {
		prescription.Type = models.PrescriptionType(strings.ToUpper(*req.Type))
	}
	if req.Status != nil {
		prescription.Status = models.PrescriptionStatus(strings.ToUpper(*req.Status))
	}
	return prescription, nil
}

// CreatePrescription handles POST /api/prescriptions
func (h *PrescriptionHandlers) CreatePrescription(c echo.Context) error {
	prescription, bindErr := h.bindPrescription(c)
	if bindErr != nil {
		return bindErr
	}

	if err := h.prescriptionService.Create(c.Request().Context(), prescription); err != nil {
		return respondError(c, err, "patient")
	}

	view, err := h.prescriptionService.GetByID(c.Request().Context(), prescription.ID)
	if err != nil {
		return respondError(c, err, "prescription")
	}
	return common.SendData(c, http.StatusCreated, view, "Prescription created")
}

// GetPrescription handles GET /api/prescriptions/:id
func (h *PrescriptionHandlers) GetPrescription(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	view, err := h.prescriptionService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "prescription")
	}
	return common.SendData(c, http.StatusOK, view, "")
}

// ListPrescriptions handles GET /api/prescriptions
func (h *PrescriptionHandlers) ListPrescriptions(c echo.Context) error {
	limit, offset := common.PaginationParams(c)

	views, err := h.prescriptionService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err, "prescriptions")
	}
	return common.SendData(c, http.StatusOK, views, "")
}

// UpdatePrescription handles PUT /api/prescriptions/:id
func (h *PrescriptionHandlers) UpdatePrescription(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	prescription, bindErr := h.bindPrescription(c)
	if bindErr != nil {
		return bindErr
	}
	prescription.ID = id

	if err := h.prescriptionService.Update(c.Request().Context(), prescription); err != nil {
		return respondError(c, err, "prescription")
	}

	view, err := h.prescriptionService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "prescription")
	}
	return common.SendData(c, http.StatusOK, view, "Prescription updated")
}

// DeletePrescription handles DELETE /api/prescriptions/:id
func (h *PrescriptionHandlers) DeletePrescription(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.prescriptionService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "prescription")
	}
	return common.SendData(c, http.StatusOK, nil, "Prescription deleted")
}

// GetPrescriptionsByStatus handles GET /api/prescriptions/status/:status
func (h *PrescriptionHandlers) GetPrescriptionsByStatus(c echo.Context) error {
	status := models.PrescriptionStatus(strings.ToUpper(c.Param("status")))

	views, err := h.prescriptionService.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return respondError(c, err, "prescriptions")
	}
	return common.SendData(c, http.StatusOK, views, "")
}
