package handlers

import (
	"net/http"
	"strings"
	"time"

	"pharmatrack/internal/common"
	"pharmatrack/internal/models"
	"pharmatrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PatientHandlers handles HTTP requests for patients
type PatientHandlers struct {
	patientRepo repositories.PatientRepository
}

func NewPatientHandlers(patientRepo repositories.PatientRepository) *PatientHandlers {
	return &PatientHandlers{patientRepo: patientRepo}
}

type patientRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birthDate"`
	Address   *string `json:"address"`
}

func (h *PatientHandlers) validatePatient(req *patientRequest) (map[string]string, *time.Time) {
	fields := map[string]string{}
	if strings.TrimSpace(req.FirstName) == "" {
		fields["firstName"] = "is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		fields["lastName"] = "is required"
	}

	var birthDate *time.Time
	if req.BirthDate != nil && *req.BirthDate != "" {
		parsed, err := common.ParseDate(*req.BirthDate, "birthDate")
		if err != nil {
			fields["birthDate"] = "must be in YYYY-MM-DD format"
		} else {
			birthDate = &parsed
		}
	}
	return fields, birthDate
}

// CreatePatient handles POST /api/patients
func (h *PatientHandlers) CreatePatient(c echo.Context) error {
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	fields, birthDate := h.validatePatient(&req)
	if len(fields) > 0 {
		return common.SendValidationError(c, fields)
	}

	patient := &models.Patient{
		ID:        uuid.New(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: birthDate,
		Address:   req.Address,
	}
	if err := h.patientRepo.Create(c.Request().Context(), patient); err != nil {
		return respondError(c, err, "patient")
	}

	return common.SendData(c, http.StatusCreated, patient, "Patient created")
}

// GetPatient handles GET /api/patients/:id
func (h *PatientHandlers) GetPatient(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	patient, err := h.patientRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "patient")
	}

	return common.SendData(c, http.StatusOK, patient, "")
}

// ListPatients handles GET /api/patients
func (h *PatientHandlers) ListPatients(c echo.Context) error {
	limit, offset := common.PaginationParams(c)

	patients, err := h.patientRepo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err, "patients")
	}

	return common.SendData(c, http.StatusOK, patients, "")
}

// UpdatePatient handles PUT /api/patients/:id
func (h *PatientHandlers) UpdatePatient(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	fields, birthDate := h.validatePatient(&req)
	if len(fields) > 0 {
		return common.SendValidationError(c, fields)
	}

	patient, err := h.patientRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "patient")
	}

	patient.FirstName = strings.TrimSpace(req.FirstName)
	patient.LastName = strings.TrimSpace(req.LastName)
	patient.Email = req.Email
	patient.Phone = req.Phone
	patient.BirthDate = birthDate
	patient.Address = req.Address

	if err := h.patientRepo.Update(c.Request().Context(), patient); err != nil {
		return respondError(c, err, "patient")
	}

	return common.SendData(c, http.StatusOK, patient, "Patient updated")
}

// DeletePatient handles DELETE /api/patients/:id
func (h *PatientHandlers) DeletePatient(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.patientRepo.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "patient")
	}

	return common.SendData(c, http.StatusOK, nil, "Patient deleted")
}
