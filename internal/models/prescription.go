package models

import (
	"time"

	"github.com/google/uuid"
)

type PrescriptionType string

const (
	PrescriptionTypeElectronic PrescriptionType = "E_PRESCRIPTION"
	PrescriptionTypePaper      PrescriptionType = "PAPER_PRESCRIPTION"
	PrescriptionTypeReport     PrescriptionType = "REPORT"
	PrescriptionTypeSpecial    PrescriptionType = "SPECIAL_PRESCRIPTION"
)

type PrescriptionStatus string

const (
	PrescriptionActive    PrescriptionStatus = "ACTIVE"
	PrescriptionUsed      PrescriptionStatus = "USED"
	PrescriptionExpired   PrescriptionStatus = "EXPIRED"
	PrescriptionCancelled PrescriptionStatus = "CANCELLED"
	PrescriptionPending   PrescriptionStatus = "PENDING"
)

func ValidPrescriptionType(t PrescriptionType) bool {
	switch t {
	case PrescriptionTypeElectronic, PrescriptionTypePaper, PrescriptionTypeReport, PrescriptionTypeSpecial:
		return true
	}
	return false
}

func ValidPrescriptionStatus(s PrescriptionStatus) bool {
	switch s {
	case PrescriptionActive, PrescriptionUsed, PrescriptionExpired, PrescriptionCancelled, PrescriptionPending:
		return true
	}
	return false
}

type Prescription struct {
	ID                 uuid.UUID          `json:"id" db:"id"`
	PatientID          uuid.UUID          `json:"patientId" db:"patient_id"`
	PrescriptionNumber string             `json:"prescriptionNumber" db:"prescription_number"`
	Type               PrescriptionType   `json:"type" db:"type"`
	IssueDate          time.Time          `json:"issueDate" db:"issue_date"`
	StartDate          time.Time          `json:"startDate" db:"start_date"`
	EndDate            time.Time          `json:"endDate" db:"end_date"`
	ValidityDays       int                `json:"validityDays" db:"validity_days"`
	DoctorName         string             `json:"doctorName" db:"doctor_name"`
	DoctorSpecialty    *string            `json:"doctorSpecialty" db:"doctor_specialty"`
	Institution        *string            `json:"institution" db:"institution"`
	Diagnosis          *string            `json:"diagnosis" db:"diagnosis"`
	Notes              *string            `json:"notes" db:"notes"`
	RefillCount        int                `json:"refillCount" db:"refill_count"`
	Status             PrescriptionStatus `json:"status" db:"status"`
	CreatedAt          time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time          `json:"updatedAt" db:"updated_at"`
}

// PrescriptionView adds the derived day badge for the list page.
type PrescriptionView struct {
	Prescription
	PatientName   string `json:"patientName"`
	DaysRemaining int    `json:"daysRemaining"`
	Expired       bool   `json:"expired"`
}
