package models

import (
	"time"

	"github.com/google/uuid"
)

// MedicationFrequency enumerates the supported dosing schedules.
type MedicationFrequency string

const (
	FrequencyOnceDaily       MedicationFrequency = "ONCE_DAILY"
	FrequencyTwiceDaily      MedicationFrequency = "TWICE_DAILY"
	FrequencyThreeTimesDaily MedicationFrequency = "THREE_TIMES_DAILY"
	FrequencyFourTimesDaily  MedicationFrequency = "FOUR_TIMES_DAILY"
	FrequencyEvery8Hours     MedicationFrequency = "EVERY_8_HOURS"
	FrequencyEvery12Hours    MedicationFrequency = "EVERY_12_HOURS"
	FrequencyAsNeeded        MedicationFrequency = "AS_NEEDED"
	FrequencyWeekly          MedicationFrequency = "WEEKLY"
	FrequencyMonthly         MedicationFrequency = "MONTHLY"
)

// MedicationStatus is externally driven (prescriber decisions), never computed.
type MedicationStatus string

const (
	MedicationActive       MedicationStatus = "ACTIVE"
	MedicationDiscontinued MedicationStatus = "DISCONTINUED"
	MedicationOnHold       MedicationStatus = "ON_HOLD"
	MedicationCompleted    MedicationStatus = "COMPLETED"
)

// ValidMedicationFrequency reports whether f is one of the enumerated schedules.
func ValidMedicationFrequency(f MedicationFrequency) bool {
	switch f {
	case FrequencyOnceDaily, FrequencyTwiceDaily, FrequencyThreeTimesDaily,
		FrequencyFourTimesDaily, FrequencyEvery8Hours, FrequencyEvery12Hours,
		FrequencyAsNeeded, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// ValidMedicationStatus reports whether s is one of the enumerated statuses.
func ValidMedicationStatus(s MedicationStatus) bool {
	switch s {
	case MedicationActive, MedicationDiscontinued, MedicationOnHold, MedicationCompleted:
		return true
	}
	return false
}

// Medication represents a prescribed course for a patient.
type Medication struct {
	ID           uuid.UUID           `json:"id" db:"id"`
	PatientID    uuid.UUID           `json:"patientId" db:"patient_id"`
	ProductID    uuid.UUID           `json:"productId" db:"product_id"`
	DosageAmount float64             `json:"dosageAmount" db:"dosage_amount"`
	DosageUnit   string              `json:"dosageUnit" db:"dosage_unit"`
	Frequency    MedicationFrequency `json:"frequency" db:"frequency"`
	StartDate    time.Time           `json:"startDate" db:"start_date"`
	EndDate      *time.Time          `json:"endDate" db:"end_date"`
	Status       MedicationStatus    `json:"status" db:"status"`
	Notes        *string             `json:"notes" db:"notes"`
	CreatedAt    time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time           `json:"updatedAt" db:"updated_at"`
}

// MedicationView adds the derived "days remaining" badge fields. DaysRemaining
// is nil for open-ended courses (no end date).
type MedicationView struct {
	Medication
	PatientName   string `json:"patientName"`
	ProductName   string `json:"productName"`
	DaysRemaining *int   `json:"daysRemaining"`
	Expired       bool   `json:"expired"`
}
