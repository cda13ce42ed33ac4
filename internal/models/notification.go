package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies what the notification is about.
type NotificationType string

const (
	NotificationMedicationReminder  NotificationType = "MEDICATION_REMINDER"
	NotificationMedicationExpiry    NotificationType = "MEDICATION_EXPIRY"
	NotificationPrescriptionExpiry  NotificationType = "PRESCRIPTION_EXPIRY"
	NotificationPrescriptionRenewal NotificationType = "PRESCRIPTION_RENEWAL"
	NotificationStockLow            NotificationType = "STOCK_LOW"
	NotificationStockExpiry         NotificationType = "STOCK_EXPIRY"
	NotificationGeneral             NotificationType = "GENERAL"
)

type NotificationChannel string

const (
	ChannelEmail  NotificationChannel = "EMAIL"
	ChannelSMS    NotificationChannel = "SMS"
	ChannelSystem NotificationChannel = "SYSTEM"
)

type NotificationStatus string

const (
	NotificationPending   NotificationStatus = "PENDING"
	NotificationScheduled NotificationStatus = "SCHEDULED"
	NotificationSent      NotificationStatus = "SENT"
	NotificationDelivered NotificationStatus = "DELIVERED"
	NotificationFailed    NotificationStatus = "FAILED"
)

func ValidNotificationStatus(s NotificationStatus) bool {
	switch s {
	case NotificationPending, NotificationScheduled, NotificationSent, NotificationDelivered, NotificationFailed:
		return true
	}
	return false
}

// Notification is one dispatch attempt record. EntityID points at the subject
// entity (stock batch, medication course or prescription) and is the dedup key
// together with Type and the creation day.
type Notification struct {
	ID         uuid.UUID           `json:"id" db:"id"`
	Type       NotificationType    `json:"type" db:"type"`
	Channel    NotificationChannel `json:"channel" db:"channel"`
	PatientID  *uuid.UUID          `json:"patientId" db:"patient_id"`
	EntityID   *uuid.UUID          `json:"entityId" db:"entity_id"`
	Recipient  string              `json:"recipient" db:"recipient"`
	Subject    string              `json:"subject" db:"subject"`
	Message    string              `json:"message" db:"message"`
	Status     NotificationStatus  `json:"status" db:"status"`
	Error      *string             `json:"error" db:"error"`
	RetryCount int                 `json:"retryCount" db:"retry_count"`
	CreatedAt  time.Time           `json:"createdAt" db:"created_at"`
	SentAt     *time.Time          `json:"sentAt" db:"sent_at"`
}

// NotificationCounts backs the Notifications page header.
type NotificationCounts struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// PatientNotificationCount is one row of the top-patients report aggregation.
type PatientNotificationCount struct {
	PatientID   uuid.UUID `json:"patientId"`
	PatientName string    `json:"patientName"`
	Count       int       `json:"count"`
}
