package models

import "time"

// AlertSettings is the process-wide alerting configuration. Persisted as a
// single row; defaults apply until the first explicit update.
type AlertSettings struct {
	MedicationExpiryWarningDays   int       `json:"medicationExpiryWarningDays" db:"medication_expiry_warning_days"`
	PrescriptionExpiryWarningDays int       `json:"prescriptionExpiryWarningDays" db:"prescription_expiry_warning_days"`
	StockExpiryWarningDays        int       `json:"stockExpiryWarningDays" db:"stock_expiry_warning_days"`
	NotificationTime              string    `json:"notificationTime" db:"notification_time"`
	EmailNotificationsEnabled     bool      `json:"emailNotificationsEnabled" db:"email_notifications_enabled"`
	SmsNotificationsEnabled       bool      `json:"smsNotificationsEnabled" db:"sms_notifications_enabled"`
	UpdatedAt                     time.Time `json:"updatedAt" db:"updated_at"`
}

// AlertSettingsUpdate is the PUT payload. Nil fields keep their stored value;
// the update as a whole is rejected if any provided field is invalid.
type AlertSettingsUpdate struct {
	MedicationExpiryWarningDays   *int    `json:"medicationExpiryWarningDays"`
	PrescriptionExpiryWarningDays *int    `json:"prescriptionExpiryWarningDays"`
	StockExpiryWarningDays        *int    `json:"stockExpiryWarningDays"`
	NotificationTime              *string `json:"notificationTime"`
	EmailNotificationsEnabled     *bool   `json:"emailNotificationsEnabled"`
	SmsNotificationsEnabled       *bool   `json:"smsNotificationsEnabled"`
}

// DefaultAlertSettings returns the documented defaults.
func DefaultAlertSettings() *AlertSettings {
	return &AlertSettings{
		MedicationExpiryWarningDays:   3,
		PrescriptionExpiryWarningDays: 7,
		StockExpiryWarningDays:        90,
		NotificationTime:              "09:00",
		EmailNotificationsEnabled:     true,
		SmsNotificationsEnabled:       false,
	}
}
