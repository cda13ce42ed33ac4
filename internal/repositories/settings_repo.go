package repositories

import (
	"context"

	"pharmatrack/internal/models"
)

// SettingsRepository persists the singleton alert settings row. Get returns
// pgx.ErrNoRows when nothing was ever written; the service layer substitutes
// defaults.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.AlertSettings, error)
	Upsert(ctx context.Context, settings *models.AlertSettings) error
}

type settingsRepo struct {
	db DB
}

func NewSettingsRepository(db DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context) (*models.AlertSettings, error) {
	settings := &models.AlertSettings{}
	query := `
		SELECT medication_expiry_warning_days, prescription_expiry_warning_days, stock_expiry_warning_days,
		       notification_time, email_notifications_enabled, sms_notifications_enabled, updated_at
		FROM alert_settings
		WHERE id = 1
	`
	err := r.db.QueryRow(ctx, query).Scan(
		&settings.MedicationExpiryWarningDays,
		&settings.PrescriptionExpiryWarningDays,
		&settings.StockExpiryWarningDays,
		&settings.NotificationTime,
		&settings.EmailNotificationsEnabled,
		&settings.SmsNotificationsEnabled,
		&settings.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Upsert replaces the singleton row in one statement so concurrent updates
// serialize on the row lock.
func (r *settingsRepo) Upsert(ctx context.Context, settings *models.AlertSettings) error {
	query := `
		INSERT INTO alert_settings (id, medication_expiry_warning_days, prescription_expiry_warning_days,
			stock_expiry_warning_days, notification_time, email_notifications_enabled, sms_notifications_enabled, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO UPDATE SET
			medication_expiry_warning_days = EXCLUDED.medication_expiry_warning_days,
			prescription_expiry_warning_days = EXCLUDED.prescription_expiry_warning_days,
			stock_expiry_warning_days = EXCLUDED.stock_expiry_warning_days,
			notification_time = EXCLUDED.notification_time,
			email_notifications_enabled = EXCLUDED.email_notifications_enabled,
			sms_notifications_enabled = EXCLUDED.sms_notifications_enabled,
			updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query,
		settings.MedicationExpiryWarningDays,
		settings.PrescriptionExpiryWarningDays,
		settings.StockExpiryWarningDays,
		settings.NotificationTime,
		settings.EmailNotificationsEnabled,
		settings.SmsNotificationsEnabled,
	)
	return err
}
