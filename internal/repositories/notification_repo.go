package repositories

import (
	"context"
	"time"

	"pharmatrack/internal/models"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	List(ctx context.Context, limit, offset int) ([]*models.Notification, error)
	ListByStatus(ctx context.Context, status models.NotificationStatus) ([]*models.Notification, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.NotificationStatus) (int, error)
	CountCreatedOnDay(ctx context.Context, entityID uuid.UUID, typ models.NotificationType, day time.Time) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, reason *string, sentAt *time.Time) error
	IncrementRetry(ctx context.Context, id uuid.UUID) error
	TopPatientsByCount(ctx context.Context, limit int) ([]*models.PatientNotificationCount, error)
}

type notificationRepo struct {
	db DB
}

func NewNotificationRepository(db DB) NotificationRepository {
	return &notificationRepo{db: db}
}

const notificationColumns = `id, type, channel, patient_id, entity_id, recipient, subject, message, status, error, retry_count, created_at, sent_at`

func scanNotification(row interface{ Scan(...any) error }) (*models.Notification, error) {
	n := &models.Notification{}
	err := row.Scan(&n.ID, &n.Type, &n.Channel, &n.PatientID, &n.EntityID, &n.Recipient,
		&n.Subject, &n.Message, &n.Status, &n.Error, &n.RetryCount, &n.CreatedAt, &n.SentAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *notificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (id, type, channel, patient_id, entity_id, recipient, subject, message, status, error, retry_count, created_at, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), $12)
	`
	_, err := r.db.Exec(ctx, query, notification.ID, notification.Type, notification.Channel,
		notification.PatientID, notification.EntityID, notification.Recipient, notification.Subject,
		notification.Message, notification.Status, notification.Error, notification.RetryCount,
		notification.SentAt)
	return err
}

func (r *notificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	return scanNotification(r.db.QueryRow(ctx, query, id))
}

func (r *notificationRepo) List(ctx context.Context, limit, offset int) ([]*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryNotifications(ctx, query, limit, offset)
}

func (r *notificationRepo) ListByStatus(ctx context.Context, status models.NotificationStatus) ([]*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE status = $1 ORDER BY created_at DESC`
	return r.queryNotifications(ctx, query, status)
}

func (r *notificationRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`).Scan(&count)
	return count, err
}

func (r *notificationRepo) CountByStatus(ctx context.Context, status models.NotificationStatus) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE status = $1`, status).Scan(&count)
	return count, err
}

// CountCreatedOnDay backs the per-calendar-day dedup check of the alert run.
func (r *notificationRepo) CountCreatedOnDay(ctx context.Context, entityID uuid.UUID, typ models.NotificationType, day time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM notifications
		WHERE entity_id = $1 AND type = $2 AND created_at::date = $3::date
	`
	var count int
	err := r.db.QueryRow(ctx, query, entityID, typ, day).Scan(&count)
	return count, err
}

func (r *notificationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, reason *string, sentAt *time.Time) error {
	query := `
		UPDATE notifications
		SET status = $1, error = $2, sent_at = COALESCE($3, sent_at)
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, status, reason, sentAt, id)
	return err
}

func (r *notificationRepo) IncrementRetry(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE notifications SET retry_count = retry_count + 1 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// TopPatientsByCount ranks patients by how many notifications they received.
// A single aggregation here replaces the dashboard pulling the full
// notification list and reducing it client-side.
func (r *notificationRepo) TopPatientsByCount(ctx context.Context, limit int) ([]*models.PatientNotificationCount, error) {
	query := `
		SELECT n.patient_id, p.first_name || ' ' || p.last_name, COUNT(*) AS total
		FROM notifications n
		JOIN patients p ON p.id = n.patient_id
		WHERE n.patient_id IS NOT NULL
		GROUP BY n.patient_id, p.first_name, p.last_name
		ORDER BY total DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []*models.PatientNotificationCount
	for rows.Next() {
		c := &models.PatientNotificationCount{}
		if err := rows.Scan(&c.PatientID, &c.PatientName, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *notificationRepo) queryNotifications(ctx context.Context, query string, args ...any) ([]*models.Notification, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
