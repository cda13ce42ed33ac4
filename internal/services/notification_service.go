package services

import (
	"context"
	"log"
	"time"

	"pharmatrack/internal/alerting"
	"pharmatrack/internal/caching"
	"pharmatrack/internal/models"
	"pharmatrack/internal/notifier"
	"pharmatrack/internal/repositories"

	"github.com/google/uuid"
)

const notificationCountsCacheTTL = time.Minute

type NotificationService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	List(ctx context.Context, limit, offset int) ([]*models.Notification, error)
	ListByStatus(ctx context.Context, status models.NotificationStatus) ([]*models.Notification, error)
	Counts(ctx context.Context) (*models.NotificationCounts, error)
	Retry(ctx context.Context, id uuid.UUID) (*models.Notification, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	notifier         notifier.Notifier
	cacheService     caching.CacheService
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, n notifier.Notifier, cacheService caching.CacheService) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		notifier:         n,
		cacheService:     cacheService,
	}
}

func (s *notificationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	return s.notificationRepo.GetByID(ctx, id)
}

func (s *notificationService) List(ctx context.Context, limit, offset int) ([]*models.Notification, error) {
	return s.notificationRepo.List(ctx, limit, offset)
}

func (s *notificationService) ListByStatus(ctx context.Context, status models.NotificationStatus) ([]*models.Notification, error) {
	if !models.ValidNotificationStatus(status) {
		return nil, &alerting.ValidationError{Fields: map[string]string{"status": "unknown notification status"}}
	}
	return s.notificationRepo.ListByStatus(ctx, status)
}

func (s *notificationService) Counts(ctx context.Context) (*models.NotificationCounts, error) {
	if cached, err := s.cacheService.GetNotificationCounts(ctx); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error reading notification counts: %v", err)
	}

	total, err := s.notificationRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	sent, err := s.notificationRepo.CountByStatus(ctx, models.NotificationSent)
	if err != nil {
		return nil, err
	}
	delivered, err := s.notificationRepo.CountByStatus(ctx, models.NotificationDelivered)
	if err != nil {
		return nil, err
	}
	failed, err := s.notificationRepo.CountByStatus(ctx, models.NotificationFailed)
	if err != nil {
		return nil, err
	}

	counts := &models.NotificationCounts{
		Total:      total,
		Successful: sent + delivered,
		Failed:     failed,
	}
	if cacheErr := s.cacheService.SetNotificationCounts(ctx, counts, notificationCountsCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache notification counts: %v", cacheErr)
	}
	return counts, nil
}

// Retry re-dispatches a failed notification. Only FAILED records are eligible;
// any other status yields an InvalidStateTransitionError without touching the
// record. A failed re-send leaves the record FAILED with the new error and a
// bumped retry count.
func (s *notificationService) Retry(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification.Status != models.NotificationFailed {
		return nil, &alerting.InvalidStateTransitionError{
			Current: string(notification.Status),
			Action:  "retry",
		}
	}

	if err := s.notificationRepo.IncrementRetry(ctx, id); err != nil {
		return nil, err
	}

	sendErr := s.notifier.Send(ctx, notification.Channel, notification.Recipient, notification.Subject, notification.Message)
	if sendErr != nil {
		reason := sendErr.Error()
		if updateErr := s.notificationRepo.UpdateStatus(ctx, id, models.NotificationFailed, &reason, nil); updateErr != nil {
			return nil, updateErr
		}
	} else {
		now := time.Now()
		if updateErr := s.notificationRepo.UpdateStatus(ctx, id, models.NotificationSent, nil, &now); updateErr != nil {
			return nil, updateErr
		}
	}

	s.invalidateCounts(ctx)
	return s.notificationRepo.GetByID(ctx, id)
}

func (s *notificationService) invalidateCounts(ctx context.Context) {
	if err := s.cacheService.DeleteNotificationCounts(ctx); err != nil {
		log.Printf("Failed to invalidate notification counts cache: %v", err)
	}
}
