package reports

import (
	"context"
	"time"

	"pharmatrack/internal/models"
	"pharmatrack/internal/repositories"
	"pharmatrack/internal/services"
)

// ReportService aggregates the dashboard numbers from the entity services. The
// heavy lifting (classification, caching) lives in those services; this layer
// only composes them.
type ReportService struct {
	stockSvc         services.StockService
	medicationSvc    services.MedicationService
	notificationSvc  services.NotificationService
	notificationRepo repositories.NotificationRepository
}

// Overview is the reports landing page payload.
type Overview struct {
	Stock         *models.StockSummary        `json:"stock"`
	Medications   *services.MedicationSummary `json:"medications"`
	Notifications *models.NotificationCounts  `json:"notifications"`
	GeneratedAt   time.Time                   `json:"generatedAt"`
}

func NewReportService(stockSvc services.StockService, medicationSvc services.MedicationService,
	notificationSvc services.NotificationService, notificationRepo repositories.NotificationRepository) *ReportService {
	return &ReportService{
		stockSvc:         stockSvc,
		medicationSvc:    medicationSvc,
		notificationSvc:  notificationSvc,
		notificationRepo: notificationRepo,
	}
}

func (s *ReportService) Overview(ctx context.Context) (*Overview, error) {
	stockSummary, err := s.stockSvc.Summary(ctx)
	if err != nil {
		return nil, err
	}
	medicationSummary, err := s.medicationSvc.Summary(ctx)
	if err != nil {
		return nil, err
	}
	notificationCounts, err := s.notificationSvc.Counts(ctx)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Stock:         stockSummary,
		Medications:   medicationSummary,
		Notifications: notificationCounts,
		GeneratedAt:   time.Now().UTC(),
	}, nil
}

// TopPatients returns the patients with the most notifications, aggregated in
// SQL rather than in memory.
func (s *ReportService) TopPatients(ctx context.Context, limit int) ([]*models.PatientNotificationCount, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.notificationRepo.TopPatientsByCount(ctx, limit)
}
