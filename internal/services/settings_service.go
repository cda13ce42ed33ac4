package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pharmatrack/internal/alerting"
	"pharmatrack/internal/caching"
	"pharmatrack/internal/models"
	"pharmatrack/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// Documented bounds for the warning-day settings.
const (
	minExpiryWarningDays      = 1
	maxExpiryWarningDays      = 30
	minStockExpiryWarningDays = 30
	maxStockExpiryWarningDays = 365
)

const settingsCacheTTL = time.Hour

// SettingsService resolves the process-wide alert settings: defaults until
// first configured, validate-then-replace updates, unconditional reset.
type SettingsService interface {
	Get(ctx context.Context) (*models.AlertSettings, error)
	Update(ctx context.Context, update *models.AlertSettingsUpdate) (*models.AlertSettings, error)
	Reset(ctx context.Context) (*models.AlertSettings, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	cacheService caching.CacheService
}

func NewSettingsService(settingsRepo repositories.SettingsRepository, cacheService caching.CacheService) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		cacheService: cacheService,
	}
}

func (s *settingsService) Get(ctx context.Context) (*models.AlertSettings, error) {
	if cached, err := s.cacheService.GetAlertSettings(ctx); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error reading alert settings: %v", err)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Never configured: defaults apply without writing a row.
			return models.DefaultAlertSettings(), nil
		}
		return nil, err
	}

	if cacheErr := s.cacheService.SetAlertSettings(ctx, settings, settingsCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache alert settings: %v", cacheErr)
	}
	return settings, nil
}

// Update is all-or-nothing: when any provided field is out of bounds the
// stored settings stay untouched and the error names every invalid field.
func (s *settingsService) Update(ctx context.Context, update *models.AlertSettingsUpdate) (*models.AlertSettings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	merged := *current
	fields := map[string]string{}

	if update.MedicationExpiryWarningDays != nil {
		if v := *update.MedicationExpiryWarningDays; v < minExpiryWarningDays || v > maxExpiryWarningDays {
			fields["medicationExpiryWarningDays"] = fmt.Sprintf("must be between %d and %d", minExpiryWarningDays, maxExpiryWarningDays)
		} else {
			merged.MedicationExpiryWarningDays = v
		}
	}
	if update.PrescriptionExpiryWarningDays != nil {
		if v := *update.PrescriptionExpiryWarningDays; v < minExpiryWarningDays || v > maxExpiryWarningDays {
			fields["prescriptionExpiryWarningDays"] = fmt.Sprintf("must be between %d and %d", minExpiryWarningDays, maxExpiryWarningDays)
		} else {
			merged.PrescriptionExpiryWarningDays = v
		}
	}
	if update.StockExpiryWarningDays != nil {
		if v := *update.StockExpiryWarningDays; v < minStockExpiryWarningDays || v > maxStockExpiryWarningDays {
			fields["stockExpiryWarningDays"] = fmt.Sprintf("must be between %d and %d", minStockExpiryWarningDays, maxStockExpiryWarningDays)
		} else {
			merged.StockExpiryWarningDays = v
		}
	}
	if update.NotificationTime != nil {
		if _, err := time.Parse("15:04", *update.NotificationTime); err != nil {
			fields["notificationTime"] = "must be in HH:MM format"
		} else {
			merged.NotificationTime = *update.NotificationTime
		}
	}
	if update.EmailNotificationsEnabled != nil {
		merged.EmailNotificationsEnabled = *update.EmailNotificationsEnabled
	}
	if update.SmsNotificationsEnabled != nil {
		merged.SmsNotificationsEnabled = *update.SmsNotificationsEnabled
	}

	if len(fields) > 0 {
		return nil, &alerting.ValidationError{Fields: fields}
	}

	if err := s.settingsRepo.Upsert(ctx, &merged); err != nil {
		return nil, err
	}
	if cacheErr := s.cacheService.DeleteAlertSettings(ctx); cacheErr != nil {
		log.Printf("Failed to invalidate settings cache: %v", cacheErr)
	}

	merged.UpdatedAt = time.Now()
	return &merged, nil
}

func (s *settingsService) Reset(ctx context.Context) (*models.AlertSettings, error) {
	defaults := models.DefaultAlertSettings()
	if err := s.settingsRepo.Upsert(ctx, defaults); err != nil {
		return nil, err
	}
	if cacheErr := s.cacheService.DeleteAlertSettings(ctx); cacheErr != nil {
		log.Printf("Failed to invalidate settings cache: %v", cacheErr)
	}

	defaults.UpdatedAt = time.Now()
	return defaults, nil
}
