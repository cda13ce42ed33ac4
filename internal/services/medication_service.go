package services

import (
	"context"
	"time"

	"pharmatrack/internal/alerting"
	"pharmatrack/internal/models"
	"pharmatrack/internal/repositories"

	"github.com/google/uuid"
)

type MedicationSummary struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	EndingSoon   int `json:"endingSoon"`
	Ended        int `json:"ended"`
	Discontinued int `json:"discontinued"`
}

type MedicationService interface {
	Create(ctx context.Context, medication *models.Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MedicationView, error)
	Update(ctx context.Context, medication *models.Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.MedicationView, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*models.MedicationView, error)
	ListByStatus(ctx context.Context, status models.MedicationStatus) ([]*models.MedicationView, error)
	RefillNeeded(ctx context.Context) ([]*models.MedicationView, error)
	Summary(ctx context.Context) (*MedicationSummary, error)
}

type medicationService struct {
	medicationRepo repositories.MedicationRepository
	patientRepo    repositories.PatientRepository
	productRepo    repositories.ProductRepository
	settingsSvc    SettingsService
}

func NewMedicationService(medicationRepo repositories.MedicationRepository, patientRepo repositories.PatientRepository,
	productRepo repositories.ProductRepository, settingsSvc SettingsService) MedicationService {
	return &medicationService{
		medicationRepo: medicationRepo,
		patientRepo:    patientRepo,
		productRepo:    productRepo,
		settingsSvc:    settingsSvc,
	}
}

func (s *medicationService) validate(m *models.Medication) error {
	fields := map[string]string{}
	if !models.ValidMedicationFrequency(m.Frequency) {
		fields["frequency"] = "unknown frequency"
	}
	if m.Status != "" && !models.ValidMedicationStatus(m.Status) {
		fields["status"] = "unknown status"
	}
	if m.DosageAmount <= 0 {
		fields["dosageAmount"] = "must be positive"
	}
	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		fields["endDate"] = "must not precede startDate"
	}
	if len(fields) > 0 {
		return &alerting.ValidationError{Fields: fields}
	}
	return nil
}

func (s *medicationService) Create(ctx context.Context, medication *models.Medication) error {
	if err := s.validate(medication); err != nil {
		return err
	}
	if _, err := s.patientRepo.GetByID(ctx, medication.PatientID); err != nil {
		return err
	}
	medication.ID = uuid.New()
	if medication.Status == "" {
		medication.Status = models.MedicationActive
	}
	return s.medicationRepo.Create(ctx, medication)
}

func (s *medicationService) GetByID(ctx context.Context, id uuid.UUID) (*models.MedicationView, error) {
	medication, err := s.medicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, medication, time.Now()), nil
}

func (s *medicationService) Update(ctx context.Context, medication *models.Medication) error {
	if err := s.validate(medication); err != nil {
		return err
	}
	return s.medicationRepo.Update(ctx, medication)
}

func (s *medicationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.medicationRepo.Delete(ctx, id)
}

func (s *medicationService) List(ctx context.Context, limit, offset int) ([]*models.MedicationView, error) {
	medications, err := s.medicationRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, medications), nil
}

func (s *medicationService) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*models.MedicationView, error) {
	medications, err := s.medicationRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, medications), nil
}

func (s *medicationService) ListByStatus(ctx context.Context, status models.MedicationStatus) ([]*models.MedicationView, error) {
	if !models.ValidMedicationStatus(status) {
		return nil, &alerting.ValidationError{Fields: map[string]string{"status": "unknown status"}}
	}
	medications, err := s.medicationRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, medications), nil
}

// RefillNeeded lists active courses whose end date falls inside the configured
// medication warning window, including courses already past their end date but
// not yet closed out by the prescriber.
func (s *medicationService) RefillNeeded(ctx context.Context) ([]*models.MedicationView, error) {
	settings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	medications, err := s.medicationRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var needing []*models.MedicationView
	for _, medication := range medications {
		days, _, err := alerting.MedicationRemaining(medication, now)
		if err != nil {
			continue
		}
		if days <= settings.MedicationExpiryWarningDays {
			needing = append(needing, s.toView(ctx, medication, now))
		}
	}
	return needing, nil
}

func (s *medicationService) Summary(ctx context.Context) (*MedicationSummary, error) {
	settings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	medications, err := s.medicationRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	summary := &MedicationSummary{Total: len(medications)}
	for _, medication := range medications {
		switch medication.Status {
		case models.MedicationActive:
			summary.Active++
			if days, expired, err := alerting.MedicationRemaining(medication, now); err == nil {
				if expired {
					summary.Ended++
				} else if days <= settings.MedicationExpiryWarningDays {
					summary.EndingSoon++
				}
			}
		case models.MedicationDiscontinued:
			summary.Discontinued++
		case models.MedicationCompleted:
			summary.Ended++
		}
	}
	return summary, nil
}

func (s *medicationService) toView(ctx context.Context, medication *models.Medication, now time.Time) *models.MedicationView {
	view := &models.MedicationView{Medication: *medication}
	if days, expired, err := alerting.MedicationRemaining(medication, now); err == nil {
		view.DaysRemaining = &days
		view.Expired = expired
	}
	if patient, err := s.patientRepo.GetByID(ctx, medication.PatientID); err == nil {
		view.PatientName = patient.FullName()
	}
	if product, err := s.productRepo.GetByID(ctx, medication.ProductID); err == nil {
		view.ProductName = product.Name
	}
	return view
}

func (s *medicationService) toViews(ctx context.Context, medications []*models.Medication) []*models.MedicationView {
	now := time.Now()
	views := make([]*models.MedicationView, 0, len(medications))
	for _, medication := range medications {
		views = append(views, s.toView(ctx, medication, now))
	}
	return views
}
