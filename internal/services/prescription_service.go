package services

import (
	"context"
	"errors"
	"time"

	"pharmatrack/internal/alerting"
	"pharmatrack/internal/models"
	"pharmatrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PrescriptionService interface {
	Create(ctx context.Context, prescription *models.Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PrescriptionView, error)
	Update(ctx context.Context, prescription *models.Prescription) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.PrescriptionView, error)
	ListByStatus(ctx context.Context, status models.PrescriptionStatus) ([]*models.PrescriptionView, error)
}

type prescriptionService struct {
	prescriptionRepo repositories.PrescriptionRepository
	patientRepo      repositories.PatientRepository
}

func NewPrescriptionService(prescriptionRepo repositories.PrescriptionRepository, patientRepo repositories.PatientRepository) PrescriptionService {
	return &prescriptionService{
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
	}
}

func (s *prescriptionService) validate(p *models.Prescription) error {
	fields := map[string]string{}
	if p.PrescriptionNumber == "" {
		fields["prescriptionNumber"] = "is required"
	}
	if !models.ValidPrescriptionType(p.Type) {
		fields["type"] = "unknown prescription type"
	}
	if p.Status != "" && !models.ValidPrescriptionStatus(p.Status) {
		fields["status"] = "unknown status"
	}
	if p.DoctorName == "" {
		fields["doctorName"] = "is required"
	}
	if p.EndDate.Before(p.StartDate) {
		fields["endDate"] = "must not precede startDate"
	}
	if p.ValidityDays < 0 {
		fields["validityDays"] = "must not be negative"
	}
	if p.RefillCount < 0 {
		fields["refillCount"] = "must not be negative"
	}
	if len(fields) > 0 {
		return &alerting.ValidationError{Fields: fields}
	}
	return nil
}

func (s *prescriptionService) Create(ctx context.Context, prescription *models.Prescription) error {
	if prescription.Type == "" {
		prescription.Type = models.PrescriptionTypeElectronic
	}
	if err := s.validate(prescription); err != nil {
		return err
	}
	if _, err := s.patientRepo.GetByID(ctx, prescription.PatientID); err != nil {
		return err
	}

	existing, err := s.prescriptionRepo.GetByNumber(ctx, prescription.PrescriptionNumber)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if existing != nil {
		return &alerting.ValidationError{Fields: map[string]string{"prescriptionNumber": "already in use"}}
	}

	prescription.ID = uuid.New()
	if prescription.Status == "" {
		prescription.Status = models.PrescriptionActive
	}
	if prescription.IssueDate.IsZero() {
		prescription.IssueDate = prescription.StartDate
	}
	return s.prescriptionRepo.Create(ctx, prescription)
}

func (s *prescriptionService) GetByID(ctx context.Context, id uuid.UUID) (*models.PrescriptionView, error) {
	prescription, err := s.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, prescription, time.Now()), nil
}

func (s *prescriptionService) Update(ctx context.Context, prescription *models.Prescription) error {
	if err := s.validate(prescription); err != nil {
		return err
	}
	return s.prescriptionRepo.Update(ctx, prescription)
}

func (s *prescriptionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.prescriptionRepo.Delete(ctx, id)
}

func (s *prescriptionService) List(ctx context.Context, limit, offset int) ([]*models.PrescriptionView, error) {
	prescriptions, err := s.prescriptionRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, prescriptions), nil
}

func (s *prescriptionService) ListByStatus(ctx context.Context, status models.PrescriptionStatus) ([]*models.PrescriptionView, error) {
	if !models.ValidPrescriptionStatus(status) {
		return nil, &alerting.ValidationError{Fields: map[string]string{"status": "unknown status"}}
	}
	prescriptions, err := s.prescriptionRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, prescriptions), nil
}

func (s *prescriptionService) toView(ctx context.Context, prescription *models.Prescription, now time.Time) *models.PrescriptionView {
	days, expired := alerting.PrescriptionRemaining(prescription, now)
	view := &models.PrescriptionView{
		Prescription:  *prescription,
		DaysRemaining: days,
		Expired:       expired,
	}
	if patient, err := s.patientRepo.GetByID(ctx, prescription.PatientID); err == nil {
		view.PatientName = patient.FullName()
	}
	return view
}

func (s *prescriptionService) toViews(ctx context.Context, prescriptions []*models.Prescription) []*models.PrescriptionView {
	now := time.Now()
	views := make([]*models.PrescriptionView, 0, len(prescriptions))
	for _, prescription := range prescriptions {
		views = append(views, s.toView(ctx, prescription, now))
	}
	return views
}
