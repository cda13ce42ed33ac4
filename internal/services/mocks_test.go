package services

import (
	"context"
	"time"

	"pharmatrack/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories and collaborators shared by the service tests.

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Create(ctx context.Context, stock *models.Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStockRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Stock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stock), args.Error(1)
}

func (m *MockStockRepository) Update(ctx context.Context, stock *models.Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockRepository) ListAll(ctx context.Context) ([]*models.Stock, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) List(ctx context.Context, limit, offset int) ([]*models.Stock, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStockRepository) ListExpiringWithin(ctx context.Context, days int) ([]*models.Stock, error) {
	args := m.Called(ctx, days)
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) ListExpired(ctx context.Context) ([]*models.Stock, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) ListBelowMinimum(ctx context.Context) ([]*models.Stock, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}

type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Create(ctx context.Context, movement *models.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) ListByStock(ctx context.Context, stockID uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	args := m.Called(ctx, stockID, limit, offset)
	return args.Get(0).([]*models.StockMovement), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

func (m *MockPatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPatientRepository) List(ctx context.Context, limit, offset int) ([]*models.Patient, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Patient), args.Error(1)
}

type MockMedicationRepository struct {
	mock.Mock
}

func (m *MockMedicationRepository) Create(ctx context.Context, medication *models.Medication) error {
	args := m.Called(ctx, medication)
	return args.Error(0)
}

func (m *MockMedicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Medication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Medication), args.Error(1)
}

func (m *MockMedicationRepository) Update(ctx context.Context, medication *models.Medication) error {
	args := m.Called(ctx, medication)
	return args.Error(0)
}

func (m *MockMedicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMedicationRepository) List(ctx context.Context, limit, offset int) ([]*models.Medication, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Medication), args.Error(1)
}

func (m *MockMedicationRepository) ListAll(ctx context.Context) ([]*models.Medication, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Medication), args.Error(1)
}

func (m *MockMedicationRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*models.Medication, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).([]*models.Medication), args.Error(1)
}

func (m *MockMedicationRepository) ListByStatus(ctx context.Context, status models.MedicationStatus) ([]*models.Medication, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*models.Medication), args.Error(1)
}

func (m *MockMedicationRepository) ListActive(ctx context.Context) ([]*models.Medication, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Medication), args.Error(1)
}

type MockPrescriptionRepository struct {
	mock.Mock
}

func (m *MockPrescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	args := m.Called(ctx, prescription)
	return args.Error(0)
}

func (m *MockPrescriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Prescription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prescription), args.Error(1)
}

func (m *MockPrescriptionRepository) GetByNumber(ctx context.Context, number string) (*models.Prescription, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prescription), args.Error(1)
}

func (m *MockPrescriptionRepository) Update(ctx context.Context, prescription *models.Prescription) error {
	args := m.Called(ctx, prescription)
	return args.Error(0)
}

func (m *MockPrescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPrescriptionRepository) List(ctx context.Context, limit, offset int) ([]*models.Prescription, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Prescription), args.Error(1)
}

func (m *MockPrescriptionRepository) ListByStatus(ctx context.Context, status models.PrescriptionStatus) ([]*models.Prescription, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*models.Prescription), args.Error(1)
}

func (m *MockPrescriptionRepository) ListActive(ctx context.Context) ([]*models.Prescription, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Prescription), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) List(ctx context.Context, limit, offset int) ([]*models.Notification, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByStatus(ctx context.Context, status models.NotificationStatus) ([]*models.Notification, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) CountByStatus(ctx context.Context, status models.NotificationStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) CountCreatedOnDay(ctx context.Context, entityID uuid.UUID, typ models.NotificationType, day time.Time) (int, error) {
	args := m.Called(ctx, entityID, typ, day)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, reason *string, sentAt *time.Time) error {
	args := m.Called(ctx, id, status, reason, sentAt)
	return args.Error(0)
}

func (m *MockNotificationRepository) IncrementRetry(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) TopPatientsByCount(ctx context.Context, limit int) ([]*models.PatientNotificationCount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*models.PatientNotificationCount), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*models.AlertSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AlertSettings), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, settings *models.AlertSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockCacheService is a pass-through cache double: every read misses and every
// write succeeds, so the services under test always hit their repositories.
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetAlertSettings(ctx context.Context) (*models.AlertSettings, error) {
	return nil, nil
}

func (m *MockCacheService) SetAlertSettings(ctx context.Context, settings *models.AlertSettings, ttl time.Duration) error {
	return nil
}

func (m *MockCacheService) DeleteAlertSettings(ctx context.Context) error {
	return nil
}

func (m *MockCacheService) GetStockSummary(ctx context.Context) (*models.StockSummary, error) {
	return nil, nil
}

func (m *MockCacheService) SetStockSummary(ctx context.Context, summary *models.StockSummary, ttl time.Duration) error {
	return nil
}

func (m *MockCacheService) DeleteStockSummary(ctx context.Context) error {
	return nil
}

func (m *MockCacheService) GetNotificationCounts(ctx context.Context) (*models.NotificationCounts, error) {
	return nil, nil
}

func (m *MockCacheService) SetNotificationCounts(ctx context.Context, counts *models.NotificationCounts, ttl time.Duration) error {
	return nil
}

func (m *MockCacheService) DeleteNotificationCounts(ctx context.Context) error {
	return nil
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	return nil
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, channel models.NotificationChannel, recipient, subject, message string) error {
	args := m.Called(ctx, channel, recipient, subject, message)
	return args.Error(0)
}
