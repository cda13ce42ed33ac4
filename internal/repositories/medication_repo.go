package repositories

import (
	"context"

	"pharmatrack/internal/models"

	"github.com/google/uuid"
)

type MedicationRepository interface {
	Create(ctx context.Context, medication *models.Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Medication, error)
	Update(ctx context.Context, medication *models.Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Medication, error)
	ListAll(ctx context.Context) ([]*models.Medication, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*models.Medication, error)
	ListByStatus(ctx context.Context, status models.MedicationStatus) ([]*models.Medication, error)
	ListActive(ctx context.Context) ([]*models.Medication, error)
}

type medicationRepo struct {
	db DB
}

func NewMedicationRepository(db DB) MedicationRepository {
	return &medicationRepo{db: db}
}

const medicationColumns = `id, patient_id, product_id, dosage_amount, dosage_unit, frequency, start_date, end_date, status, notes, created_at, updated_at`

func scanMedication(row interface{ Scan(...any) error }) (*models.Medication, error) {
	m := &models.Medication{}
	err := row.Scan(&m.ID, &m.PatientID, &m.ProductID, &m.DosageAmount, &m.DosageUnit,
		&m.Frequency, &m.StartDate, &m.EndDate, &m.Status, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *medicationRepo) Create(ctx context.Context, medication *models.Medication) error {
	query := `
		INSERT INTO medications (id, patient_id, product_id, dosage_amount, dosage_unit, frequency, start_date, end_date, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, medication.ID, medication.PatientID, medication.ProductID,
		medication.DosageAmount, medication.DosageUnit, medication.Frequency,
		medication.StartDate, medication.EndDate, medication.Status, medication.Notes)
	return err
}

func (r *medicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Medication, error) {
	query := `SELECT ` + medicationColumns + ` FROM medications WHERE id = $1`
	return scanMedication(r.db.QueryRow(ctx, query, id))
}

func (r *medicationRepo) Update(ctx context.Context, medication *models.Medication) error {
	query := `
		UPDATE medications
		SET patient_id = $1, product_id = $2, dosage_amount = $3, dosage_unit = $4, frequency = $5,
		    start_date = $6, end_date = $7, status = $8, notes = $9, updated_at = NOW()
		WHERE id = $10
	`
	_, err := r.db.Exec(ctx, query, medication.PatientID, medication.ProductID, medication.DosageAmount,
		medication.DosageUnit, medication.Frequency, medication.StartDate, medication.EndDate,
		medication.Status, medication.Notes, medication.ID)
	return err
}

func (r *medicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM medications WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *medicationRepo) List(ctx context.Context, limit, offset int) ([]*models.Medication, error) {
	query := `SELECT ` + medicationColumns + ` FROM medications ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryMedications(ctx, query, limit, offset)
}

// ListAll backs the summary aggregation, which walks every course.
func (r *medicationRepo) ListAll(ctx context.Context) ([]*models.Medication, error) {
	query := `SELECT ` + medicationColumns + ` FROM medications ORDER BY created_at DESC`
	return r.queryMedications(ctx, query)
}

func (r *medicationRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*models.Medication, error) {
	query := `SELECT ` + medicationColumns + ` FROM medications WHERE patient_id = $1 ORDER BY created_at DESC`
	return r.queryMedications(ctx, query, patientID)
}

func (r *medicationRepo) ListByStatus(ctx context.Context, status models.MedicationStatus) ([]*models.Medication, error) {
	query := `SELECT ` + medicationColumns + ` FROM medications WHERE status = $1 ORDER BY created_at DESC`
	return r.queryMedications(ctx, query, status)
}

func (r *medicationRepo) ListActive(ctx context.Context) ([]*models.Medication, error) {
	return r.ListByStatus(ctx, models.MedicationActive)
}

func (r *medicationRepo) queryMedications(ctx context.Context, query string, args ...any) ([]*models.Medication, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var medications []*models.Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		medications = append(medications, m)
	}
	return medications, rows.Err()
}
