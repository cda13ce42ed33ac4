package repositories

import (
	"context"

	"pharmatrack/internal/models"

	"github.com/google/uuid"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *models.Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Prescription, error)
	GetByNumber(ctx context.Context, number string) (*models.Prescription, error)
	Update(ctx context.Context, prescription *models.Prescription) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Prescription, error)
	ListByStatus(ctx context.Context, status models.PrescriptionStatus) ([]*models.Prescription, error)
	ListActive(ctx context.Context) ([]*models.Prescription, error)
}

type prescriptionRepo struct {
	db DB
}

func NewPrescriptionRepository(db DB) PrescriptionRepository {
	return &prescriptionRepo{db: db}
}

const prescriptionColumns = `id, patient_id, prescription_number, type, issue_date, start_date, end_date, validity_days, doctor_name, doctor_specialty, institution, diagnosis, notes, refill_count, status, created_at, updated_at`

func scanPrescription(row interface{ Scan(...any) error }) (*models.Prescription, error) {
	p := &models.Prescription{}
	err := row.Scan(&p.ID, &p.PatientID, &p.PrescriptionNumber, &p.Type, &p.IssueDate,
		&p.StartDate, &p.EndDate, &p.ValidityDays, &p.DoctorName, &p.DoctorSpecialty,
		&p.Institution, &p.Diagnosis, &p.Notes, &p.RefillCount, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *prescriptionRepo) Create(ctx context.Context, prescription *models.Prescription) error {
	query := `
		INSERT INTO prescriptions (id, patient_id, prescription_number, type, issue_date, start_date, end_date,
			validity_days, doctor_name, doctor_specialty, institution, diagnosis, notes, refill_count, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, prescription.ID, prescription.PatientID, prescription.PrescriptionNumber,
		prescription.Type, prescription.IssueDate, prescription.StartDate, prescription.EndDate,
		prescription.ValidityDays, prescription.DoctorName, prescription.DoctorSpecialty,
		prescription.Institution, prescription.Diagnosis, prescription.Notes,
		prescription.RefillCount, prescription.Status)
	return err
}

func (r *prescriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE id = $1`
	return scanPrescription(r.db.QueryRow(ctx, query, id))
}

func (r *prescriptionRepo) GetByNumber(ctx context.Context, number string) (*models.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE prescription_number = $1`
	return scanPrescription(r.db.QueryRow(ctx, query, number))
}

func (r *prescriptionRepo) Update(ctx context.Context, prescription *models.Prescription) error {
	query := `
		UPDATE prescriptions
		SET type = $1, issue_date = $2, start_date = $3, end_date = $4, validity_days = $5,
		    doctor_name = $6, doctor_specialty = $7, institution = $8, diagnosis = $9, notes = $10,
		    refill_count = $11, status = $12, updated_at = NOW()
		WHERE id = $13
	`
	_, err := r.db.Exec(ctx, query, prescription.Type, prescription.IssueDate, prescription.StartDate,
		prescription.EndDate, prescription.ValidityDays, prescription.DoctorName, prescription.DoctorSpecialty,
		prescription.Institution, prescription.Diagnosis, prescription.Notes, prescription.RefillCount,
		prescription.Status, prescription.ID)
	return err
}

func (r *prescriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM prescriptions WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *prescriptionRepo) List(ctx context.Context, limit, offset int) ([]*models.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryPrescriptions(ctx, query, limit, offset)
}

func (r *prescriptionRepo) ListByStatus(ctx context.Context, status models.PrescriptionStatus) ([]*models.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE status = $1 ORDER BY end_date`
	return r.queryPrescriptions(ctx, query, status)
}

func (r *prescriptionRepo) ListActive(ctx context.Context) ([]*models.Prescription, error) {
	return r.ListByStatus(ctx, models.PrescriptionActive)
}

func (r *prescriptionRepo) queryPrescriptions(ctx context.Context, query string, args ...any) ([]*models.Prescription, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prescriptions []*models.Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, rows.Err()
}
