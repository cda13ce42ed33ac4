package repositories

import (
	"context"

	"pharmatrack/internal/models"

	"github.com/google/uuid"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Patient, error)
}

type patientRepo struct {
	db DB
}

func NewPatientRepository(db DB) PatientRepository {
	return &patientRepo{db: db}
}

func (r *patientRepo) Create(ctx context.Context, patient *models.Patient) error {
	query := `
		INSERT INTO patients (id, first_name, last_name, email, phone, birth_date, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, patient.ID, patient.FirstName, patient.LastName,
		patient.Email, patient.Phone, patient.BirthDate, patient.Address)
	return err
}

func (r *patientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	patient := &models.Patient{}
	query := `
		SELECT id, first_name, last_name, email, phone, birth_date, address, created_at, updated_at
		FROM patients
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&patient.ID, &patient.FirstName, &patient.LastName,
		&patient.Email, &patient.Phone, &patient.BirthDate, &patient.Address, &patient.CreatedAt, &patient.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return patient, nil
}

func (r *patientRepo) Update(ctx context.Context, patient *models.Patient) error {
	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, email = $3, phone = $4, birth_date = $5, address = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, patient.FirstName, patient.LastName, patient.Email,
		patient.Phone, patient.BirthDate, patient.Address, patient.ID)
	return err
}

func (r *patientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM patients WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *patientRepo) List(ctx context.Context, limit, offset int) ([]*models.Patient, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, birth_date, address, created_at, updated_at
		FROM patients
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []*models.Patient
	for rows.Next() {
		patient := &models.Patient{}
		if err := rows.Scan(&patient.ID, &patient.FirstName, &patient.LastName, &patient.Email,
			&patient.Phone, &patient.BirthDate, &patient.Address, &patient.CreatedAt, &patient.UpdatedAt); err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}
	return patients, rows.Err()
}
