package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"pharmatrack/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB creates a pooled connection for testing
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			connString = "host=localhost port=5432 user=postgres password=postgres dbname=pharmatrack_test sslmode=disable"
		}
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SetupTestPatient creates a test patient for testing
func SetupTestPatient(t *testing.T, db *TestDB) *models.Patient {
	t.Helper()

	email := "test.patient@example.com"
	phone := "+15550009999"
	patient := &models.Patient{
		ID:        uuid.New(),
		FirstName: "Test",
		LastName:  "Patient",
		Email:     &email,
		Phone:     &phone,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	query := `
		INSERT INTO patients (id, first_name, last_name, email, phone, birth_date, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		patient.ID, patient.FirstName, patient.LastName, patient.Email, patient.Phone,
		patient.BirthDate, patient.Address, patient.CreatedAt, patient.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test patient: %v", err)
	}

	return patient
}

// SetupTestProduct creates a test product for testing
func SetupTestProduct(t *testing.T, db *TestDB) *models.Product {
	t.Helper()

	barcode := "123456789"
	description := "Test product description"
	product := &models.Product{
		ID:          uuid.New(),
		Name:        "Test Product",
		Barcode:     &barcode,
		Description: &description,
		CreatedAt:   time.Now(),
	}

	query := `
		INSERT INTO products (id, name, barcode, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		product.ID, product.Name, product.Barcode, product.Description, product.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}

	return product
}

// SetupTestStock creates a stock batch for the given product, expiring
// daysUntilExpiry days from now.
func SetupTestStock(t *testing.T, db *TestDB, productID uuid.UUID, quantity, daysUntilExpiry int) *models.Stock {
	t.Helper()

	batchNum := "BATCH001"
	minLevel := 10
	stock := &models.Stock{
		ID:                uuid.New(),
		ProductID:         productID,
		BatchNumber:       &batchNum,
		Quantity:          quantity,
		MinimumStockLevel: &minLevel,
		ExpiryDate:        time.Now().AddDate(0, 0, daysUntilExpiry),
		CreatedAt:         time.Now(),
		LastUpdated:       time.Now(),
	}

	query := `
		INSERT INTO stocks (id, product_id, batch_number, quantity, minimum_stock_level, expiry_date, created_at, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		stock.ID, stock.ProductID, stock.BatchNumber, stock.Quantity,
		stock.MinimumStockLevel, stock.ExpiryDate, stock.CreatedAt, stock.LastUpdated)
	if err != nil {
		t.Fatalf("Failed to create test stock: %v", err)
	}

	return stock
}

// SetupTestMedication creates an active medication course for the patient,
// ending daysUntilEnd days from now.
func SetupTestMedication(t *testing.T, db *TestDB, patientID, productID uuid.UUID, daysUntilEnd int) *models.Medication {
	t.Helper()

	end := time.Now().AddDate(0, 0, daysUntilEnd)
	medication := &models.Medication{
		ID:           uuid.New(),
		PatientID:    patientID,
		ProductID:    productID,
		DosageAmount: 1,
		DosageUnit:   "tablet",
		Frequency:    models.FrequencyOnceDaily,
		StartDate:    time.Now().AddDate(0, 0, -30),
		EndDate:      &end,
		Status:       models.MedicationActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	query := `
		INSERT INTO medications (id, patient_id, product_id, dosage_amount, dosage_unit, frequency, start_date, end_date, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		medication.ID, medication.PatientID, medication.ProductID, medication.DosageAmount,
		medication.DosageUnit, medication.Frequency, medication.StartDate, medication.EndDate,
		medication.Status, medication.Notes, medication.CreatedAt, medication.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test medication: %v", err)
	}

	return medication
}
