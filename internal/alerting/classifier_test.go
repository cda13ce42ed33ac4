package alerting

import (
	"testing"
	"time"

	"pharmatrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestClassifyStock_Precedence(t *testing.T) {
	ref := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	warningDays := 90

	tests := []struct {
		name     string
		stock    models.Stock
		expected StockStatus
	}{
		{
			name:     "expired batch wins over everything",
			stock:    models.Stock{Quantity: 0, MinimumStockLevel: intPtr(10), ExpiryDate: ref.AddDate(0, 0, -1)},
			expected: StockExpired,
		},
		{
			name:     "near expiry inside warning window",
			stock:    models.Stock{Quantity: 500, ExpiryDate: ref.AddDate(0, 0, 60)},
			expected: StockNearExpiry,
		},
		{
			name:     "near expiry inside critical window",
			stock:    models.Stock{Quantity: 500, ExpiryDate: ref.AddDate(0, 0, 10)},
			expected: StockNearExpiry,
		},
		{
			name:     "out of stock beats low stock when both hold",
			stock:    models.Stock{Quantity: 0, MinimumStockLevel: intPtr(10), ExpiryDate: ref.AddDate(0, 0, 200)},
			expected: StockOutOfStock,
		},
		{
			name:     "low stock when below minimum and expiry far out",
			stock:    models.Stock{Quantity: 5, MinimumStockLevel: intPtr(10), ExpiryDate: ref.AddDate(0, 0, 200)},
			expected: StockLowStock,
		},
		{
			name:     "no minimum level means low stock never applies",
			stock:    models.Stock{Quantity: 1, ExpiryDate: ref.AddDate(0, 0, 200)},
			expected: StockAvailable,
		},
		{
			name:     "quantity at minimum is not low",
			stock:    models.Stock{Quantity: 10, MinimumStockLevel: intPtr(10), ExpiryDate: ref.AddDate(0, 0, 200)},
			expected: StockAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := ClassifyStock(&tt.stock, warningDays, ref)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestClassifyStock_MissingExpiryDate(t *testing.T) {
	ref := time.Now()
	stock := &models.Stock{Quantity: 5}

	_, err := ClassifyStock(stock, 90, ref)

	var entityErr *InvalidEntityError
	require.ErrorAs(t, err, &entityErr)
	assert.Equal(t, "stock", entityErr.Entity)
	assert.Equal(t, "expiryDate", entityErr.Field)
}

func TestClassifyStock_ShortWarningWindowCapsCriticalBand(t *testing.T) {
	ref := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// With a 10-day warning window the whole band is critical; at 11 days the
	// batch is out of the window entirely.
	inside := &models.Stock{Quantity: 100, ExpiryDate: ref.AddDate(0, 0, 10)}
	outside := &models.Stock{Quantity: 100, ExpiryDate: ref.AddDate(0, 0, 11)}

	status, err := ClassifyStock(inside, 10, ref)
	require.NoError(t, err)
	assert.Equal(t, StockNearExpiry, status)

	status, err = ClassifyStock(outside, 10, ref)
	require.NoError(t, err)
	assert.Equal(t, StockAvailable, status)
}

func TestMedicationRemaining(t *testing.T) {
	ref := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	end := ref.AddDate(0, 0, 2)

	med := &models.Medication{Status: models.MedicationActive, EndDate: &end}
	days, expired, err := MedicationRemaining(med, ref)
	require.NoError(t, err)
	assert.Equal(t, 2, days)
	assert.False(t, expired)

	past := ref.AddDate(0, 0, -3)
	med.EndDate = &past
	days, expired, err = MedicationRemaining(med, ref)
	require.NoError(t, err)
	assert.Equal(t, -3, days)
	assert.True(t, expired)
}

func TestMedicationRemaining_OpenEndedCourse(t *testing.T) {
	med := &models.Medication{Status: models.MedicationActive}

	_, _, err := MedicationRemaining(med, time.Now())

	var entityErr *InvalidEntityError
	require.ErrorAs(t, err, &entityErr)
	assert.Equal(t, "endDate", entityErr.Field)
}

func TestPrescriptionRemaining(t *testing.T) {
	ref := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	p := &models.Prescription{EndDate: ref.AddDate(0, 0, 7)}
	days, expired := PrescriptionRemaining(p, ref)
	assert.Equal(t, 7, days)
	assert.False(t, expired)

	p.EndDate = ref.AddDate(0, 0, -1)
	days, expired = PrescriptionRemaining(p, ref)
	assert.Equal(t, -1, days)
	assert.True(t, expired)
}
