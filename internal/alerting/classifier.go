package alerting

import (
	"time"

	"pharmatrack/internal/models"
)

// StockStatus is the badge value for a stock batch.
type StockStatus string

const (
	StockExpired    StockStatus = "EXPIRED"
	StockNearExpiry StockStatus = "NEAR_EXPIRY"
	StockOutOfStock StockStatus = "OUT_OF_STOCK"
	StockLowStock   StockStatus = "LOW_STOCK"
	StockAvailable  StockStatus = "AVAILABLE"
)

// stockCriticalDays is the red-badge sub-band inside the stock expiry warning
// window: batches expiring within a month render as critical on the dashboard.
const stockCriticalDays = 30

// StockThresholds builds the window thresholds for a configured stock warning
// period. The critical band is capped at the warning period itself so a short
// window never inverts the band order.
func StockThresholds(warningDays int) Thresholds {
	critical := stockCriticalDays
	if warningDays < critical {
		critical = warningDays
	}
	return Thresholds{Critical: critical, Warning: warningDays}
}

// ClassifyStock assigns a batch its badge. First match wins: expiry concerns
// take precedence over quantity concerns, and a fully depleted batch is
// OUT_OF_STOCK even when it is also below its minimum level. A batch without
// a minimum level simply never classifies as LOW_STOCK.
func ClassifyStock(s *models.Stock, warningDays int, ref time.Time) (StockStatus, error) {
	if s.ExpiryDate.IsZero() {
		return "", &InvalidEntityError{Entity: "stock", Field: "expiryDate"}
	}

	days := DaysUntil(s.ExpiryDate, ref)
	switch ClassifyWindow(days, StockThresholds(warningDays)) {
	case WindowExpired:
		return StockExpired, nil
	case WindowCritical, WindowWarning:
		return StockNearExpiry, nil
	}

	if s.Quantity == 0 {
		return StockOutOfStock, nil
	}
	if s.MinimumStockLevel != nil && s.Quantity < *s.MinimumStockLevel {
		return StockLowStock, nil
	}
	return StockAvailable, nil
}

// ValidStockStatus reports whether s names one of the badge values. Used by
// the status filter endpoint.
func ValidStockStatus(s StockStatus) bool {
	switch s {
	case StockExpired, StockNearExpiry, StockOutOfStock, StockLowStock, StockAvailable:
		return true
	}
	return false
}

// MedicationRemaining derives the "days remaining" badge for a course. It never
// touches the course status field, which is owned by the prescriber. Courses
// without an end date carry no badge and yield an InvalidEntityError.
func MedicationRemaining(m *models.Medication, ref time.Time) (days int, expired bool, err error) {
	if m.EndDate == nil {
		return 0, false, &InvalidEntityError{Entity: "medication", Field: "endDate"}
	}
	days = DaysUntil(*m.EndDate, ref)
	return days, days < 0, nil
}

// PrescriptionRemaining derives the day badge for a prescription. The end date
// is mandatory on prescriptions, so there is no missing-field case.
func PrescriptionRemaining(p *models.Prescription, ref time.Time) (days int, expired bool) {
	days = DaysUntil(p.EndDate, ref)
	return days, days < 0
}
