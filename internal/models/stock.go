package models

import (
	"time"

	"github.com/google/uuid"
)

// Stock represents one batch of a product on the shelf. A product can have
// several batches with different expiry dates.
type Stock struct {
	ID                uuid.UUID `json:"id" db:"id"`
	ProductID         uuid.UUID `json:"productId" db:"product_id"`
	BatchNumber       *string   `json:"batchNumber" db:"batch_number"`
	Quantity          int       `json:"quantity" db:"quantity"`
	MinimumStockLevel *int      `json:"minimumStockLevel" db:"minimum_stock_level"`
	ExpiryDate        time.Time `json:"expiryDate" db:"expiry_date"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	LastUpdated       time.Time `json:"lastUpdated" db:"last_updated"`
}

// StockView is the API shape for a stock batch: the stored row plus the
// derived status fields the dashboard renders as badges.
type StockView struct {
	Stock
	ProductName     string `json:"productName"`
	Status          string `json:"status"`
	DaysUntilExpiry int    `json:"daysUntilExpiry"`
	IsExpired       bool   `json:"isExpired"`
	IsNearExpiry    bool   `json:"isNearExpiry"`
	IsBelowMinimum  bool   `json:"isBelowMinimum"`
}

// StockSummary holds the aggregate counters shown on the inventory page header.
type StockSummary struct {
	TotalBatches  int `json:"totalBatches"`
	TotalQuantity int `json:"totalQuantity"`
	LowStockCount int `json:"lowStockCount"`
	ExpiringCount int `json:"expiringCount"`
	ExpiredCount  int `json:"expiredCount"`
}

// StockMovement is the audit record written for every add/deduct delta.
type StockMovement struct {
	ID                uuid.UUID `json:"id" db:"id"`
	StockID           uuid.UUID `json:"stockId" db:"stock_id"`
	Delta             int       `json:"delta" db:"delta"`
	Reason            *string   `json:"reason" db:"reason"`
	ResultingQuantity int       `json:"resultingQuantity" db:"resulting_quantity"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}
