package repositories

import (
	"context"
	"fmt"

	"pharmatrack/internal/models"

	"github.com/google/uuid"
)

// ErrInsufficientStock is returned by AdjustQuantity when a deduction would
// take the batch below zero.
var ErrInsufficientStock = fmt.Errorf("insufficient stock for deduction")

type StockRepository interface {
	Create(ctx context.Context, stock *models.Stock) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Stock, error)
	Update(ctx context.Context, stock *models.Stock) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Stock, error)
	ListAll(ctx context.Context) ([]*models.Stock, error)
	Count(ctx context.Context) (int, error)
	ListExpiringWithin(ctx context.Context, days int) ([]*models.Stock, error)
	ListExpired(ctx context.Context) ([]*models.Stock, error)
	ListBelowMinimum(ctx context.Context) ([]*models.Stock, error)
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

type stockRepo struct {
	db DB
}

func NewStockRepository(db DB) StockRepository {
	return &stockRepo{db: db}
}

const stockColumns = `id, product_id, batch_number, quantity, minimum_stock_level, expiry_date, created_at, last_updated`

func (r *stockRepo) scanStock(row interface{ Scan(...any) error }) (*models.Stock, error) {
	stock := &models.Stock{}
	err := row.Scan(&stock.ID, &stock.ProductID, &stock.BatchNumber, &stock.Quantity,
		&stock.MinimumStockLevel, &stock.ExpiryDate, &stock.CreatedAt, &stock.LastUpdated)
	if err != nil {
		return nil, err
	}
	return stock, nil
}

func (r *stockRepo) Create(ctx context.Context, stock *models.Stock) error {
	query := `
		INSERT INTO stocks (id, product_id, batch_number, quantity, minimum_stock_level, expiry_date, created_at, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, stock.ID, stock.ProductID, stock.BatchNumber,
		stock.Quantity, stock.MinimumStockLevel, stock.ExpiryDate)
	return err
}

func (r *stockRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE id = $1`
	return r.scanStock(r.db.QueryRow(ctx, query, id))
}

func (r *stockRepo) Update(ctx context.Context, stock *models.Stock) error {
	query := `
		UPDATE stocks
		SET product_id = $1, batch_number = $2, quantity = $3, minimum_stock_level = $4, expiry_date = $5, last_updated = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, stock.ProductID, stock.BatchNumber, stock.Quantity,
		stock.MinimumStockLevel, stock.ExpiryDate, stock.ID)
	return err
}

func (r *stockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM stocks WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *stockRepo) List(ctx context.Context, limit, offset int) ([]*models.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks ORDER BY expiry_date LIMIT $1 OFFSET $2`
	return r.queryStocks(ctx, query, limit, offset)
}

// ListAll returns every batch without pagination. The summary and the alert
// sweep walk the whole shelf; paging them would drop batches past the page.
func (r *stockRepo) ListAll(ctx context.Context) ([]*models.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks ORDER BY expiry_date`
	return r.queryStocks(ctx, query)
}

func (r *stockRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM stocks`).Scan(&count)
	return count, err
}

func (r *stockRepo) ListExpiringWithin(ctx context.Context, days int) ([]*models.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stocks
		WHERE expiry_date >= CURRENT_DATE
		  AND expiry_date <= CURRENT_DATE + $1 * INTERVAL '1 day'
		ORDER BY expiry_date
	`
	return r.queryStocks(ctx, query, days)
}

func (r *stockRepo) ListExpired(ctx context.Context) ([]*models.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stocks
		WHERE expiry_date < CURRENT_DATE
		ORDER BY expiry_date
	`
	return r.queryStocks(ctx, query)
}

func (r *stockRepo) ListBelowMinimum(ctx context.Context) ([]*models.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stocks
		WHERE minimum_stock_level IS NOT NULL AND quantity < minimum_stock_level
		ORDER BY quantity
	`
	return r.queryStocks(ctx, query)
}

// AdjustQuantity applies an atomic delta and returns the resulting quantity.
// The WHERE guard keeps concurrent deductions from driving the batch negative.
func (r *stockRepo) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	query := `
		UPDATE stocks
		SET quantity = quantity + $1, last_updated = NOW()
		WHERE id = $2 AND quantity + $1 >= 0
		RETURNING quantity
	`
	var resulting int
	err := r.db.QueryRow(ctx, query, delta, id).Scan(&resulting)
	if err != nil {
		// Distinguish "row exists but guard failed" from "no such batch".
		if _, getErr := r.GetByID(ctx, id); getErr == nil {
			return 0, ErrInsufficientStock
		}
		return 0, err
	}
	return resulting, nil
}

func (r *stockRepo) queryStocks(ctx context.Context, query string, args ...any) ([]*models.Stock, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stocks []*models.Stock
	for rows.Next() {
		stock, err := r.scanStock(rows)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, stock)
	}
	return stocks, rows.Err()
}
