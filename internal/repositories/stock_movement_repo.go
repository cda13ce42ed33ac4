package repositories

import (
	"context"

	"pharmatrack/internal/models"

	"github.com/google/uuid"
)

type StockMovementRepository interface {
	Create(ctx context.Context, movement *models.StockMovement) error
	ListByStock(ctx context.Context, stockID uuid.UUID, limit, offset int) ([]*models.StockMovement, error)
}

type stockMovementRepo struct {
	db DB
}

func NewStockMovementRepository(db DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) Create(ctx context.Context, movement *models.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, stock_id, delta, reason, resulting_quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, movement.ID, movement.StockID, movement.Delta,
		movement.Reason, movement.ResultingQuantity)
	return err
}

func (r *stockMovementRepo) ListByStock(ctx context.Context, stockID uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	query := `
		SELECT id, stock_id, delta, reason, resulting_quantity, created_at
		FROM stock_movements
		WHERE stock_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, stockID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.StockMovement
	for rows.Next() {
		movement := &models.StockMovement{}
		if err := rows.Scan(&movement.ID, &movement.StockID, &movement.Delta, &movement.Reason,
			&movement.ResultingQuantity, &movement.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, rows.Err()
}
