package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"pharmatrack/internal/alerting"
	"pharmatrack/internal/caching"
	"pharmatrack/internal/models"
	"pharmatrack/internal/repositories"

	"github.com/google/uuid"
)

const stockSummaryCacheTTL = 5 * time.Minute

type StockService interface {
	Create(ctx context.Context, stock *models.Stock) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.StockView, error)
	Update(ctx context.Context, stock *models.Stock) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.StockView, error)
	Count(ctx context.Context) (int, error)
	Summary(ctx context.Context) (*models.StockSummary, error)
	LowStockAlerts(ctx context.Context) ([]*models.StockView, error)
	ExpiringStocks(ctx context.Context, days int) ([]*models.StockView, error)
	ExpiredStocks(ctx context.Context) ([]*models.StockView, error)
	ListByStatus(ctx context.Context, status alerting.StockStatus) ([]*models.StockView, error)
	AddQuantity(ctx context.Context, id uuid.UUID, quantity int, reason *string) (*models.StockView, error)
	DeductQuantity(ctx context.Context, id uuid.UUID, quantity int, reason *string) (*models.StockView, error)
	Movements(ctx context.Context, stockID uuid.UUID, limit, offset int) ([]*models.StockMovement, error)
}

type stockService struct {
	stockRepo    repositories.StockRepository
	movementRepo repositories.StockMovementRepository
	productRepo  repositories.ProductRepository
	settingsSvc  SettingsService
	cacheService caching.CacheService
}

func NewStockService(stockRepo repositories.StockRepository, movementRepo repositories.StockMovementRepository,
	productRepo repositories.ProductRepository, settingsSvc SettingsService, cacheService caching.CacheService) StockService {
	return &stockService{
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		productRepo:  productRepo,
		settingsSvc:  settingsSvc,
		cacheService: cacheService,
	}
}

func (s *stockService) Create(ctx context.Context, stock *models.Stock) error {
	if stock.Quantity < 0 {
		return &alerting.ValidationError{Fields: map[string]string{"quantity": "must not be negative"}}
	}
	if stock.ExpiryDate.IsZero() {
		return &alerting.ValidationError{Fields: map[string]string{"expiryDate": "is required"}}
	}
	stock.ID = uuid.New()
	if err := s.stockRepo.Create(ctx, stock); err != nil {
		return err
	}
	s.invalidateSummary(ctx)
	return nil
}

func (s *stockService) GetByID(ctx context.Context, id uuid.UUID) (*models.StockView, error) {
	stock, err := s.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, stock)
}

func (s *stockService) Update(ctx context.Context, stock *models.Stock) error {
	if stock.Quantity < 0 {
		return &alerting.ValidationError{Fields: map[string]string{"quantity": "must not be negative"}}
	}
	if err := s.stockRepo.Update(ctx, stock); err != nil {
		return err
	}
	s.invalidateSummary(ctx)
	return nil
}

func (s *stockService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.stockRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSummary(ctx)
	return nil
}

func (s *stockService) List(ctx context.Context, limit, offset int) ([]*models.StockView, error) {
	stocks, err := s.stockRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, stocks)
}

func (s *stockService) Count(ctx context.Context) (int, error) {
	return s.stockRepo.Count(ctx)
}

func (s *stockService) Summary(ctx context.Context) (*models.StockSummary, error) {
	if cached, err := s.cacheService.GetStockSummary(ctx); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error reading stock summary: %v", err)
	}

	settings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	stocks, err := s.stockRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.StockSummary{TotalBatches: len(stocks)}
	now := time.Now()
	for _, stock := range stocks {
		summary.TotalQuantity += stock.Quantity
		status, err := alerting.ClassifyStock(stock, settings.StockExpiryWarningDays, now)
		if err != nil {
			log.Printf("Skipping unclassifiable stock %s: %v", stock.ID.String(), err)
			continue
		}
		switch status {
		case alerting.StockExpired:
			summary.ExpiredCount++
		case alerting.StockNearExpiry:
			summary.ExpiringCount++
		case alerting.StockLowStock, alerting.StockOutOfStock:
			summary.LowStockCount++
		}
	}

	if cacheErr := s.cacheService.SetStockSummary(ctx, summary, stockSummaryCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache stock summary: %v", cacheErr)
	}
	return summary, nil
}

func (s *stockService) LowStockAlerts(ctx context.Context) ([]*models.StockView, error) {
	stocks, err := s.stockRepo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, stocks)
}

func (s *stockService) ExpiringStocks(ctx context.Context, days int) ([]*models.StockView, error) {
	if days <= 0 {
		settings, err := s.settingsSvc.Get(ctx)
		if err != nil {
			return nil, err
		}
		days = settings.StockExpiryWarningDays
	}
	stocks, err := s.stockRepo.ListExpiringWithin(ctx, days)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, stocks)
}

func (s *stockService) ExpiredStocks(ctx context.Context) ([]*models.StockView, error) {
	stocks, err := s.stockRepo.ListExpired(ctx)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, stocks)
}

func (s *stockService) ListByStatus(ctx context.Context, status alerting.StockStatus) ([]*models.StockView, error) {
	if !alerting.ValidStockStatus(status) {
		return nil, &alerting.ValidationError{Fields: map[string]string{"status": "unknown stock status"}}
	}
	stocks, err := s.stockRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.toViews(ctx, stocks)
	if err != nil {
		return nil, err
	}
	var filtered []*models.StockView
	for _, view := range views {
		if view.Status == string(status) {
			filtered = append(filtered, view)
		}
	}
	return filtered, nil
}

func (s *stockService) AddQuantity(ctx context.Context, id uuid.UUID, quantity int, reason *string) (*models.StockView, error) {
	return s.adjust(ctx, id, quantity, reason)
}

func (s *stockService) DeductQuantity(ctx context.Context, id uuid.UUID, quantity int, reason *string) (*models.StockView, error) {
	return s.adjust(ctx, id, -quantity, reason)
}

func (s *stockService) adjust(ctx context.Context, id uuid.UUID, delta int, reason *string) (*models.StockView, error) {
	if delta == 0 {
		return nil, &alerting.ValidationError{Fields: map[string]string{"quantity": "must be positive"}}
	}

	resulting, err := s.stockRepo.AdjustQuantity(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	movement := &models.StockMovement{
		ID:                uuid.New(),
		StockID:           id,
		Delta:             delta,
		Reason:            reason,
		ResultingQuantity: resulting,
	}
	if err := s.movementRepo.Create(ctx, movement); err != nil {
		// The adjustment is already committed; losing the audit row is not
		// worth failing the request over.
		log.Printf("Failed to record stock movement for %s: %v", id.String(), err)
	}

	s.invalidateSummary(ctx)
	return s.GetByID(ctx, id)
}

func (s *stockService) Movements(ctx context.Context, stockID uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	return s.movementRepo.ListByStock(ctx, stockID, limit, offset)
}

func (s *stockService) toView(ctx context.Context, stock *models.Stock) (*models.StockView, error) {
	settings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, stock, settings.StockExpiryWarningDays, time.Now())
}

func (s *stockService) toViews(ctx context.Context, stocks []*models.Stock) ([]*models.StockView, error) {
	settings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	views := make([]*models.StockView, 0, len(stocks))
	for _, stock := range stocks {
		view, err := s.buildView(ctx, stock, settings.StockExpiryWarningDays, now)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *stockService) buildView(ctx context.Context, stock *models.Stock, warningDays int, now time.Time) (*models.StockView, error) {
	status, err := alerting.ClassifyStock(stock, warningDays, now)
	if err != nil {
		return nil, fmt.Errorf("failed to classify stock %s: %w", stock.ID.String(), err)
	}

	view := &models.StockView{
		Stock:           *stock,
		Status:          string(status),
		DaysUntilExpiry: alerting.DaysUntil(stock.ExpiryDate, now),
		IsExpired:       status == alerting.StockExpired,
		IsNearExpiry:    status == alerting.StockNearExpiry,
		IsBelowMinimum:  stock.MinimumStockLevel != nil && stock.Quantity < *stock.MinimumStockLevel,
	}

	if product, err := s.productRepo.GetByID(ctx, stock.ProductID); err == nil {
		view.ProductName = product.Name
	}
	return view, nil
}

func (s *stockService) invalidateSummary(ctx context.Context) {
	if err := s.cacheService.DeleteStockSummary(ctx); err != nil {
		log.Printf("Failed to invalidate stock summary cache: %v", err)
	}
}
