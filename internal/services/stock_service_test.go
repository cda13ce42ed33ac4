package services

import (
	"context"
	"testing"
	"time"

	"pharmatrack/internal/models"
	"pharmatrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type StockServiceTestSuite struct {
	suite.Suite
	mockStockRepo    *MockStockRepository
	mockMovementRepo *MockStockMovementRepository
	mockProductRepo  *MockProductRepository
	mockSettingsRepo *MockSettingsRepository
	service          StockService
}

func (suite *StockServiceTestSuite) SetupTest() {
	suite.mockStockRepo = &MockStockRepository{}
	suite.mockMovementRepo = &MockStockMovementRepository{}
	suite.mockProductRepo = &MockProductRepository{}
	suite.mockSettingsRepo = &MockSettingsRepository{}
	settingsSvc := NewSettingsService(suite.mockSettingsRepo, &MockCacheService{})
	suite.service = NewStockService(suite.mockStockRepo, suite.mockMovementRepo, suite.mockProductRepo, settingsSvc, &MockCacheService{})

	suite.mockSettingsRepo.On("Get", mock.Anything).Return(models.DefaultAlertSettings(), nil).Maybe()
}

func (suite *StockServiceTestSuite) TearDownTest() {
	suite.mockStockRepo.AssertExpectations(suite.T())
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func TestStockServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StockServiceTestSuite))
}

func (suite *StockServiceTestSuite) freshStock(quantity int, daysToExpiry int) *models.Stock {
	return &models.Stock{
		ID:         uuid.New(),
		ProductID:  uuid.New(),
		Quantity:   quantity,
		ExpiryDate: time.Now().AddDate(0, 0, daysToExpiry),
	}
}

func (suite *StockServiceTestSuite) TestGetByID_ClassifiesAndEnriches() {
	stock := suite.freshStock(50, 200)
	product := &models.Product{ID: stock.ProductID, Name: "Paracetamol 500mg"}

	suite.mockStockRepo.On("GetByID", mock.Anything, stock.ID).Return(stock, nil).Once()
	suite.mockProductRepo.On("GetByID", mock.Anything, stock.ProductID).Return(product, nil).Once()

	view, err := suite.service.GetByID(context.Background(), stock.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "AVAILABLE", view.Status)
	assert.Equal(suite.T(), "Paracetamol 500mg", view.ProductName)
	assert.False(suite.T(), view.IsExpired)
	assert.False(suite.T(), view.IsNearExpiry)
}

func (suite *StockServiceTestSuite) TestGetByID_NearExpiryInsideWarningWindow() {
	stock := suite.freshStock(50, 45)

	suite.mockStockRepo.On("GetByID", mock.Anything, stock.ID).Return(stock, nil).Once()
	suite.mockProductRepo.On("GetByID", mock.Anything, stock.ProductID).Return((*models.Product)(nil), assert.AnError).Once()

	view, err := suite.service.GetByID(context.Background(), stock.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "NEAR_EXPIRY", view.Status)
	assert.True(suite.T(), view.IsNearExpiry)
	assert.Empty(suite.T(), view.ProductName)
}

func (suite *StockServiceTestSuite) TestSummary_CountsEachBucket() {
	minimum := 100
	lowStock := suite.freshStock(10, 200)
	lowStock.MinimumStockLevel = &minimum

	stocks := []*models.Stock{
		suite.freshStock(50, 200),  // available
		suite.freshStock(50, -2),   // expired
		suite.freshStock(50, 30),   // near expiry
		suite.freshStock(0, 200),   // out of stock
		lowStock,                   // below minimum
	}
	suite.mockStockRepo.On("ListAll", mock.Anything).Return(stocks, nil).Once()

	summary, err := suite.service.Summary(context.Background())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 5, summary.TotalBatches)
	assert.Equal(suite.T(), 1, summary.ExpiredCount)
	assert.Equal(suite.T(), 1, summary.ExpiringCount)
	assert.Equal(suite.T(), 2, summary.LowStockCount)
}

func (suite *StockServiceTestSuite) TestAddQuantity_RecordsMovement() {
	stock := suite.freshStock(50, 200)
	reason := "restock delivery"

	suite.mockStockRepo.On("AdjustQuantity", mock.Anything, stock.ID, 25).Return(75, nil).Once()
	suite.mockMovementRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.StockMovement")).Return(nil).Run(func(args mock.Arguments) {
		movement := args.Get(1).(*models.StockMovement)
		assert.Equal(suite.T(), 25, movement.Delta)
		assert.Equal(suite.T(), 75, movement.ResultingQuantity)
		assert.Equal(suite.T(), &reason, movement.Reason)
	}).Once()
	adjusted := *stock
	adjusted.Quantity = 75
	suite.mockStockRepo.On("GetByID", mock.Anything, stock.ID).Return(&adjusted, nil).Once()
	suite.mockProductRepo.On("GetByID", mock.Anything, stock.ProductID).Return((*models.Product)(nil), assert.AnError).Once()

	view, err := suite.service.AddQuantity(context.Background(), stock.ID, 25, &reason)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 75, view.Quantity)
}

func (suite *StockServiceTestSuite) TestDeductQuantity_InsufficientStock() {
	id := uuid.New()

	suite.mockStockRepo.On("AdjustQuantity", mock.Anything, id, -80).Return(0, repositories.ErrInsufficientStock).Once()

	view, err := suite.service.DeductQuantity(context.Background(), id, 80, nil)

	assert.Nil(suite.T(), view)
	assert.ErrorIs(suite.T(), err, repositories.ErrInsufficientStock)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestExpiringStocks_DefaultsToConfiguredWindow() {
	stocks := []*models.Stock{suite.freshStock(50, 30)}

	suite.mockStockRepo.On("ListExpiringWithin", mock.Anything, 90).Return(stocks, nil).Once()
	suite.mockProductRepo.On("GetByID", mock.Anything, mock.Anything).Return((*models.Product)(nil), assert.AnError).Once()

	views, err := suite.service.ExpiringStocks(context.Background(), 0)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), views, 1)
	assert.Equal(suite.T(), "NEAR_EXPIRY", views[0].Status)
}

func (suite *StockServiceTestSuite) TestListByStatus_FiltersByBadge() {
	stocks := []*models.Stock{
		suite.freshStock(50, 200),
		suite.freshStock(50, -1),
	}
	suite.mockStockRepo.On("ListAll", mock.Anything).Return(stocks, nil).Once()
	suite.mockProductRepo.On("GetByID", mock.Anything, mock.Anything).Return((*models.Product)(nil), assert.AnError).Twice()

	views, err := suite.service.ListByStatus(context.Background(), "EXPIRED")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), views, 1)
	assert.Equal(suite.T(), "EXPIRED", views[0].Status)
}
