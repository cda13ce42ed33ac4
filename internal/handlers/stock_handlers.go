package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"pharmatrack/internal/alerting"
	"pharmatrack/internal/common"
	"pharmatrack/internal/models"
	"pharmatrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// StockHandlers handles HTTP requests for stock batches
type StockHandlers struct {
	stockService services.StockService
}

func NewStockHandlers(stockService services.StockService) *StockHandlers {
	return &StockHandlers{stockService: stockService}
}

type stockRequest struct {
	ProductID         string  `json:"productId"`
	BatchNumber       *string `json:"batchNumber"`
	Quantity          int     `json:"quantity"`
	MinimumStockLevel *int    `json:"minimumStockLevel"`
	ExpiryDate        string  `json:"expiryDate"`
}

func (h *StockHandlers) bindStock(c echo.Context) (*models.Stock, error) {
	var req stockRequest
	if err := c.Bind(&req); err != nil {
		return nil, common.SendClientError(c, "invalid request format")
	}

	fields := map[string]string{}
	productID, err := common.ValidateUUID(req.ProductID, "productId")
	if err != nil {
		fields["productId"] = "must be a valid UUID"
	}
	expiry, err := common.ParseDate(req.ExpiryDate, "expiryDate")
	if err != nil {
		fields["expiryDate"] = "must be in YYYY-MM-DD format"
	}
	if req.Quantity < 0 {
		fields["quantity"] = "must not be negative"
	}
	if req.MinimumStockLevel != nil && *req.MinimumStockLevel < 0 {
		fields["minimumStockLevel"] = "must not be negative"
	}
	if len(fields) > 0 {
		return nil, common.SendValidationError(c, fields)
	}

	return &models.Stock{
		ProductID:         productID,
		BatchNumber:       req.BatchNumber,
		Quantity:          req.Quantity,
		MinimumStockLevel: req.MinimumStockLevel,
		ExpiryDate:        expiry,
	}, nil
}

// CreateStock handles POST /api/stocks
func (h *StockHandlers) CreateStock(c echo.Context) error {
	stock, bindErr := h.bindStock(c)
	if bindErr != nil {
		return bindErr
	}

	if err := h.stockService.Create(c.Request().Context(), stock); err != nil {
		return respondError(c, err, "stock")
	}

	view, err := h.stockService.GetByID(c.Request().Context(), stock.ID)
	if err != nil {
		return respondError(c, err, "stock")
	}
	return common.SendData(c, http.StatusCreated, view, "Stock created")
}

// GetStock handles GET /api/stocks/:id
func (h *StockHandlers) GetStock(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	view, err := h.stockService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "stock")
	}
	return common.SendData(c, http.StatusOK, view, "")
}

// ListStocks handles GET /api/stocks
func (h *StockHandlers) ListStocks(c echo.Context) error {
	limit, offset := common.PaginationParams(c)

	views, err := h.stockService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err, "stocks")
	}
	return common.SendData(c, http.StatusOK, views, "")
}

// UpdateStock handles PUT /api/stocks/:id
func (h *StockHandlers) UpdateStock(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	stock, bindErr := h.bindStock(c)
	if bindErr != nil {
		return bindErr
	}
	stock.ID = id

	if err := h.stockService.Update(c.Request().Context(), stock); err != nil {
		return respondError(c, err, "stock")
	}

	view, err := h.stockService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "stock")
	}
	return common.SendData(c, http.StatusOK, view, "Stock updated")
}

// DeleteStock handles DELETE /api/stocks/:id
func (h *StockHandlers) DeleteStock(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.stockService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "stock")
	}
	return common.SendData(c, http.StatusOK, nil, "Stock deleted")
}

// GetStockSummary handles GET /api/stocks/summary
func (h *StockHandlers) GetStockSummary(c echo.Context) error {
	summary, err := h.stockService.Summary(c.Request().Context())
	if err != nil {
		return respondError(c, err, "stock summary")
	}
	return common.SendData(c, http.StatusOK, summary, "")
}

// GetStockCount handles GET /api/stocks/count
func (h *StockHandlers) GetStockCount(c echo.Context) error {
	count, err := h.stockService.Count(c.Request().Context())
	if err != nil {
		return respondError(c, err, "stock count")
	}
	return common.SendData(c, http.StatusOK, map[string]int{"count": count}, "")
}

// GetLowStockAlerts handles GET /api/stocks/alerts/low
func (h *StockHandlers) GetLowStockAlerts(c echo.Context) error {
	views, err := h.stockService.LowStockAlerts(c.Request().Context())
	if err != nil {
		return respondError(c, err, "stocks")
	}
	return common.SendData(c, http.StatusOK, views, "")
}

// GetExpiringStocks handles GET /api/stocks/alerts/expiring?days=N
func (h *StockHandlers) GetExpiringStocks(c echo.Context) error {
	days := 0
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return common.SendValidationError(c, map[string]string{"days": "must be a positive integer"})
		}
		days = parsed
	}

	views, err := h.stockService.ExpiringStocks(c.Request().Context(), days)
	if err != nil {
		return respondError(c, err, "stocks")
	}
	return common.SendData(c, http.StatusOK, views, "")
}

// GetExpiredStocks handles GET /api/stocks/alerts/expired
func (h *StockHandlers) GetExpiredStocks(c echo.Context) error {
	views, err := h.stockService.ExpiredStocks(c.Request().Context())
	if err != nil {
		return respondError(c, err, "stocks")
	}
	return common.SendData(c, http.StatusOK, views, "")
}

// GetStocksByStatus handles GET /api/stocks/status/:status
func (h *StockHandlers) GetStocksByStatus(c echo.Context) error {
	status := alerting.StockStatus(strings.ToUpper(c.Param("status")))

	views, err := h.stockService.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return respondError(c, err, "stocks")
	}
	return common.SendData(c, http.StatusOK, views, "")
}

// adjustParams reads the quantity and optional reason query parameters shared
// by the add and deduct endpoints.
func (h *StockHandlers) adjustParams(c echo.Context) (uuid.UUID, int, *string, error) {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return uuid.Nil, 0, nil, common.SendClientError(c, err.Error())
	}

	quantity, err := strconv.Atoi(c.QueryParam("quantity"))
	if err != nil || quantity <= 0 {
		return uuid.Nil, 0, nil, common.SendValidationError(c, map[string]string{"quantity": "must be a positive integer"})
	}

	var reason *string
	if raw := c.QueryParam("reason"); raw != "" {
		reason = &raw
	}
	return id, quantity, reason, nil
}

// AddStockQuantity handles PATCH /api/stocks/:id/add?quantity=N&reason=...
func (h *StockHandlers) AddStockQuantity(c echo.Context) error {
	id, quantity, reason, paramErr := h.adjustParams(c)
	if paramErr != nil {
		return paramErr
	}

	view, err := h.stockService.AddQuantity(c.Request().Context(), id, quantity, reason)
	if err != nil {
		return respondError(c, err, "stock")
	}
	return common.SendData(c, http.StatusOK, view, "Quantity added")
}

// DeductStockQuantity handles PATCH /api/stocks/:id/deduct?quantity=N&reason=...
func (h *StockHandlers) DeductStockQuantity(c echo.Context) error {
	id, quantity, reason, paramErr := h.adjustParams(c)
	if paramErr != nil {
		return paramErr
	}

	view, err := h.stockService.DeductQuantity(c.Request().Context(), id, quantity, reason)
	if err != nil {
		return respondError(c, err, "stock")
	}
	return common.SendData(c, http.StatusOK, view, "Quantity deducted")
}

// GetStockMovements handles GET /api/stocks/:id/movements
func (h *StockHandlers) GetStockMovements(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	limit, offset := common.PaginationParams(c)

	movements, err := h.stockService.Movements(c.Request().Context(), id, limit, offset)
	if err != nil {
		return respondError(c, err, "stock movements")
	}
	return common.SendData(c, http.StatusOK, movements, "")
}
