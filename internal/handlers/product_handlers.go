package handlers

import (
	"net/http"
	"strings"

	"pharmatrack/internal/common"
	"pharmatrack/internal/models"
	"pharmatrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ProductHandlers handles HTTP requests for the product catalog
type ProductHandlers struct {
	productRepo repositories.ProductRepository
}

func NewProductHandlers(productRepo repositories.ProductRepository) *ProductHandlers {
	return &ProductHandlers{productRepo: productRepo}
}

// CreateProduct handles POST /api/products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var req struct {
		Name        string  `json:"name"`
		Barcode     *string `json:"barcode"`
		Description *string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	if strings.TrimSpace(req.Name) == "" {
		return common.SendValidationError(c, map[string]string{"name": "is required"})
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Barcode:     req.Barcode,
		Description: req.Description,
	}
	if err := h.productRepo.Create(c.Request().Context(), product); err != nil {
		return respondError(c, err, "product")
	}

	return common.SendData(c, http.StatusCreated, product, "Product created")
}

// GetProduct handles GET /api/products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	product, err := h.productRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "product")
	}

	return common.SendData(c, http.StatusOK, product, "")
}

// ListProducts handles GET /api/products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	limit, offset := common.PaginationParams(c)

	products, err := h.productRepo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err, "products")
	}

	return common.SendData(c, http.StatusOK, products, "")
}
