package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"backoffice/internal/delivery/http/response"
	"backoffice/internal/domain/entity"
	"backoffice/internal/usecase"
)

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: logger}
}

type createProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	SKU           string   `json:"sku"`
	Barcode       string   `json:"barcode"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand"`
	UnitPrice     float64  `json:"unit_price" validate:"gt=0"`
	CostPrice     float64  `json:"cost_price" validate:"gte=0"`
	StockQuantity int      `json:"stock_quantity" validate:"gte=0"`
	MinStockLevel int      `json:"min_stock_level" validate:"gte=0"`
	MaxStockLevel int      `json:"max_stock_level" validate:"gte=0"`
	SupplierID    string   `json:"supplier_id"`
	TaxRate       float64  `json:"tax_rate" validate:"gte=0,lte=1"`
	Weight        float64  `json:"weight" validate:"gte=0"`
	Dimensions    string   `json:"dimensions"`
	ImageURLs     []string `json:"image_urls"`
	Tags          []string `json:"tags"`
}

type updateProductRequest struct {
	Name          *string               `json:"name"`
	Description   *string               `json:"description"`
	SKU           *string               `json:"sku"`
	Barcode       *string               `json:"barcode"`
	Category      *string               `json:"category"`
	Brand         *string               `json:"brand"`
	UnitPrice     *float64              `json:"unit_price" validate:"omitempty,gt=0"`
	CostPrice     *float64              `json:"cost_price" validate:"omitempty,gte=0"`
	StockQuantity *int                  `json:"stock_quantity" validate:"omitempty,gte=0"`
	MinStockLevel *int                  `json:"min_stock_level" validate:"omitempty,gte=0"`
	MaxStockLevel *int                  `json:"max_stock_level" validate:"omitempty,gte=0"`
	SupplierID    *string               `json:"supplier_id"`
	TaxRate       *float64              `json:"tax_rate" validate:"omitempty,gte=0,lte=1"`
	Weight        *float64              `json:"weight" validate:"omitempty,gte=0"`
	Dimensions    *string               `json:"dimensions"`
	ImageURLs     *[]string             `json:"image_urls"`
	Status        *entity.ProductStatus `json:"status"`
	Tags          *[]string             `json:"tags"`
}

type adjustStockRequest struct {
	QuantityChange int `json:"quantity_change" validate:"required"`
}

// Create handles the product creation request.
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.uc.Create(c.Request().Context(), &usecase.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		SKU:           req.SKU,
		Barcode:       req.Barcode,
		Category:      req.Category,
		Brand:         req.Brand,
		UnitPrice:     req.UnitPrice,
		CostPrice:     req.CostPrice,
		StockQuantity: req.StockQuantity,
		MinStockLevel: req.MinStockLevel,
		MaxStockLevel: req.MaxStockLevel,
		SupplierID:    req.SupplierID,
		TaxRate:       req.TaxRate,
		Weight:        req.Weight,
		Dimensions:    req.Dimensions,
		ImageURLs:     req.ImageURLs,
		Tags:          req.Tags,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// List handles the paginated product listing request. An optional category
// query parameter narrows the listing.
func (h *ProductHandler) List(c echo.Context) error {
	if category := c.QueryParam("category"); category != "" {
		products, err := h.uc.ListByCategory(c.Request().Context(), category)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, products, "")
	}

	products, err := h.uc.List(c.Request().Context(), listInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// Get handles the fetch-by-id request.
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.uc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// GetBySKU handles the fetch-by-sku request.
func (h *ProductHandler) GetBySKU(c echo.Context) error {
	product, err := h.uc.GetBySKU(c.Request().Context(), c.Param("sku"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// GetByBarcode handles the fetch-by-barcode request.
func (h *ProductHandler) GetByBarcode(c echo.Context) error {
	product, err := h.uc.GetByBarcode(c.Request().Context(), c.Param("barcode"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// Update handles the product update request.
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.uc.Update(c.Request().Context(), c.Param("id"), &usecase.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		SKU:           req.SKU,
		Barcode:       req.Barcode,
		Category:      req.Category,
		Brand:         req.Brand,
		UnitPrice:     req.UnitPrice,
		CostPrice:     req.CostPrice,
		StockQuantity: req.StockQuantity,
		MinStockLevel: req.MinStockLevel,
		MaxStockLevel: req.MaxStockLevel,
		SupplierID:    req.SupplierID,
		TaxRate:       req.TaxRate,
		Weight:        req.Weight,
		Dimensions:    req.Dimensions,
		ImageURLs:     req.ImageURLs,
		Status:        req.Status,
		Tags:          req.Tags,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// Deactivate soft-deletes a product.
func (h *ProductHandler) Deactivate(c echo.Context) error {
	if err := h.uc.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Product deactivated"}, "")
}

// Activate restores a soft-deleted product.
func (h *ProductHandler) Activate(c echo.Context) error {
	if err := h.uc.Activate(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Product activated"}, "")
}

// Search handles the product search request.
func (h *ProductHandler) Search(c echo.Context) error {
	term, limit := searchParams(c)
	if term == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Search term is required")
	}

	products, err := h.uc.Search(c.Request().Context(), term, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// LowStock lists active products at or below their minimum stock level.
func (h *ProductHandler) LowStock(c echo.Context) error {
	products, err := h.uc.GetLowStock(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// AdjustStock applies a relative stock change to a product.
func (h *ProductHandler) AdjustStock(c echo.Context) error {
	var req adjustStockRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid stock input")
	}
	if req.QuantityChange == 0 {
		return response.BadRequest(c, "INVALID_INPUT", "quantity_change must be non-zero")
	}

	if err := h.uc.AdjustStock(c.Request().Context(), c.Param("id"), req.QuantityChange); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"message": "Stock adjusted by " + strconv.Itoa(req.QuantityChange),
	}, "")
}
