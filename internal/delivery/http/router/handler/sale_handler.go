package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"backoffice/internal/delivery/http/middleware"
	"backoffice/internal/delivery/http/response"
	"backoffice/internal/domain/entity"
	"backoffice/internal/usecase"
)

// SaleHandler holds dependencies for sale handlers.
type SaleHandler struct {
	uc     usecase.SaleUsecase
	logger *slog.Logger
}

// NewSaleHandler is the constructor for SaleHandler, injected by Fx.
func NewSaleHandler(uc usecase.SaleUsecase, logger *slog.Logger) *SaleHandler {
	return &SaleHandler{uc: uc, logger: logger}
}

type saleItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	Discount  float64 `json:"discount" validate:"gte=0"`
}

type createSaleRequest struct {
	CustomerID       string               `json:"customer_id" validate:"required"`
	Items            []saleItemRequest    `json:"items" validate:"required,min=1,dive"`
	PaymentMethod    entity.PaymentMethod `json:"payment_method" validate:"required"`
	PaymentReference string               `json:"payment_reference"`
	DiscountAmount   float64              `json:"discount_amount" validate:"gte=0"`
	Notes            string               `json:"notes" validate:"max=500"`
}

type updateSaleRequest struct {
	Status           *entity.SaleStatus `json:"status"`
	PaymentReference *string            `json:"payment_reference"`
	Notes            *string            `json:"notes" validate:"omitempty,max=500"`
}

// Create records a sale for the authenticated cashier.
func (h *SaleHandler) Create(c echo.Context) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req createSaleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sale input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]usecase.SaleItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Discount:  item.Discount,
		})
	}

	sale, err := h.uc.Create(c.Request().Context(), &usecase.CreateSaleInput{
		CustomerID:       req.CustomerID,
		CashierID:        identity.ID.Hex(),
		CashierName:      identity.Profile.FirstName + " " + identity.Profile.LastName,
		Items:            items,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		DiscountAmount:   req.DiscountAmount,
		Notes:            req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, sale, "Sale recorded successfully")
}

// List handles the paginated sale listing request.
func (h *SaleHandler) List(c echo.Context) error {
	sales, err := h.uc.List(c.Request().Context(), listInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sales, "")
}

// Get handles the fetch-by-id request.
func (h *SaleHandler) Get(c echo.Context) error {
	sale, err := h.uc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sale, "")
}

// GetByNumber handles the fetch-by-sale-number request.
func (h *SaleHandler) GetByNumber(c echo.Context) error {
	sale, err := h.uc.GetBySaleNumber(c.Request().Context(), c.Param("number"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sale, "")
}

// Update changes the mutable follow-up fields of a sale.
func (h *SaleHandler) Update(c echo.Context) error {
	var req updateSaleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sale input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sale, err := h.uc.Update(c.Request().Context(), c.Param("id"), &usecase.UpdateSaleInput{
		Status:           req.Status,
		PaymentReference: req.PaymentReference,
		Notes:            req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sale, "Sale updated successfully")
}

// Cancel voids a pending sale.
func (h *SaleHandler) Cancel(c echo.Context) error {
	if err := h.uc.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Sale cancelled"}, "")
}

// ByCustomer lists a customer's sales, most recent first.
func (h *SaleHandler) ByCustomer(c echo.Context) error {
	sales, err := h.uc.GetByCustomer(c.Request().Context(), c.Param("customer_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sales, "")
}

// ByCashier lists a cashier's sales, most recent first.
func (h *SaleHandler) ByCashier(c echo.Context) error {
	sales, err := h.uc.GetByCashier(c.Request().Context(), c.Param("cashier_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sales, "")
}

// DailyReport aggregates completed sales for one calendar day. The date query
// parameter is YYYY-MM-DD and defaults to the current UTC day, matching the
// UTC timestamps sales are recorded with.
func (h *SaleHandler) DailyReport(c echo.Context) error {
	date := time.Now().UTC()
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	summary, err := h.uc.GetDailySummary(c.Request().Context(), date)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "")
}

// TopProducts ranks products in completed sales by quantity sold.
func (h *SaleHandler) TopProducts(c echo.Context) error {
	limit := int64(10)
	if parsed, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64); err == nil && parsed > 0 {
		limit = parsed
	}

	products, err := h.uc.GetTopSellingProducts(c.Request().Context(), limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}
