package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"backoffice/internal/delivery/http/response"
	"backoffice/internal/usecase"
)

// SupplierHandler holds dependencies for supplier handlers.
type SupplierHandler struct {
	uc     usecase.SupplierUsecase
	logger *slog.Logger
}

// NewSupplierHandler is the constructor for SupplierHandler, injected by Fx.
func NewSupplierHandler(uc usecase.SupplierUsecase, logger *slog.Logger) *SupplierHandler {
	return &SupplierHandler{uc: uc, logger: logger}
}

type createSupplierRequest struct {
	Name          string  `json:"name" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         string  `json:"phone" validate:"required"`
	Address       string  `json:"address" validate:"required"`
	TaxID         string  `json:"tax_id" validate:"required"`
	ContactPerson string  `json:"contact_person" validate:"required"`
	Website       string  `json:"website"`
	PaymentTerms  string  `json:"payment_terms"`
	CreditLimit   float64 `json:"credit_limit" validate:"gte=0"`
	Notes         string  `json:"notes"`
}

type updateSupplierRequest struct {
	Name          *string  `json:"name"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	Phone         *string  `json:"phone"`
	Address       *string  `json:"address"`
	TaxID         *string  `json:"tax_id"`
	ContactPerson *string  `json:"contact_person"`
	Website       *string  `json:"website"`
	PaymentTerms  *string  `json:"payment_terms"`
	CreditLimit   *float64 `json:"credit_limit" validate:"omitempty,gte=0"`
	Notes         *string  `json:"notes"`
}

// Create handles the supplier creation request.
func (h *SupplierHandler) Create(c echo.Context) error {
	var req createSupplierRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid supplier input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	supplier, err := h.uc.Create(c.Request().Context(), &usecase.CreateSupplierInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		TaxID:         req.TaxID,
		ContactPerson: req.ContactPerson,
		Website:       req.Website,
		PaymentTerms:  req.PaymentTerms,
		CreditLimit:   req.CreditLimit,
		Notes:         req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, supplier, "Supplier created successfully")
}

// List handles the paginated supplier listing request.
func (h *SupplierHandler) List(c echo.Context) error {
	suppliers, err := h.uc.List(c.Request().Context(), listInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, suppliers, "")
}

// Get handles the fetch-by-id request.
func (h *SupplierHandler) Get(c echo.Context) error {
	supplier, err := h.uc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, supplier, "")
}

// Update handles the supplier update request.
func (h *SupplierHandler) Update(c echo.Context) error {
	var req updateSupplierRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid supplier input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	supplier, err := h.uc.Update(c.Request().Context(), c.Param("id"), &usecase.UpdateSupplierInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		TaxID:         req.TaxID,
		ContactPerson: req.ContactPerson,
		Website:       req.Website,
		PaymentTerms:  req.PaymentTerms,
		CreditLimit:   req.CreditLimit,
		Notes:         req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, supplier, "Supplier updated successfully")
}

// Deactivate soft-deletes a supplier.
func (h *SupplierHandler) Deactivate(c echo.Context) error {
	if err := h.uc.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Supplier deactivated"}, "")
}

// Activate restores a soft-deleted supplier.
func (h *SupplierHandler) Activate(c echo.Context) error {
	if err := h.uc.Activate(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Supplier activated"}, "")
}

// Search handles the supplier search request.
func (h *SupplierHandler) Search(c echo.Context) error {
	term, limit := searchParams(c)
	if term == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Search term is required")
	}

	suppliers, err := h.uc.Search(c.Request().Context(), term, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, suppliers, "")
}
