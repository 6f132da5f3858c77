package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"backoffice/internal/delivery/http/response"
	"backoffice/internal/domain/entity"
	"backoffice/internal/usecase"
)

// CustomerHandler holds dependencies for customer handlers.
type CustomerHandler struct {
	uc     usecase.CustomerUsecase
	logger *slog.Logger
}

// NewCustomerHandler is the constructor for CustomerHandler, injected by Fx.
func NewCustomerHandler(uc usecase.CustomerUsecase, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, logger: logger}
}

type createCustomerRequest struct {
	Name         string              `json:"name" validate:"required"`
	Email        string              `json:"email" validate:"required,email"`
	Phone        string              `json:"phone" validate:"required"`
	Address      string              `json:"address" validate:"required"`
	TaxID        string              `json:"tax_id" validate:"required"`
	CustomerType entity.CustomerType `json:"customer_type"`
	CreditLimit  float64             `json:"credit_limit" validate:"gte=0"`
	Notes        string              `json:"notes"`
}

type updateCustomerRequest struct {
	Name         *string              `json:"name"`
	Email        *string              `json:"email" validate:"omitempty,email"`
	Phone        *string              `json:"phone"`
	Address      *string              `json:"address"`
	TaxID        *string              `json:"tax_id"`
	CustomerType *entity.CustomerType `json:"customer_type"`
	CreditLimit  *float64             `json:"credit_limit" validate:"omitempty,gte=0"`
	Notes        *string              `json:"notes"`
}

// Create handles the customer creation request.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.uc.Create(c.Request().Context(), &usecase.CreateCustomerInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		TaxID:        req.TaxID,
		CustomerType: req.CustomerType,
		CreditLimit:  req.CreditLimit,
		Notes:        req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, customer, "Customer created successfully")
}

// List handles the paginated customer listing request.
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.uc.List(c.Request().Context(), listInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customers, "")
}

// Get handles the fetch-by-id request.
func (h *CustomerHandler) Get(c echo.Context) error {
	customer, err := h.uc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customer, "")
}

// Update handles the customer update request.
func (h *CustomerHandler) Update(c echo.Context) error {
	var req updateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.uc.Update(c.Request().Context(), c.Param("id"), &usecase.UpdateCustomerInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		TaxID:        req.TaxID,
		CustomerType: req.CustomerType,
		CreditLimit:  req.CreditLimit,
		Notes:        req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customer, "Customer updated successfully")
}

// Deactivate soft-deletes a customer.
func (h *CustomerHandler) Deactivate(c echo.Context) error {
	if err := h.uc.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Customer deactivated"}, "")
}

// Activate restores a soft-deleted customer.
func (h *CustomerHandler) Activate(c echo.Context) error {
	if err := h.uc.Activate(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Customer activated"}, "")
}

// Search handles the customer search request.
func (h *CustomerHandler) Search(c echo.Context) error {
	term, limit := searchParams(c)
	if term == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Search term is required")
	}

	customers, err := h.uc.Search(c.Request().Context(), term, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customers, "")
}
