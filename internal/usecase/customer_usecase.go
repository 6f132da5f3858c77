package usecase

import (
	"context"

	"backoffice/internal/domain/entity"
)

// CreateCustomerInput defines the data required to create a customer.
type CreateCustomerInput struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	TaxID        string
	CustomerType entity.CustomerType
	CreditLimit  float64
	Notes        string
}

// UpdateCustomerInput carries the customer fields open to change.
// Nil pointers mean the field is left untouched.
type UpdateCustomerInput struct {
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
	TaxID        *string
	CustomerType *entity.CustomerType
	CreditLimit  *float64
	Notes        *string
}

// CustomerUsecase defines the interface for customer management operations.
type CustomerUsecase interface {
	Create(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error)
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, input *ListInput) ([]*entity.Customer, error)
	Update(ctx context.Context, id string, input *UpdateCustomerInput) (*entity.Customer, error)
	Deactivate(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	Search(ctx context.Context, term string, limit int64) ([]*entity.Customer, error)
}
