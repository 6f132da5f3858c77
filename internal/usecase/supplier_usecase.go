package usecase

import (
	"context"

	"backoffice/internal/domain/entity"
)

// CreateSupplierInput defines the data required to create a supplier.
type CreateSupplierInput struct {
	Name          string
	Email         string
	Phone         string
	Address       string
	TaxID         string
	ContactPerson string
	Website       string
	PaymentTerms  string
	CreditLimit   float64
	Notes         string
}

// UpdateSupplierInput carries the supplier fields open to change.
// Nil pointers mean the field is left untouched.
type UpdateSupplierInput struct {
	Name          *string
	Email         *string
	Phone         *string
	Address       *string
	TaxID         *string
	ContactPerson *string
	Website       *string
	PaymentTerms  *string
	CreditLimit   *float64
	Notes         *string
}

// SupplierUsecase defines the interface for supplier management operations.
type SupplierUsecase interface {
	Create(ctx context.Context, input *CreateSupplierInput) (*entity.Supplier, error)
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context, input *ListInput) ([]*entity.Supplier, error)
	Update(ctx context.Context, id string, input *UpdateSupplierInput) (*entity.Supplier, error)
	Deactivate(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	Search(ctx context.Context, term string, limit int64) ([]*entity.Supplier, error)
}
