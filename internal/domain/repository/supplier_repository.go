package repository

import (
	"context"

	"backoffice/internal/domain/entity"
)

// SupplierRepository persists vendors.
type SupplierRepository interface {
	CrudRepository[entity.Supplier]

	GetByEmail(ctx context.Context, email string) (*entity.Supplier, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Supplier, error)
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	TaxIDExists(ctx context.Context, taxID, excludeID string) (bool, error)

	// Search matches name, email or contact person case-insensitively.
	Search(ctx context.Context, term string, limit int64) ([]*entity.Supplier, error)
}
