package repository

import (
	"context"

	"backoffice/internal/domain/entity"
)

// CustomerRepository persists customers.
type CustomerRepository interface {
	CrudRepository[entity.Customer]

	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Customer, error)
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	TaxIDExists(ctx context.Context, taxID, excludeID string) (bool, error)

	// Search matches name, email or phone case-insensitively.
	Search(ctx context.Context, term string, limit int64) ([]*entity.Customer, error)

	// UpdateBalance adds amount (possibly negative) to the current balance.
	UpdateBalance(ctx context.Context, id string, amount float64) (bool, error)
}
