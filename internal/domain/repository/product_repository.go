package repository

import (
	"context"

	"backoffice/internal/domain/entity"
)

// ProductRepository persists catalog items.
type ProductRepository interface {
	CrudRepository[entity.Product]

	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	GetByCategory(ctx context.Context, category string) ([]*entity.Product, error)
	SKUExists(ctx context.Context, sku, excludeID string) (bool, error)

	// Search matches name, sku, barcode or category case-insensitively.
	Search(ctx context.Context, term string, limit int64) ([]*entity.Product, error)

	// GetLowStock lists active products at or below their minimum stock level.
	GetLowStock(ctx context.Context) ([]*entity.Product, error)

	// UpdateStock adds quantityChange (possibly negative) to the stock count.
	UpdateStock(ctx context.Context, id string, quantityChange int) (bool, error)
}
