package usecase

import (
	"context"

	"backoffice/internal/domain/entity"
)

// CreateProductInput defines the data required to create a catalog item.
type CreateProductInput struct {
	Name          string
	Description   string
	SKU           string
	Barcode       string
	Category      string
	Brand         string
	UnitPrice     float64
	CostPrice     float64
	StockQuantity int
	MinStockLevel int
	MaxStockLevel int
	SupplierID    string
	TaxRate       float64
	Weight        float64
	Dimensions    string
	ImageURLs     []string
	Tags          []string
}

// UpdateProductInput carries the product fields open to change.
// Nil pointers mean the field is left untouched.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	SKU           *string
	Barcode       *string
	Category      *string
	Brand         *string
	UnitPrice     *float64
	CostPrice     *float64
	StockQuantity *int
	MinStockLevel *int
	MaxStockLevel *int
	SupplierID    *string
	TaxRate       *float64
	Weight        *float64
	Dimensions    *string
	ImageURLs     *[]string
	Status        *entity.ProductStatus
	Tags          *[]string
}

// ProductUsecase defines the interface for catalog management operations.
type ProductUsecase interface {
	Create(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	List(ctx context.Context, input *ListInput) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*entity.Product, error)
	Update(ctx context.Context, id string, input *UpdateProductInput) (*entity.Product, error)
	Deactivate(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	Search(ctx context.Context, term string, limit int64) ([]*entity.Product, error)
	GetLowStock(ctx context.Context) ([]*entity.Product, error)
	AdjustStock(ctx context.Context, id string, quantityChange int) error
}
