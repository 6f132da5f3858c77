package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "backoffice/internal/delivery/context"
	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
	"backoffice/internal/usecase"
)

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create stores a new catalog item after checking SKU uniqueness among active
// products.
func (srv *productService) Create(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Creating product", slog.String("sku", input.SKU))

	if input.SKU != "" {
		taken, err := srv.productRepo.SKUExists(ctx, input.SKU, "")
		if err != nil {
			return nil, domainerrors.NewStorageError(err, "check sku uniqueness")
		}
		if taken {
			return nil, domainerrors.ErrDuplicateField.WithDetails("sku already registered")
		}
	}

	product := &entity.Product{
		Name:          input.Name,
		Description:   input.Description,
		SKU:           input.SKU,
		Barcode:       input.Barcode,
		Category:      input.Category,
		Brand:         input.Brand,
		UnitPrice:     input.UnitPrice,
		CostPrice:     input.CostPrice,
		StockQuantity: input.StockQuantity,
		MinStockLevel: input.MinStockLevel,
		MaxStockLevel: input.MaxStockLevel,
		SupplierID:    input.SupplierID,
		TaxRate:       input.TaxRate,
		Weight:        input.Weight,
		Dimensions:    input.Dimensions,
		ImageURLs:     input.ImageURLs,
		Status:        entity.ProductStatusActive,
		Tags:          input.Tags,
	}

	if _, err := srv.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateField) {
			return nil, err
		}

		return nil, domainerrors.NewStorageError(err, "create product")
	}

	srv.log(ctx).Info("Product created", slog.String("productID", product.ID.Hex()))

	return product, nil
}

// GetByID returns the product or ErrNotFound.
func (srv *productService) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := srv.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "load product")
	}
	if product == nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "product not found")
	}

	return product, nil
}

// GetBySKU returns the active product with the SKU or ErrNotFound.
func (srv *productService) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	product, err := srv.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "load product by sku")
	}
	if product == nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "product not found")
	}

	return product, nil
}

// GetByBarcode returns the active product with the barcode or ErrNotFound.
func (srv *productService) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := srv.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "load product by barcode")
	}
	if product == nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "product not found")
	}

	return product, nil
}

// List returns a page of active products.
func (srv *productService) List(ctx context.Context, input *usecase.ListInput) ([]*entity.Product, error) {
	products, err := srv.productRepo.GetAll(ctx, input.Skip, input.Limit, repository.Filters{"is_active": true})
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "list products")
	}

	return products, nil
}

// ListByCategory lists active products in the category.
func (srv *productService) ListByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	products, err := srv.productRepo.GetByCategory(ctx, category)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "list products by category")
	}

	return products, nil
}

// Update applies partial changes after re-checking SKU uniqueness, excluding
// the product's own document.
func (srv *productService) Update(ctx context.Context, id string, input *usecase.UpdateProductInput) (*entity.Product, error) {
	existing, err := srv.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := repository.Fields{}

	if input.SKU != nil && *input.SKU != existing.SKU {
		taken, err := srv.productRepo.SKUExists(ctx, *input.SKU, id)
		if err != nil {
			return nil, domainerrors.NewStorageError(err, "check sku uniqueness")
		}
		if taken {
			return nil, domainerrors.ErrDuplicateField.WithDetails("sku already registered")
		}
		fields["sku"] = *input.SKU
	}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Barcode != nil {
		fields["barcode"] = *input.Barcode
	}
	if input.Category != nil {
		fields["category"] = *input.Category
	}
	if input.Brand != nil {
		fields["brand"] = *input.Brand
	}
	if input.UnitPrice != nil {
		fields["unit_price"] = *input.UnitPrice
	}
	if input.CostPrice != nil {
		fields["cost_price"] = *input.CostPrice
	}
	if input.StockQuantity != nil {
		fields["stock_quantity"] = *input.StockQuantity
	}
	if input.MinStockLevel != nil {
		fields["min_stock_level"] = *input.MinStockLevel
	}
	if input.MaxStockLevel != nil {
		fields["max_stock_level"] = *input.MaxStockLevel
	}
	if input.SupplierID != nil {
		fields["supplier_id"] = *input.SupplierID
	}
	if input.TaxRate != nil {
		fields["tax_rate"] = *input.TaxRate
	}
	if input.Weight != nil {
		fields["weight"] = *input.Weight
	}
	if input.Dimensions != nil {
		fields["dimensions"] = *input.Dimensions
	}
	if input.ImageURLs != nil {
		fields["image_urls"] = *input.ImageURLs
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown product status")
		}
		fields["status"] = *input.Status
	}
	if input.Tags != nil {
		fields["tags"] = *input.Tags
	}

	if len(fields) > 0 {
		if _, err := srv.productRepo.Update(ctx, id, fields); err != nil {
			return nil, domainerrors.NewStorageError(err, "update product")
		}
	}

	return srv.GetByID(ctx, id)
}

func (srv *productService) setActive(ctx context.Context, id string, active bool) error {
	if _, err := srv.GetByID(ctx, id); err != nil {
		return err
	}

	var opErr error
	if active {
		_, opErr = srv.productRepo.Activate(ctx, id)
	} else {
		_, opErr = srv.productRepo.Deactivate(ctx, id)
	}
	if opErr != nil {
		return domainerrors.NewStorageError(opErr, "flip product active flag")
	}

	return nil
}

// Deactivate soft-deletes the product.
func (srv *productService) Deactivate(ctx context.Context, id string) error {
	srv.log(ctx).Info("Deactivating product", slog.String("productID", id))

	return srv.setActive(ctx, id, false)
}

// Activate restores a soft-deleted product.
func (srv *productService) Activate(ctx context.Context, id string) error {
	srv.log(ctx).Info("Activating product", slog.String("productID", id))

	return srv.setActive(ctx, id, true)
}

// Search matches name, sku, barcode or category case-insensitively.
func (srv *productService) Search(ctx context.Context, term string, limit int64) ([]*entity.Product, error) {
	products, err := srv.productRepo.Search(ctx, term, limit)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "search products")
	}

	return products, nil
}

// GetLowStock lists active products at or below their minimum stock level.
func (srv *productService) GetLowStock(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "list low stock products")
	}

	return products, nil
}

// AdjustStock adds quantityChange (possibly negative) to the stock count.
func (srv *productService) AdjustStock(ctx context.Context, id string, quantityChange int) error {
	existing, err := srv.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.StockQuantity+quantityChange < 0 {
		return domainerrors.ErrValidationFailed.WithDetails("stock cannot go negative")
	}

	if _, err := srv.productRepo.UpdateStock(ctx, id, quantityChange); err != nil {
		return domainerrors.NewStorageError(err, "adjust product stock")
	}
	srv.log(ctx).Info("Stock adjusted", slog.String("productID", id), slog.Int("change", quantityChange))

	return nil
}
