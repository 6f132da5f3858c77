package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/usecase"
)

func newProductFixture(t *testing.T) (*fakeProductRepo, usecase.ProductUsecase) {
	t.Helper()

	repo := newFakeProductRepo()
	service := NewProductService(ProductServiceParams{
		ProductRepo: repo,
		Logger:      testLogger(),
	})

	return repo, service
}

func TestProductService_CreateStartsActive(t *testing.T) {
	_, service := newProductFixture(t)

	product, err := service.Create(context.Background(), &usecase.CreateProductInput{
		Name:      "Keyboard",
		SKU:       "KB-01",
		UnitPrice: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusActive, product.Status)
	assert.False(t, product.ID.IsZero())
}

func TestProductService_CreateDuplicateSKU(t *testing.T) {
	repo, service := newProductFixture(t)
	repo.add(&entity.Product{Name: "Keyboard", SKU: "KB-01"})

	_, err := service.Create(context.Background(), &usecase.CreateProductInput{
		Name: "Other Keyboard",
		SKU:  "KB-01",
	})
	assertDuplicateField(t, err, "sku already registered")
}

func TestProductService_CreateAllowsEmptySKU(t *testing.T) {
	repo, service := newProductFixture(t)
	repo.add(&entity.Product{Name: "Loose item"})

	// Products without a SKU skip the uniqueness check entirely.
	_, err := service.Create(context.Background(), &usecase.CreateProductInput{
		Name: "Another loose item",
	})
	assert.NoError(t, err)
}

func TestProductService_GetBySKUNotFound(t *testing.T) {
	_, service := newProductFixture(t)

	product, err := service.GetBySKU(context.Background(), "KB-404")
	assert.Nil(t, product)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProductService_AdjustStock(t *testing.T) {
	repo, service := newProductFixture(t)
	product := repo.add(&entity.Product{Name: "Keyboard", StockQuantity: 5})

	require.NoError(t, service.AdjustStock(context.Background(), product.ID.Hex(), -3))
	assert.Equal(t, 2, product.StockQuantity)

	require.NoError(t, service.AdjustStock(context.Background(), product.ID.Hex(), 10))
	assert.Equal(t, 12, product.StockQuantity)
}

func TestProductService_AdjustStockCannotGoNegative(t *testing.T) {
	repo, service := newProductFixture(t)
	product := repo.add(&entity.Product{Name: "Keyboard", StockQuantity: 2})

	err := service.AdjustStock(context.Background(), product.ID.Hex(), -3)
	assertValidationFailed(t, err, "stock cannot go negative")
	assert.Equal(t, 2, product.StockQuantity)
}

func TestProductService_UpdateRejectsUnknownStatus(t *testing.T) {
	repo, service := newProductFixture(t)
	product := repo.add(&entity.Product{Name: "Keyboard"})

	bogus := entity.ProductStatus("retired")
	_, err := service.Update(context.Background(), product.ID.Hex(), &usecase.UpdateProductInput{
		Status: &bogus,
	})
	assertValidationFailed(t, err, "unknown product status")
}

func TestProductService_GetLowStock(t *testing.T) {
	repo, service := newProductFixture(t)
	repo.add(&entity.Product{Name: "Low", StockQuantity: 1, MinStockLevel: 5})
	repo.add(&entity.Product{Name: "Fine", StockQuantity: 50, MinStockLevel: 5})

	products, err := service.GetLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Low", products[0].Name)
}
