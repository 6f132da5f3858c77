package usecase

import (
	"context"
	"time"

	"backoffice/internal/domain/entity"
)

// SaleItemInput is one priced line of a new sale.
type SaleItemInput struct {
	ProductID string
	Quantity  int
	Discount  float64
}

// CreateSaleInput defines the data required to record a sale. The cashier is
// the authenticated identity, not part of the payload.
type CreateSaleInput struct {
	CustomerID       string
	CashierID        string
	CashierName      string
	Items            []SaleItemInput
	PaymentMethod    entity.PaymentMethod
	PaymentReference string
	DiscountAmount   float64
	Notes            string
}

// UpdateSaleInput carries the sale fields open to change after creation.
type UpdateSaleInput struct {
	Status           *entity.SaleStatus
	PaymentReference *string
	Notes            *string
}

// SaleUsecase defines the interface for sale recording and reporting operations.
type SaleUsecase interface {
	Create(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error)
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetBySaleNumber(ctx context.Context, saleNumber string) (*entity.Sale, error)
	List(ctx context.Context, input *ListInput) ([]*entity.Sale, error)
	Update(ctx context.Context, id string, input *UpdateSaleInput) (*entity.Sale, error)
	Cancel(ctx context.Context, id string) error
	GetByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error)
	GetByCashier(ctx context.Context, cashierID string) ([]*entity.Sale, error)
	GetDailySummary(ctx context.Context, date time.Time) (*entity.DailySummary, error)
	GetTopSellingProducts(ctx context.Context, limit int64) ([]*entity.TopProduct, error)
}
