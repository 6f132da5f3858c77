package repository

import (
	"context"
	"time"

	"backoffice/internal/domain/entity"
)

// SaleRepository persists sales and runs the reporting aggregations.
type SaleRepository interface {
	CrudRepository[entity.Sale]

	GetBySaleNumber(ctx context.Context, saleNumber string) (*entity.Sale, error)
	GetByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error)
	GetByCashier(ctx context.Context, cashierID string) ([]*entity.Sale, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error)

	// GetDailySummary aggregates completed sales for the calendar day of date.
	GetDailySummary(ctx context.Context, date time.Time) (*entity.DailySummary, error)

	// GetTopSellingProducts ranks products by quantity sold.
	GetTopSellingProducts(ctx context.Context, limit int64) ([]*entity.TopProduct, error)

	// GenerateSaleNumber returns the next SALE-YYYYMMDD-NNNN number for
	// today, NNNN restarting at 0001 each day.
	GenerateSaleNumber(ctx context.Context) (string, error)
}
