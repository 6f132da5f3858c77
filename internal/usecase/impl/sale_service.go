package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "backoffice/internal/delivery/context"
	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
	"backoffice/internal/usecase"
)

// saleService implements the SaleUsecase interface.
type saleService struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	logger       *slog.Logger
}

// SaleServiceParams holds dependencies for saleService, injected by Fx.
type SaleServiceParams struct {
	fx.In

	SaleRepo     repository.SaleRepository
	CustomerRepo repository.CustomerRepository
	ProductRepo  repository.ProductRepository
	Logger       *slog.Logger
}

// NewSaleService is the constructor for saleService.
func NewSaleService(params SaleServiceParams) usecase.SaleUsecase {
	return &saleService{
		saleRepo:     params.SaleRepo,
		customerRepo: params.CustomerRepo,
		productRepo:  params.ProductRepo,
		logger:       params.Logger,
	}
}

func (srv *saleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create records a completed sale: lines are priced from the catalog, stock is
// decremented, totals are derived and a daily sequential sale number is
// assigned. Credit sales additionally raise the customer's balance.
func (srv *saleService) Create(ctx context.Context, input *usecase.CreateSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("sale requires at least one item")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown payment method")
	}

	customer, err := srv.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "load customer for sale")
	}
	if customer == nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "customer not found")
	}

	items, err := srv.priceItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	var subtotal, taxAmount float64
	for _, item := range items {
		subtotal += item.Total
		taxAmount += item.TaxAmount
	}
	totalAmount := subtotal + taxAmount - input.DiscountAmount
	if totalAmount < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("discount exceeds sale total")
	}

	if input.PaymentMethod == entity.PaymentMethodCredit &&
		customer.CurrentBalance+totalAmount > customer.CreditLimit {
		return nil, domainerrors.ErrValidationFailed.WithDetails("credit limit exceeded")
	}

	saleNumber, err := srv.saleRepo.GenerateSaleNumber(ctx)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "generate sale number")
	}

	sale := &entity.Sale{
		SaleNumber:       saleNumber,
		CustomerID:       input.CustomerID,
		CustomerName:     customer.Name,
		CashierID:        input.CashierID,
		CashierName:      input.CashierName,
		Items:            items,
		Subtotal:         subtotal,
		DiscountAmount:   input.DiscountAmount,
		TaxAmount:        taxAmount,
		TotalAmount:      totalAmount,
		PaymentMethod:    input.PaymentMethod,
		PaymentReference: input.PaymentReference,
		Status:           entity.SaleStatusCompleted,
		Notes:            input.Notes,
		SaleDate:         time.Now().UTC(),
	}

	if _, err := srv.saleRepo.Create(ctx, sale); err != nil {
		return nil, domainerrors.NewStorageError(err, "create sale")
	}

	for _, item := range items {
		if _, err := srv.productRepo.UpdateStock(ctx, item.ProductID, -item.Quantity); err != nil {
			srv.log(ctx).Error("Failed to decrement stock after sale",
				slog.String("saleNumber", saleNumber), slog.String("productID", item.ProductID), slog.Any("error", err))
		}
	}

	if input.PaymentMethod == entity.PaymentMethodCredit {
		if _, err := srv.customerRepo.UpdateBalance(ctx, input.CustomerID, totalAmount); err != nil {
			srv.log(ctx).Error("Failed to raise customer balance after credit sale",
				slog.String("saleNumber", saleNumber), slog.String("customerID", input.CustomerID), slog.Any("error", err))
		}
	}

	srv.log(ctx).Info("Sale recorded",
		slog.String("saleNumber", saleNumber), slog.Float64("total", totalAmount))

	return sale, nil
}

// priceItems resolves each line against the catalog, checks stock and derives
// the per-line amounts.
func (srv *saleService) priceItems(ctx context.Context, inputs []usecase.SaleItemInput) ([]entity.SaleItem, error) {
	items := make([]entity.SaleItem, 0, len(inputs))
	for _, line := range inputs {
		if line.Quantity <= 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("item quantity must be positive")
		}
		if line.Discount < 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("item discount cannot be negative")
		}

		product, err := srv.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, domainerrors.NewStorageError(err, "load product for sale line")
		}
		if product == nil || !product.IsActive {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "product not found")
		}
		if product.StockQuantity < line.Quantity {
			return nil, domainerrors.ErrValidationFailed.WithDetails("insufficient stock for " + product.Name)
		}

		gross := float64(line.Quantity) * product.UnitPrice
		net := gross - line.Discount
		if net < 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("item discount exceeds line amount")
		}
		tax := net * product.TaxRate

		items = append(items, entity.SaleItem{
			ProductID:   line.ProductID,
			ProductName: product.Name,
			SKU:         product.SKU,
			Quantity:    line.Quantity,
			UnitPrice:   product.UnitPrice,
			Discount:    line.Discount,
			TaxRate:     product.TaxRate,
			Subtotal:    gross,
			TaxAmount:   tax,
			Total:       net,
		})
	}

	return items, nil
}

// GetByID returns the sale or ErrNotFound.
func (srv *saleService) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := srv.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "load sale")
	}
	if sale == nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "sale not found")
	}

	return sale, nil
}

// GetBySaleNumber returns the sale with the given number or ErrNotFound.
func (srv *saleService) GetBySaleNumber(ctx context.Context, saleNumber string) (*entity.Sale, error) {
	sale, err := srv.saleRepo.GetBySaleNumber(ctx, saleNumber)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "load sale by number")
	}
	if sale == nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "sale not found")
	}

	return sale, nil
}

// List returns a page of active sales.
func (srv *saleService) List(ctx context.Context, input *usecase.ListInput) ([]*entity.Sale, error) {
	sales, err := srv.saleRepo.GetAll(ctx, input.Skip, input.Limit, repository.Filters{"is_active": true})
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "list sales")
	}

	return sales, nil
}

// Update changes the mutable follow-up fields of a recorded sale.
func (srv *saleService) Update(ctx context.Context, id string, input *usecase.UpdateSaleInput) (*entity.Sale, error) {
	if _, err := srv.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields := repository.Fields{}
	if input.Status != nil {
		switch *input.Status {
		case entity.SaleStatusPending, entity.SaleStatusCompleted, entity.SaleStatusCancelled, entity.SaleStatusRefunded:
			fields["status"] = *input.Status
		default:
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown sale status")
		}
	}
	if input.PaymentReference != nil {
		fields["payment_reference"] = *input.PaymentReference
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}

	if len(fields) > 0 {
		if _, err := srv.saleRepo.Update(ctx, id, fields); err != nil {
			return nil, domainerrors.NewStorageError(err, "update sale")
		}
	}

	return srv.GetByID(ctx, id)
}

// Cancel voids a sale. Only pending sales can be cancelled.
func (srv *saleService) Cancel(ctx context.Context, id string) error {
	sale, err := srv.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if sale.Status != entity.SaleStatusPending {
		return domainerrors.ErrValidationFailed.WithDetails("only pending sales can be cancelled")
	}

	if _, err := srv.saleRepo.Update(ctx, id, repository.Fields{"status": entity.SaleStatusCancelled}); err != nil {
		return domainerrors.NewStorageError(err, "cancel sale")
	}
	srv.log(ctx).Info("Sale cancelled", slog.String("saleID", id))

	return nil
}

// GetByCustomer lists the customer's sales, most recent first.
func (srv *saleService) GetByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	sales, err := srv.saleRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "list sales by customer")
	}

	return sales, nil
}

// GetByCashier lists the cashier's sales, most recent first.
func (srv *saleService) GetByCashier(ctx context.Context, cashierID string) ([]*entity.Sale, error) {
	sales, err := srv.saleRepo.GetByCashier(ctx, cashierID)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "list sales by cashier")
	}

	return sales, nil
}

// GetDailySummary aggregates completed sales for the calendar day of date.
func (srv *saleService) GetDailySummary(ctx context.Context, date time.Time) (*entity.DailySummary, error) {
	summary, err := srv.saleRepo.GetDailySummary(ctx, date)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "daily sales summary")
	}

	return summary, nil
}

// GetTopSellingProducts ranks products in completed sales by quantity sold.
func (srv *saleService) GetTopSellingProducts(ctx context.Context, limit int64) ([]*entity.TopProduct, error) {
	if limit <= 0 {
		limit = 10
	}

	products, err := srv.saleRepo.GetTopSellingProducts(ctx, limit)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "top selling products")
	}

	return products, nil
}
