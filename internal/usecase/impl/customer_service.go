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

// customerService implements the CustomerUsecase interface.
type customerService struct {
	customerRepo repository.CustomerRepository
	logger       *slog.Logger
}

// CustomerServiceParams holds dependencies for customerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	CustomerRepo repository.CustomerRepository
	Logger       *slog.Logger
}

// NewCustomerService is the constructor for customerService.
func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{
		customerRepo: params.CustomerRepo,
		logger:       params.Logger,
	}
}

func (srv *customerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create stores a new customer after checking email and tax id uniqueness
// among active customers.
func (srv *customerService) Create(ctx context.Context, input *usecase.CreateCustomerInput) (*entity.Customer, error) {
	srv.log(ctx).Info("Creating customer", slog.String("email", input.Email))

	emailTaken, err := srv.customerRepo.EmailExists(ctx, input.Email, "")
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "check customer email uniqueness")
	}
	if emailTaken {
		return nil, domainerrors.ErrDuplicateField.WithDetails("email already registered")
	}

	taxIDTaken, err := srv.customerRepo.TaxIDExists(ctx, input.TaxID, "")
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "check customer tax id uniqueness")
	}
	if taxIDTaken {
		return nil, domainerrors.ErrDuplicateField.WithDetails("tax id already registered")
	}

	customerType := input.CustomerType
	if !customerType.IsValid() {
		customerType = entity.CustomerTypeIndividual
	}

	customer := &entity.Customer{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		TaxID:        input.TaxID,
		CustomerType: customerType,
		CreditLimit:  input.CreditLimit,
		Notes:        input.Notes,
	}

	if _, err := srv.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateField) {
			return nil, err
		}

		return nil, domainerrors.NewStorageError(err, "create customer")
	}

	srv.log(ctx).Info("Customer created", slog.String("customerID", customer.ID.Hex()))

	return customer, nil
}

// GetByID returns the customer or ErrNotFound.
func (srv *customerService) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := srv.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "load customer")
	}
	if customer == nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "customer not found")
	}

	return customer, nil
}

// List returns a page of active customers.
func (srv *customerService) List(ctx context.Context, input *usecase.ListInput) ([]*entity.Customer, error) {
	customers, err := srv.customerRepo.GetAll(ctx, input.Skip, input.Limit, repository.Filters{"is_active": true})
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "list customers")
	}

	return customers, nil
}

// Update applies partial changes after re-checking uniqueness for any new
// email or tax id, excluding the customer's own document.
func (srv *customerService) Update(ctx context.Context, id string, input *usecase.UpdateCustomerInput) (*entity.Customer, error) {
	existing, err := srv.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := repository.Fields{}

	if input.Email != nil && *input.Email != existing.Email {
		taken, err := srv.customerRepo.EmailExists(ctx, *input.Email, id)
		if err != nil {
			return nil, domainerrors.NewStorageError(err, "check customer email uniqueness")
		}
		if taken {
			return nil, domainerrors.ErrDuplicateField.WithDetails("email already registered")
		}
		fields["email"] = *input.Email
	}
	if input.TaxID != nil && *input.TaxID != existing.TaxID {
		taken, err := srv.customerRepo.TaxIDExists(ctx, *input.TaxID, id)
		if err != nil {
			return nil, domainerrors.NewStorageError(err, "check customer tax id uniqueness")
		}
		if taken {
			return nil, domainerrors.ErrDuplicateField.WithDetails("tax id already registered")
		}
		fields["tax_id"] = *input.TaxID
	}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
	}
	if input.Address != nil {
		fields["address"] = *input.Address
	}
	if input.CustomerType != nil {
		if !input.CustomerType.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown customer type")
		}
		fields["customer_type"] = *input.CustomerType
	}
	if input.CreditLimit != nil {
		fields["credit_limit"] = *input.CreditLimit
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}

	if len(fields) > 0 {
		if _, err := srv.customerRepo.Update(ctx, id, fields); err != nil {
			return nil, domainerrors.NewStorageError(err, "update customer")
		}
	}

	return srv.GetByID(ctx, id)
}

func (srv *customerService) setActive(ctx context.Context, id string, active bool) error {
	if _, err := srv.GetByID(ctx, id); err != nil {
		return err
	}

	var opErr error
	if active {
		_, opErr = srv.customerRepo.Activate(ctx, id)
	} else {
		_, opErr = srv.customerRepo.Deactivate(ctx, id)
	}
	if opErr != nil {
		return domainerrors.NewStorageError(opErr, "flip customer active flag")
	}

	return nil
}

// Deactivate soft-deletes the customer.
func (srv *customerService) Deactivate(ctx context.Context, id string) error {
	srv.log(ctx).Info("Deactivating customer", slog.String("customerID", id))

	return srv.setActive(ctx, id, false)
}

// Activate restores a soft-deleted customer.
func (srv *customerService) Activate(ctx context.Context, id string) error {
	srv.log(ctx).Info("Activating customer", slog.String("customerID", id))

	return srv.setActive(ctx, id, true)
}

// Search matches name, email or phone case-insensitively.
func (srv *customerService) Search(ctx context.Context, term string, limit int64) ([]*entity.Customer, error) {
	customers, err := srv.customerRepo.Search(ctx, term, limit)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "search customers")
	}

	return customers, nil
}
