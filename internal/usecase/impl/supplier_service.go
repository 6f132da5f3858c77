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

// supplierService implements the SupplierUsecase interface.
type supplierService struct {
	supplierRepo repository.SupplierRepository
	logger       *slog.Logger
}

// SupplierServiceParams holds dependencies for supplierService, injected by Fx.
type SupplierServiceParams struct {
	fx.In

	SupplierRepo repository.SupplierRepository
	Logger       *slog.Logger
}

// NewSupplierService is the constructor for supplierService.
func NewSupplierService(params SupplierServiceParams) usecase.SupplierUsecase {
	return &supplierService{
		supplierRepo: params.SupplierRepo,
		logger:       params.Logger,
	}
}

func (srv *supplierService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create stores a new supplier after checking email and tax id uniqueness
// among active suppliers.
func (srv *supplierService) Create(ctx context.Context, input *usecase.CreateSupplierInput) (*entity.Supplier, error) {
	srv.log(ctx).Info("Creating supplier", slog.String("email", input.Email))

	emailTaken, err := srv.supplierRepo.EmailExists(ctx, input.Email, "")
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "check supplier email uniqueness")
	}
	if emailTaken {
		return nil, domainerrors.ErrDuplicateField.WithDetails("email already registered")
	}

	taxIDTaken, err := srv.supplierRepo.TaxIDExists(ctx, input.TaxID, "")
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "check supplier tax id uniqueness")
	}
	if taxIDTaken {
		return nil, domainerrors.ErrDuplicateField.WithDetails("tax id already registered")
	}

	supplier := &entity.Supplier{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		TaxID:         input.TaxID,
		ContactPerson: input.ContactPerson,
		Website:       input.Website,
		PaymentTerms:  input.PaymentTerms,
		CreditLimit:   input.CreditLimit,
		Notes:         input.Notes,
	}

	if _, err := srv.supplierRepo.Create(ctx, supplier); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateField) {
			return nil, err
		}

		return nil, domainerrors.NewStorageError(err, "create supplier")
	}

	srv.log(ctx).Info("Supplier created", slog.String("supplierID", supplier.ID.Hex()))

	return supplier, nil
}

// GetByID returns the supplier or ErrNotFound.
func (srv *supplierService) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	supplier, err := srv.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "load supplier")
	}
	if supplier == nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "supplier not found")
	}

	return supplier, nil
}

// List returns a page of active suppliers.
func (srv *supplierService) List(ctx context.Context, input *usecase.ListInput) ([]*entity.Supplier, error) {
	suppliers, err := srv.supplierRepo.GetAll(ctx, input.Skip, input.Limit, repository.Filters{"is_active": true})
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "list suppliers")
	}

	return suppliers, nil
}

// Update applies partial changes after re-checking uniqueness for any new
// email or tax id, excluding the supplier's own document.
func (srv *supplierService) Update(ctx context.Context, id string, input *usecase.UpdateSupplierInput) (*entity.Supplier, error) {
	existing, err := srv.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := repository.Fields{}

	if input.Email != nil && *input.Email != existing.Email {
		taken, err := srv.supplierRepo.EmailExists(ctx, *input.Email, id)
		if err != nil {
			return nil, domainerrors.NewStorageError(err, "check supplier email uniqueness")
		}
		if taken {
			return nil, domainerrors.ErrDuplicateField.WithDetails("email already registered")
		}
		fields["email"] = *input.Email
	}
	if input.TaxID != nil && *input.TaxID != existing.TaxID {
		taken, err := srv.supplierRepo.TaxIDExists(ctx, *input.TaxID, id)
		if err != nil {
			return nil, domainerrors.NewStorageError(err, "check supplier tax id uniqueness")
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
	if input.ContactPerson != nil {
		fields["contact_person"] = *input.ContactPerson
	}
	if input.Website != nil {
		fields["website"] = *input.Website
	}
	if input.PaymentTerms != nil {
		fields["payment_terms"] = *input.PaymentTerms
	}
	if input.CreditLimit != nil {
		fields["credit_limit"] = *input.CreditLimit
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}

	if len(fields) > 0 {
		if _, err := srv.supplierRepo.Update(ctx, id, fields); err != nil {
			return nil, domainerrors.NewStorageError(err, "update supplier")
		}
	}

	return srv.GetByID(ctx, id)
}

func (srv *supplierService) setActive(ctx context.Context, id string, active bool) error {
	if _, err := srv.GetByID(ctx, id); err != nil {
		return err
	}

	var opErr error
	if active {
		_, opErr = srv.supplierRepo.Activate(ctx, id)
	} else {
		_, opErr = srv.supplierRepo.Deactivate(ctx, id)
	}
	if opErr != nil {
		return domainerrors.NewStorageError(opErr, "flip supplier active flag")
	}

	return nil
}

// Deactivate soft-deletes the supplier.
func (srv *supplierService) Deactivate(ctx context.Context, id string) error {
	srv.log(ctx).Info("Deactivating supplier", slog.String("supplierID", id))

	return srv.setActive(ctx, id, false)
}

// Activate restores a soft-deleted supplier.
func (srv *supplierService) Activate(ctx context.Context, id string) error {
	srv.log(ctx).Info("Activating supplier", slog.String("supplierID", id))

	return srv.setActive(ctx, id, true)
}

// Search matches name, email or contact person case-insensitively.
func (srv *supplierService) Search(ctx context.Context, term string, limit int64) ([]*entity.Supplier, error) {
	suppliers, err := srv.supplierRepo.Search(ctx, term, limit)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "search suppliers")
	}

	return suppliers, nil
}
