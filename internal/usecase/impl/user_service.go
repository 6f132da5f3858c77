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
	"backoffice/internal/domain/service"
	"backoffice/internal/usecase"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		logger:   params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create hashes the password and stores a new account after checking email and
// username uniqueness among active users. The unique indexes are the backstop
// for the race between check and insert.
func (srv *userService) Create(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	srv.log(ctx).Info("Creating user", slog.String("email", input.Email))

	emailTaken, err := srv.userRepo.EmailExists(ctx, input.Email, "")
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "check email uniqueness")
	}
	if emailTaken {
		return nil, domainerrors.ErrDuplicateField.WithDetails("email already registered")
	}

	usernameTaken, err := srv.userRepo.UsernameExists(ctx, input.Username, "")
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "check username uniqueness")
	}
	if usernameTaken {
		return nil, domainerrors.ErrDuplicateField.WithDetails("username already taken")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	role := input.Role
	if !role.IsValid() {
		role = entity.RoleUser
	}
	permissions := input.Permissions
	if len(permissions) == 0 {
		permissions = entity.Permissions{entity.PermissionRead}
	}

	user := &entity.User{
		Email:          input.Email,
		Username:       input.Username,
		HashedPassword: hash,
		Role:           role,
		Permissions:    permissions,
		Profile:        input.Profile,
	}

	if _, err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateField) {
			return nil, err
		}

		return nil, domainerrors.NewStorageError(err, "create user")
	}

	srv.log(ctx).Info("User created", slog.String("userID", user.ID.Hex()))

	return user.Sanitized(), nil
}

// GetByID returns the user or ErrNotFound. The password hash never leaves
// this layer.
func (srv *userService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := srv.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "load user")
	}
	if user == nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "user not found")
	}

	return user.Sanitized(), nil
}

// List returns a page of active users.
func (srv *userService) List(ctx context.Context, input *usecase.ListInput) ([]*entity.User, error) {
	users, err := srv.userRepo.GetAll(ctx, input.Skip, input.Limit, repository.Filters{"is_active": true})
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "list users")
	}

	sanitized := make([]*entity.User, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitized())
	}

	return sanitized, nil
}

// Update applies administrator-level changes after re-checking uniqueness for
// any new email or username, excluding the user's own document.
func (srv *userService) Update(ctx context.Context, id string, input *usecase.UpdateUserInput) (*entity.User, error) {
	existing, err := srv.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "load user for update")
	}
	if existing == nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "user not found")
	}

	fields := repository.Fields{}

	if input.Email != nil && *input.Email != existing.Email {
		taken, err := srv.userRepo.EmailExists(ctx, *input.Email, id)
		if err != nil {
			return nil, domainerrors.NewStorageError(err, "check email uniqueness")
		}
		if taken {
			return nil, domainerrors.ErrDuplicateField.WithDetails("email already registered")
		}
		fields["email"] = *input.Email
	}
	if input.Username != nil && *input.Username != existing.Username {
		taken, err := srv.userRepo.UsernameExists(ctx, *input.Username, id)
		if err != nil {
			return nil, domainerrors.NewStorageError(err, "check username uniqueness")
		}
		if taken {
			return nil, domainerrors.ErrDuplicateField.WithDetails("username already taken")
		}
		fields["username"] = *input.Username
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown role")
		}
		fields["role"] = *input.Role
	}
	if input.Permissions != nil {
		fields["permissions"] = *input.Permissions
	}
	if input.IsVerified != nil {
		fields["is_verified"] = *input.IsVerified
	}

	if len(fields) > 0 {
		if _, err := srv.userRepo.Update(ctx, id, fields); err != nil {
			return nil, domainerrors.NewStorageError(err, "update user")
		}
	}

	return srv.GetByID(ctx, id)
}

// UpdateProfile changes the displayable profile fields of an account.
func (srv *userService) UpdateProfile(ctx context.Context, id string, input *usecase.UpdateProfileInput) (*entity.User, error) {
	existing, err := srv.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "load user for profile update")
	}
	if existing == nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "user not found")
	}

	fields := repository.Fields{}
	setIfPresent := func(key string, value *string) {
		if value != nil {
			fields["profile."+key] = *value
		}
	}
	setIfPresent("first_name", input.FirstName)
	setIfPresent("last_name", input.LastName)
	setIfPresent("phone", input.Phone)
	setIfPresent("address", input.Address)
	setIfPresent("avatar_url", input.AvatarURL)
	setIfPresent("bio", input.Bio)

	if len(fields) > 0 {
		if _, err := srv.userRepo.Update(ctx, id, fields); err != nil {
			return nil, domainerrors.NewStorageError(err, "update user profile")
		}
	}

	return srv.GetByID(ctx, id)
}

func (srv *userService) setActive(ctx context.Context, id string, active bool) error {
	existing, err := srv.userRepo.GetByID(ctx, id)
	if err != nil {
		return domainerrors.NewStorageError(err, "load user")
	}
	if existing == nil {
		return errors.Wrap(domainerrors.ErrNotFound, "user not found")
	}

	var opErr error
	if active {
		_, opErr = srv.userRepo.Activate(ctx, id)
	} else {
		_, opErr = srv.userRepo.Deactivate(ctx, id)
	}
	if opErr != nil {
		return domainerrors.NewStorageError(opErr, "flip user active flag")
	}

	return nil
}

// Deactivate soft-deletes the account.
func (srv *userService) Deactivate(ctx context.Context, id string) error {
	srv.log(ctx).Info("Deactivating user", slog.String("userID", id))

	return srv.setActive(ctx, id, false)
}

// Activate restores a soft-deleted account.
func (srv *userService) Activate(ctx context.Context, id string) error {
	srv.log(ctx).Info("Activating user", slog.String("userID", id))

	return srv.setActive(ctx, id, true)
}

// Unlock clears the locked state and the failed attempt counter.
func (srv *userService) Unlock(ctx context.Context, id string) error {
	existing, err := srv.userRepo.GetByID(ctx, id)
	if err != nil {
		return domainerrors.NewStorageError(err, "load user for unlock")
	}
	if existing == nil {
		return errors.Wrap(domainerrors.ErrNotFound, "user not found")
	}

	if _, err := srv.userRepo.UnlockUser(ctx, id); err != nil {
		return domainerrors.NewStorageError(err, "unlock user")
	}
	srv.log(ctx).Info("User unlocked", slog.String("userID", id))

	return nil
}
