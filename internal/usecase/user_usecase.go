package usecase

import (
	"context"

	"backoffice/internal/domain/entity"
)

// ListInput is the shared offset pagination input for list operations.
type ListInput struct {
	Skip  int64
	Limit int64
}

// CreateUserInput defines the data required to create a user account.
type CreateUserInput struct {
	Email       string
	Username    string
	Password    string
	Role        entity.Role
	Permissions entity.Permissions
	Profile     entity.UserProfile
}

// UpdateUserInput carries the fields an administrator may change on a user.
// Nil pointers mean the field is left untouched.
type UpdateUserInput struct {
	Email       *string
	Username    *string
	Role        *entity.Role
	Permissions *entity.Permissions
	IsVerified  *bool
}

// UpdateProfileInput carries the profile fields a user may change on themselves.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
	AvatarURL *string
	Bio       *string
}

// UserUsecase defines the interface for user management operations.
type UserUsecase interface {
	Create(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context, input *ListInput) ([]*entity.User, error)
	Update(ctx context.Context, id string, input *UpdateUserInput) (*entity.User, error)
	UpdateProfile(ctx context.Context, id string, input *UpdateProfileInput) (*entity.User, error)
	Deactivate(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	Unlock(ctx context.Context, id string) error
}
