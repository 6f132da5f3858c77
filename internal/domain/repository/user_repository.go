package repository

import (
	"context"

	"backoffice/internal/domain/entity"
)

// UserRepository persists identities. Lookups by email and username only
// consider active documents.
type UserRepository interface {
	CrudRepository[entity.User]

	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// EmailExists and UsernameExists optionally exclude one document id so
	// an update can keep its own value.
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	UsernameExists(ctx context.Context, username, excludeID string) (bool, error)

	UpdateLastLogin(ctx context.Context, id string) (bool, error)
	IncrementFailedAttempts(ctx context.Context, id string) (bool, error)
	ResetFailedAttempts(ctx context.Context, id string) (bool, error)
	LockUser(ctx context.Context, id string) (bool, error)
	UnlockUser(ctx context.Context, id string) (bool, error)
}
