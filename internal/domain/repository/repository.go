// Package repository defines the persistence contracts of the domain layer.
// Implementations live under internal/infra/persistence.
package repository

import "context"

// Filters is a document-store query fragment passed through to the store.
// Services supply the default {"is_active": true} filter; the repository
// applies whatever it is given.
type Filters = map[string]any

// Fields is a partial document used for updates; only the listed fields
// are modified.
type Fields = map[string]any

// CrudRepository is the uniform contract every entity collection satisfies:
// create, read, offset-paginated listing, partial update, soft delete and
// aggregate helpers. GetByID treats a syntactically invalid id as absent,
// not as an error.
type CrudRepository[T any] interface {
	Create(ctx context.Context, doc *T) (string, error)
	GetByID(ctx context.Context, id string) (*T, error)
	GetAll(ctx context.Context, skip, limit int64, filters Filters) ([]*T, error)
	Update(ctx context.Context, id string, fields Fields) (bool, error)
	Deactivate(ctx context.Context, id string) (bool, error)
	Activate(ctx context.Context, id string) (bool, error)
	HardDelete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context, filters Filters) (int64, error)
	Exists(ctx context.Context, filters Filters) (bool, error)
}
