package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"
)

// supplierRepository is the MongoDB implementation of repository.SupplierRepository.
type supplierRepository struct {
	*baseRepository[entity.Supplier, *entity.Supplier]
}

// NewSupplierRepository is the constructor for supplierRepository.
func NewSupplierRepository(db *Database) repository.SupplierRepository {
	return &supplierRepository{
		baseRepository: newBaseRepository[entity.Supplier](db.Collection(suppliersCollection)),
	}
}

func (r *supplierRepository) findOneActive(ctx context.Context, filter bson.M) (*entity.Supplier, error) {
	filter["is_active"] = true

	var supplier entity.Supplier
	if err := r.coll.FindOne(ctx, filter).Decode(&supplier); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find supplier")
	}

	return &supplier, nil
}

// GetByEmail returns the active supplier with the given email, or (nil, nil).
func (r *supplierRepository) GetByEmail(ctx context.Context, email string) (*entity.Supplier, error) {
	return r.findOneActive(ctx, bson.M{"email": email})
}

// GetByTaxID returns the active supplier with the given tax id, or (nil, nil).
func (r *supplierRepository) GetByTaxID(ctx context.Context, taxID string) (*entity.Supplier, error) {
	return r.findOneActive(ctx, bson.M{"tax_id": taxID})
}

// EmailExists reports whether another active supplier already holds the email.
func (r *supplierRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	return existsExcluding(ctx, r.coll, bson.M{"email": email}, excludeID)
}

// TaxIDExists reports whether another active supplier already holds the tax id.
func (r *supplierRepository) TaxIDExists(ctx context.Context, taxID, excludeID string) (bool, error) {
	return existsExcluding(ctx, r.coll, bson.M{"tax_id": taxID}, excludeID)
}

// Search matches name, email or contact person case-insensitively against term.
func (r *supplierRepository) Search(ctx context.Context, term string, limit int64) ([]*entity.Supplier, error) {
	pattern := searchPattern(term)
	filter := bson.M{
		"is_active": true,
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
			bson.M{"contact_person": pattern},
		},
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, errors.Wrap(err, "failed to search suppliers")
	}
	defer cursor.Close(ctx)

	var suppliers []*entity.Supplier
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, errors.Wrap(err, "failed to decode suppliers")
	}

	return suppliers, nil
}
