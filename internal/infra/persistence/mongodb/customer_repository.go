package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"
)

// customerRepository is the MongoDB implementation of repository.CustomerRepository.
type customerRepository struct {
	*baseRepository[entity.Customer, *entity.Customer]
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(db *Database) repository.CustomerRepository {
	return &customerRepository{
		baseRepository: newBaseRepository[entity.Customer](db.Collection(customersCollection)),
	}
}

func (r *customerRepository) findOneActive(ctx context.Context, filter bson.M) (*entity.Customer, error) {
	filter["is_active"] = true

	var customer entity.Customer
	if err := r.coll.FindOne(ctx, filter).Decode(&customer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find customer")
	}

	return &customer, nil
}

// GetByEmail returns the active customer with the given email, or (nil, nil).
func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	return r.findOneActive(ctx, bson.M{"email": email})
}

// GetByTaxID returns the active customer with the given tax id, or (nil, nil).
func (r *customerRepository) GetByTaxID(ctx context.Context, taxID string) (*entity.Customer, error) {
	return r.findOneActive(ctx, bson.M{"tax_id": taxID})
}

// EmailExists reports whether another active customer already holds the email.
func (r *customerRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	return existsExcluding(ctx, r.coll, bson.M{"email": email}, excludeID)
}

// TaxIDExists reports whether another active customer already holds the tax id.
func (r *customerRepository) TaxIDExists(ctx context.Context, taxID, excludeID string) (bool, error) {
	return existsExcluding(ctx, r.coll, bson.M{"tax_id": taxID}, excludeID)
}

// Search matches name, email or phone case-insensitively against term.
func (r *customerRepository) Search(ctx context.Context, term string, limit int64) ([]*entity.Customer, error) {
	pattern := searchPattern(term)
	filter := bson.M{
		"is_active": true,
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
			bson.M{"phone": pattern},
		},
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, errors.Wrap(err, "failed to search customers")
	}
	defer cursor.Close(ctx)

	var customers []*entity.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, errors.Wrap(err, "failed to decode customers")
	}

	return customers, nil
}

// UpdateBalance adds amount (possibly negative) to the current balance.
func (r *customerRepository) UpdateBalance(ctx context.Context, id string, amount float64) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$inc": bson.M{"current_balance": amount},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return false, errors.Wrap(err, "failed to update customer balance")
	}

	return result.ModifiedCount > 0, nil
}
