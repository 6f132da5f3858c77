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
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
)

// baseRepository implements the generic CRUD contract for any document type.
// PT pins T's pointer type so Create can reach the embedded Base through the
// entity.Document interface without reflection.
type baseRepository[T any, PT interface {
	*T
	entity.Document
}] struct {
	coll *mongo.Collection
}

func newBaseRepository[T any, PT interface {
	*T
	entity.Document
}](coll *mongo.Collection) *baseRepository[T, PT] {
	return &baseRepository[T, PT]{coll: coll}
}

// buildFilter converts the transport-agnostic filter map into a bson document.
func buildFilter(filters repository.Filters) bson.M {
	filter := bson.M{}
	for key, value := range filters {
		filter[key] = value
	}

	return filter
}

// Create stamps the audit fields, inserts the document and returns the
// generated id as a hex string.
func (r *baseRepository[T, PT]) Create(ctx context.Context, doc *T) (string, error) {
	now := time.Now().UTC()
	base := PT(doc).Document()
	if base.ID.IsZero() {
		base.ID = primitive.NewObjectID()
	}
	base.CreatedAt = now
	base.UpdatedAt = now
	base.IsActive = true

	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domainerrors.ErrDuplicateField
		}

		return "", errors.Wrap(err, "failed to insert document")
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}

	return id.Hex(), nil
}

// GetByID returns the document with the given id, or (nil, nil) when the id
// is not a valid object id or no document matches.
func (r *baseRepository[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc T
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find document by id")
	}

	return &doc, nil
}

// GetAll returns a page of documents matching the filters.
func (r *baseRepository[T, PT]) GetAll(ctx context.Context, skip, limit int64, filters repository.Filters) ([]*T, error) {
	opts := options.Find().SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, buildFilter(filters), opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query documents")
	}
	defer cursor.Close(ctx)

	var docs []*T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode documents")
	}

	return docs, nil
}

// Update applies a partial $set to the document and refreshes updated_at.
// It reports whether a document was actually modified.
func (r *baseRepository[T, PT]) Update(ctx context.Context, id string, fields repository.Fields) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	for key, value := range fields {
		set[key] = value
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, domainerrors.ErrDuplicateField
		}

		return false, errors.Wrap(err, "failed to update document")
	}

	return result.ModifiedCount > 0, nil
}

// Deactivate soft-deletes the document by clearing its is_active flag.
func (r *baseRepository[T, PT]) Deactivate(ctx context.Context, id string) (bool, error) {
	return r.Update(ctx, id, repository.Fields{"is_active": false})
}

// Activate restores a soft-deleted document.
func (r *baseRepository[T, PT]) Activate(ctx context.Context, id string) (bool, error) {
	return r.Update(ctx, id, repository.Fields{"is_active": true})
}

// HardDelete permanently removes the document.
func (r *baseRepository[T, PT]) HardDelete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, errors.Wrap(err, "failed to delete document")
	}

	return result.DeletedCount > 0, nil
}

// Count returns the number of documents matching the filters.
func (r *baseRepository[T, PT]) Count(ctx context.Context, filters repository.Filters) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, buildFilter(filters))
	if err != nil {
		return 0, errors.Wrap(err, "failed to count documents")
	}

	return count, nil
}

// Exists reports whether at least one document matches the filters.
func (r *baseRepository[T, PT]) Exists(ctx context.Context, filters repository.Filters) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, buildFilter(filters), options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "failed to check document existence")
	}

	return count > 0, nil
}
