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

// productRepository is the MongoDB implementation of repository.ProductRepository.
type productRepository struct {
	*baseRepository[entity.Product, *entity.Product]
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *Database) repository.ProductRepository {
	return &productRepository{
		baseRepository: newBaseRepository[entity.Product](db.Collection(productsCollection)),
	}
}

func (r *productRepository) findOneActive(ctx context.Context, filter bson.M) (*entity.Product, error) {
	filter["is_active"] = true

	var product entity.Product
	if err := r.coll.FindOne(ctx, filter).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return &product, nil
}

func (r *productRepository) findActive(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*entity.Product, error) {
	filter["is_active"] = true

	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query products")
	}
	defer cursor.Close(ctx)

	var products []*entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "failed to decode products")
	}

	return products, nil
}

// GetBySKU returns the active product with the given SKU, or (nil, nil).
func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.findOneActive(ctx, bson.M{"sku": sku})
}

// GetByBarcode returns the active product with the given barcode, or (nil, nil).
func (r *productRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.findOneActive(ctx, bson.M{"barcode": barcode})
}

// GetByCategory lists active products in the category.
func (r *productRepository) GetByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	return r.findActive(ctx, bson.M{"category": category})
}

// SKUExists reports whether another active product already holds the SKU.
func (r *productRepository) SKUExists(ctx context.Context, sku, excludeID string) (bool, error) {
	return existsExcluding(ctx, r.coll, bson.M{"sku": sku}, excludeID)
}

// Search matches name, sku, barcode or category case-insensitively against term.
func (r *productRepository) Search(ctx context.Context, term string, limit int64) ([]*entity.Product, error) {
	pattern := searchPattern(term)
	filter := bson.M{
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"sku": pattern},
			bson.M{"barcode": pattern},
			bson.M{"category": pattern},
		},
	}

	return r.findActive(ctx, filter, options.Find().SetLimit(limit))
}

// GetLowStock lists active products at or below their minimum stock level.
func (r *productRepository) GetLowStock(ctx context.Context) ([]*entity.Product, error) {
	filter := bson.M{
		"$expr": bson.M{"$lte": bson.A{"$stock_quantity", "$min_stock_level"}},
	}

	return r.findActive(ctx, filter)
}

// UpdateStock adds quantityChange (possibly negative) to the stock count.
func (r *productRepository) UpdateStock(ctx context.Context, id string, quantityChange int) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$inc": bson.M{"stock_quantity": quantityChange},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return false, errors.Wrap(err, "failed to update product stock")
	}

	return result.ModifiedCount > 0, nil
}
