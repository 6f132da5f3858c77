package mongodb

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"
)

const saleNumberPrefix = "SALE"

// saleRepository is the MongoDB implementation of repository.SaleRepository.
type saleRepository struct {
	*baseRepository[entity.Sale, *entity.Sale]
}

// NewSaleRepository is the constructor for saleRepository.
func NewSaleRepository(db *Database) repository.SaleRepository {
	return &saleRepository{
		baseRepository: newBaseRepository[entity.Sale](db.Collection(salesCollection)),
	}
}

// GetBySaleNumber returns the sale with the given number, or (nil, nil).
func (r *saleRepository) GetBySaleNumber(ctx context.Context, saleNumber string) (*entity.Sale, error) {
	var sale entity.Sale
	if err := r.coll.FindOne(ctx, bson.M{"sale_number": saleNumber}).Decode(&sale); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find sale by number")
	}

	return &sale, nil
}

func (r *saleRepository) findRecent(ctx context.Context, filter bson.M) ([]*entity.Sale, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sale_date", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query sales")
	}
	defer cursor.Close(ctx)

	var sales []*entity.Sale
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, errors.Wrap(err, "failed to decode sales")
	}

	return sales, nil
}

// GetByCustomer lists the customer's sales, most recent first.
func (r *saleRepository) GetByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	return r.findRecent(ctx, bson.M{"customer_id": customerID})
}

// GetByCashier lists the cashier's sales, most recent first.
func (r *saleRepository) GetByCashier(ctx context.Context, cashierID string) ([]*entity.Sale, error) {
	return r.findRecent(ctx, bson.M{"cashier_id": cashierID})
}

// GetByDateRange lists sales whose sale date falls inside [start, end],
// most recent first.
func (r *saleRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	return r.findRecent(ctx, bson.M{
		"sale_date": bson.M{"$gte": start, "$lte": end},
	})
}

// GetDailySummary aggregates completed sales for the UTC calendar day of
// date. Sale dates are stored in UTC, so the day bounds must be too. Days
// without completed sales yield an all-zero summary.
func (r *saleRepository) GetDailySummary(ctx context.Context, date time.Time) (*entity.DailySummary, error) {
	date = date.UTC()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"sale_date": bson.M{"$gte": dayStart, "$lt": dayEnd},
			"status":    entity.SaleStatusCompleted,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"total_sales":    bson.M{"$sum": 1},
			"total_amount":   bson.M{"$sum": "$total_amount"},
			"total_tax":      bson.M{"$sum": "$tax_amount"},
			"total_discount": bson.M{"$sum": "$discount_amount"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate daily summary")
	}
	defer cursor.Close(ctx)

	var results []entity.DailySummary
	if err := cursor.All(ctx, &results); err != nil {
		return nil, errors.Wrap(err, "failed to decode daily summary")
	}

	if len(results) == 0 {
		return &entity.DailySummary{}, nil
	}

	return &results[0], nil
}

// GetTopSellingProducts ranks products in completed sales by quantity sold.
func (r *saleRepository) GetTopSellingProducts(ctx context.Context, limit int64) ([]*entity.TopProduct, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": entity.SaleStatusCompleted}}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$items.product_id",
			"product_name":   bson.M{"$first": "$items.product_name"},
			"total_quantity": bson.M{"$sum": "$items.quantity"},
			"total_revenue":  bson.M{"$sum": "$items.total"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total_quantity", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate top selling products")
	}
	defer cursor.Close(ctx)

	var products []*entity.TopProduct
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "failed to decode top selling products")
	}

	return products, nil
}

// GenerateSaleNumber returns the next SALE-YYYYMMDD-NNNN number for today.
// The sequence restarts at 0001 each calendar day.
func (r *saleRepository) GenerateSaleNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("%s-%s", saleNumberPrefix, time.Now().UTC().Format("20060102"))

	opts := options.FindOne().SetSort(bson.D{{Key: "sale_number", Value: -1}})
	filter := bson.M{"sale_number": primitive.Regex{Pattern: "^" + prefix}}

	var last entity.Sale
	err := r.coll.FindOne(ctx, filter, opts).Decode(&last)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Sprintf("%s-%04d", prefix, 1), nil
		}

		return "", errors.Wrap(err, "failed to find last sale number")
	}

	sequence := 0
	if suffix := strings.TrimPrefix(last.SaleNumber, prefix+"-"); suffix != last.SaleNumber {
		if parsed, err := strconv.Atoi(suffix); err == nil {
			sequence = parsed
		}
	}

	return fmt.Sprintf("%s-%04d", prefix, sequence+1), nil
}
