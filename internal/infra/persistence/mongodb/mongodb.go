// Package mongodb contains the concrete implementation of the persistence
// layer on top of the MongoDB document store.
package mongodb

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"

	"backoffice/config"
)

// Collection names used by the repositories.
const (
	usersCollection     = "users"
	customersCollection = "customers"
	productsCollection  = "products"
	suppliersCollection = "suppliers"
	salesCollection     = "sales"
)

// Database wraps the mongo client and the selected database handle.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// Params holds dependencies for the Database, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the mongo client and registers connect/disconnect hooks on the
// Fx lifecycle. The connection is verified and indexes are ensured on start.
func New(params Params) (*Database, error) {
	cfg := params.Config.Mongo

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetSocketTimeout(cfg.SocketTimeout)

	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create mongo client")
	}

	database := &Database{
		client: client,
		db:     client.Database(cfg.Database),
		logger: params.Logger,
	}

	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := database.Ping(ctx); err != nil {
				return errors.Wrap(err, "failed to ping mongo")
			}
			params.Logger.Info("Connected to MongoDB", slog.String("database", cfg.Database))

			if err := database.ensureIndexes(ctx); err != nil {
				// Index creation failures are not fatal; uniqueness is
				// still pre-checked at the service layer.
				params.Logger.Warn("Failed to create indexes", slog.Any("error", err))
			}

			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Disconnecting from MongoDB")

			return errors.WithStack(client.Disconnect(ctx))
		},
	})

	return database, nil
}

// Collection returns a handle for the named collection.
func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Ping verifies the connection against the primary.
func (d *Database) Ping(ctx context.Context) error {
	return errors.WithStack(d.client.Ping(ctx, readpref.Primary()))
}

// ensureIndexes creates the unique and lookup indexes every collection relies
// on. Unique indexes are the storage-level backstop for the service layer's
// check-then-insert uniqueness pre-checks.
func (d *Database) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "sku", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "barcode", Value: 1}}},
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		customersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "tax_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		suppliersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "tax_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		salesCollection: {
			{Keys: bson.D{{Key: "sale_number", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "customer_id", Value: 1}}},
			{Keys: bson.D{{Key: "cashier_id", Value: 1}}},
			{Keys: bson.D{{Key: "sale_date", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := d.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "create indexes for %s", name)
		}
	}

	return nil
}
