// Package database owns the MongoDB client for the storefront.
//
// The store is the single source of durable state: three collections
// (users, products, orders) plus an optional log collection. The unique
// index on users.email is created here so the store — not application
// logic — enforces email uniqueness under concurrent signups.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anvikawear/anvika/config"
)

// Collection names.
const (
	UsersCollection    = "users"
	ProductsCollection = "products"
	OrdersCollection   = "orders"
	LogsCollection     = "logs"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB connection, verifies it with a ping, and
// ensures the indexes the application relies on.
func Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := c.Ping(connectCtx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDatabase())

	return ensureIndexes(connectCtx)
}

func ensureIndexes(ctx context.Context) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("database: users email index: %w", err)
	}

	// Category is the only catalogue filter the storefront exposes.
	_, err = db.Collection(ProductsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("database: products category index: %w", err)
	}

	// Non-admin order listing filters on customerEmail.
	_, err = db.Collection(OrdersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "customerEmail", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("database: orders customerEmail index: %w", err)
	}

	return nil
}

// DB returns the application database. Connect must have succeeded first.
func DB() *mongo.Database {
	return db
}

// Disconnect closes the client. Safe to call when Connect never ran.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// IsDuplicateKey reports whether err is a unique-index violation, e.g. two
// concurrent signups racing on the same email.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
