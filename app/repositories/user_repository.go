// Package repositories contains the MongoDB persistence layer: one
// repository per collection, all methods context-aware. Repositories return
// driver errors unwrapped; the service layer maps them onto the API's error
// taxonomy.
package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anvikawear/anvika/app/models"
	"github.com/anvikawear/anvika/pkg/database"
	"github.com/anvikawear/anvika/pkg/metrics"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db}
}

// col resolves the collection lazily so a repository can be constructed
// before (or without) a live connection, e.g. for route listing.
func (r *UserRepository) col() *mongo.Collection {
	return r.db.Collection(database.UsersCollection)
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	defer metrics.ObserveStoreOp(database.UsersCollection, "find", time.Now())

	var user models.User
	err := r.col().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, err
}

// FindByID looks up a user by the hex document ID carried in token claims.
func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	defer metrics.ObserveStoreOp(database.UsersCollection, "find", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, mongo.ErrNoDocuments
	}

	var user models.User
	err = r.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	return user, err
}

// Create persists a new user record. A duplicate-key error from the unique
// email index is returned as-is for the service layer to classify.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	defer metrics.ObserveStoreOp(database.UsersCollection, "insert", time.Now())

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.col().InsertOne(ctx, user)
	if err != nil {
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	defer metrics.ObserveStoreOp(database.UsersCollection, "update", time.Now())

	_, err := r.col().UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password":  hash,
		"updatedAt": time.Now(),
	}})
	return err
}

// All returns every user record.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	defer metrics.ObserveStoreOp(database.UsersCollection, "find", time.Now())

	cursor, err := r.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the number of user documents.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveStoreOp(database.UsersCollection, "count", time.Now())
	return r.col().CountDocuments(ctx, bson.M{})
}
