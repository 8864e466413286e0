package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anvikawear/anvika/app/models"
	"github.com/anvikawear/anvika/pkg/database"
	"github.com/anvikawear/anvika/pkg/metrics"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	db *mongo.Database
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) col() *mongo.Collection {
	return r.db.Collection(database.OrdersCollection)
}

// Create persists a checkout snapshot and fills in its assigned ID.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	defer metrics.ObserveStoreOp(database.OrdersCollection, "insert", time.Now())

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := r.col().InsertOne(ctx, order)
	if err != nil {
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

// FindAll returns every order, newest first.
func (r *OrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

// FindByCustomerEmail returns the orders attributed to one customer,
// newest first.
func (r *OrderRepository) FindByCustomerEmail(ctx context.Context, email string) ([]models.Order, error) {
	return r.find(ctx, bson.M{"customerEmail": email})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	defer metrics.ObserveStoreOp(database.OrdersCollection, "find", time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
