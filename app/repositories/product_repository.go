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

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *mongo.Database
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) col() *mongo.Collection {
	return r.db.Collection(database.ProductsCollection)
}

// Find returns products, optionally filtered by category. An empty category
// returns the whole catalogue.
func (r *ProductRepository) Find(ctx context.Context, category string) ([]models.Product, error) {
	defer metrics.ObserveStoreOp(database.ProductsCollection, "find", time.Now())

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	cursor, err := r.col().Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Create persists a new product and fills in its assigned ID.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveStoreOp(database.ProductsCollection, "insert", time.Now())

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := r.col().InsertOne(ctx, product)
	if err != nil {
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

// CreateMany inserts a batch of products; used by the catalogue seeder.
func (r *ProductRepository) CreateMany(ctx context.Context, products []models.Product) error {
	defer metrics.ObserveStoreOp(database.ProductsCollection, "insert", time.Now())

	docs := make([]interface{}, 0, len(products))
	now := time.Now()
	for i := range products {
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
		docs = append(docs, products[i])
	}

	_, err := r.col().InsertMany(ctx, docs)
	return err
}

// Count returns the number of product documents.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveStoreOp(database.ProductsCollection, "count", time.Now())
	return r.col().CountDocuments(ctx, bson.M{})
}
