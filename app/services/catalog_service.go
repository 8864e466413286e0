package services

import (
	"context"

	"github.com/anvikawear/anvika/app/models"
)

// ProductStore is the slice of the product repository the catalogue needs.
type ProductStore interface {
	Find(ctx context.Context, category string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
}

// CatalogService serves the public catalogue and admin product creation.
type CatalogService struct {
	products ProductStore
}

func NewCatalogService(products ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

// List returns products matching the category filter; an empty filter
// returns the whole catalogue.
func (s *CatalogService) List(ctx context.Context, category string) ([]models.Product, error) {
	return s.products.Find(ctx, category)
}

// Create persists a new product and returns it with its assigned ID.
// Field validation happens at the controller boundary; role gating at the
// route.
func (s *CatalogService) Create(ctx context.Context, product models.Product) (models.Product, error) {
	if err := s.products.Create(ctx, &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}
