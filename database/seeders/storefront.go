package seeders

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anvikawear/anvika/app/models"
	"github.com/anvikawear/anvika/app/repositories"
	"github.com/anvikawear/anvika/config"
	"github.com/anvikawear/anvika/pkg/auth"
)

func init() {
	Register("products", SeedProducts)
	Register("admin", SeedAdmin)
}

// SeedProducts inserts the sample catalogue, but only into an empty
// products collection.
func SeedProducts(ctx context.Context, db *mongo.Database) error {
	repo := repositories.NewProductRepository(db)

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	sample := []models.Product{
		{Name: "Men's Jacket", Price: 99.99, Category: "men", Description: "Stylish winter jacket for men"},
		{Name: "Women's Dress", Price: 79.99, Category: "women", Description: "Elegant evening dress"},
		{Name: "Kids' Hoodie", Price: 49.99, Category: "kids", Description: "Comfortable hoodie for children"},
		{Name: "Men's Sneakers", Price: 129.99, Category: "men", Description: "Premium athletic shoes"},
		{Name: "Women's Handbag", Price: 199.99, Category: "accessories", Description: "Designer leather handbag"},
		{Name: "Kids' T-Shirt", Price: 24.99, Category: "kids", Description: "Colorful cotton t-shirt"},
	}

	return repo.CreateMany(ctx, sample)
}

// SeedAdmin provisions the administrator account. This is the only path
// that creates an admin role: signup never does. Requires ADMIN_PASSWORD
// to be configured; refuses to seed a guessable default.
func SeedAdmin(ctx context.Context, db *mongo.Database) error {
	password := config.AdminPassword()
	if password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is not configured; skipping admin provisioning is unsafe")
	}

	repo := repositories.NewUserRepository(db)

	_, err := repo.FindByEmail(ctx, config.AdminEmail())
	if err == nil {
		return nil // already provisioned
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Admin",
		Email:    config.AdminEmail(),
		Password: hash,
		Role:     models.RoleAdmin,
	}
	return repo.Create(ctx, &admin)
}
