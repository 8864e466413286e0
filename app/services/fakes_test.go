package services_test

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anvikawear/anvika/app/models"
)

// fakeUserStore is an in-memory UserStore that mimics the unique email
// index with a duplicate-key write error, like the real collection does.
type fakeUserStore struct {
	users []models.User
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, mongo.ErrNoDocuments
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return models.User{}, mongo.ErrNoDocuments
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
		}
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Password = hash
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeUserStore) All(_ context.Context) ([]models.User, error) {
	return append([]models.User{}, f.users...), nil
}

type fakeProductStore struct {
	products []models.Product
}

func (f *fakeProductStore) Find(_ context.Context, category string) ([]models.Product, error) {
	if category == "" {
		return append([]models.Product{}, f.products...), nil
	}
	out := []models.Product{}
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) Create(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	f.products = append(f.products, *product)
	return nil
}

type fakeOrderStore struct {
	orders []models.Order
}

func (f *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderStore) FindAll(_ context.Context) ([]models.Order, error) {
	return append([]models.Order{}, f.orders...), nil
}

func (f *fakeOrderStore) FindByCustomerEmail(_ context.Context, email string) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		if o.CustomerEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}
