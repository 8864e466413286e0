package services

import (
	"context"

	"github.com/anvikawear/anvika/app/models"
)

// UserLister is the read-only user listing the admin dashboard uses.
type UserLister interface {
	All(ctx context.Context) ([]models.User, error)
}

// UserService backs the admin user listing. Password hashes never leave the
// API: the model's hash field is excluded from serialisation.
type UserService struct {
	users UserLister
}

func NewUserService(users UserLister) *UserService {
	return &UserService{users: users}
}

// List returns every user record.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.All(ctx)
}
