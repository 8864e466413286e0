package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anvikawear/anvika/app/models"
	"github.com/anvikawear/anvika/pkg/auth"
	"github.com/anvikawear/anvika/pkg/database"
	"github.com/anvikawear/anvika/pkg/metrics"
)

// UserStore is the slice of the user repository the auth flows need.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
}

// AuthService implements signup, signin, profile and password change.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Signup creates a user account and issues a token. The role is always
// "user" — admin accounts come only from the seeder. A duplicate email,
// whether seen by a prior read or raced at insert time, yields
// ErrEmailTaken.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (models.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if database.IsDuplicateKey(err) {
			return models.User{}, "", ErrEmailTaken
		}
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email, user.Name, user.Role)
	if err != nil {
		return models.User{}, "", err
	}

	metrics.SignupsTotal.Inc()
	return user, token, nil
}

// Signin verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Signin(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email, user.Name, user.Role)
	if err != nil {
		return models.User{}, "", err
	}

	return user, token, nil
}

// Profile re-fetches the account behind a token, so it reflects the current
// name and role rather than possibly stale claims.
func (s *AuthService) Profile(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// ChangePassword verifies the current password before re-hashing and
// persisting the new one. A mismatch leaves the old password valid.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}

	if !auth.CheckPassword(user.Password, current) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, user.ID, hash)
}
