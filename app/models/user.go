package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles assignable to a user. Signup always produces RoleUser; admins are
// provisioned by the seeder, never inferred from the signup payload.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account document in the users collection. Email carries a
// unique index; Password holds the bcrypt hash and is never serialised.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
