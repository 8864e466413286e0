package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatusPending is the status every order is created with. Later
// statuses are set by administrators outside this API's surface.
const OrderStatusPending = "pending"

// OrderItem is one line of a cart snapshot.
type OrderItem struct {
	ProductID string  `bson:"productId,omitempty" json:"productId,omitempty"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// Order is an immutable checkout snapshot. CustomerEmail is always taken
// from the creator's token claims, never from the request body, so a
// client cannot attribute an order to someone else.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Customer       string             `bson:"customer" json:"customer"`
	CustomerEmail  string             `bson:"customerEmail" json:"customerEmail"`
	Items          []OrderItem        `bson:"items" json:"items"`
	Subtotal       float64            `bson:"subtotal" json:"subtotal"`
	Shipping       float64            `bson:"shipping" json:"shipping"`
	Tax            float64            `bson:"tax" json:"tax"`
	Total          float64            `bson:"total" json:"total"`
	Status         string             `bson:"status" json:"status"`
	Date           string             `bson:"date" json:"date"`
	DeliveryDate   string             `bson:"deliveryDate" json:"deliveryDate"`
	PaymentMethod  string             `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	BillingAddress map[string]any     `bson:"billingAddress,omitempty" json:"billingAddress,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
