package services

import (
	"context"
	"math"

	"github.com/anvikawear/anvika/app/models"
	"github.com/anvikawear/anvika/pkg/auth"
	"github.com/anvikawear/anvika/pkg/metrics"
	"github.com/anvikawear/anvika/pkg/rbac"
)

// OrderStore is the slice of the order repository checkout needs.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByCustomerEmail(ctx context.Context, email string) ([]models.Order, error)
}

// OrderService creates and lists checkout snapshots.
type OrderService struct {
	orders OrderStore
}

func NewOrderService(orders OrderStore) *OrderService {
	return &OrderService{orders: orders}
}

// Create persists a checkout snapshot attributed to the authenticated
// caller. The customer email always comes from the token claims — any
// client-supplied value is discarded — and the submitted total must agree
// with the server-side recomputation within TotalTolerance.
func (s *OrderService) Create(ctx context.Context, order models.Order, claims *auth.Claims) (models.Order, error) {
	if len(order.Items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}
	for i := range order.Items {
		if order.Items[i].Quantity < 1 {
			order.Items[i].Quantity = 1
		}
	}

	order.CustomerEmail = claims.Email
	if order.Customer == "" {
		order.Customer = claims.Name
	}

	totals := ComputeTotals(order.Items)
	if math.Abs(order.Total-totals.Total) > TotalTolerance {
		return models.Order{}, ErrTotalMismatch
	}

	order.Status = models.OrderStatusPending

	if err := s.orders.Create(ctx, &order); err != nil {
		return models.Order{}, err
	}

	metrics.OrdersCreated.Inc()
	return order, nil
}

// List returns every order for admins, and only the caller's own orders
// otherwise. The filter is the authenticated email; the client cannot
// widen it.
func (s *OrderService) List(ctx context.Context, claims *auth.Claims) ([]models.Order, error) {
	if rbac.RequireRole(claims, rbac.RoleAdmin) {
		return s.orders.FindAll(ctx)
	}
	return s.orders.FindByCustomerEmail(ctx, claims.Email)
}
