package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvikawear/anvika/app/models"
	"github.com/anvikawear/anvika/app/services"
	"github.com/anvikawear/anvika/pkg/auth"
	"github.com/anvikawear/anvika/pkg/rbac"
)

func userClaims(name, email string) *auth.Claims {
	return &auth.Claims{UserID: "id", Email: email, Name: name, Role: rbac.RoleUser}
}

func TestCreateOrderAttributedToCaller(t *testing.T) {
	ctx := context.Background()
	store := &fakeOrderStore{}
	svc := services.NewOrderService(store)

	order, err := svc.Create(ctx, models.Order{
		// The client-supplied attribution is discarded.
		CustomerEmail: "somebody-else@x.com",
		Items:         []models.OrderItem{{ProductID: "p1", Name: "Tee", Price: 50, Quantity: 1}},
		Subtotal:      50,
		Shipping:      9.99,
		Tax:           4,
		Total:         63.99,
	}, userClaims("Asha", "asha@example.com"))

	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", order.CustomerEmail)
	assert.Equal(t, "Asha", order.Customer)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.False(t, order.ID.IsZero())

	require.Len(t, store.orders, 1)
	assert.Equal(t, "asha@example.com", store.orders[0].CustomerEmail)
}

func TestCreateOrderKeepsSubmittedCustomerName(t *testing.T) {
	ctx := context.Background()
	svc := services.NewOrderService(&fakeOrderStore{})

	order, err := svc.Create(ctx, models.Order{
		Customer: "Gift for Ravi",
		Items:    []models.OrderItem{{Price: 50, Quantity: 1}},
		Total:    63.99,
	}, userClaims("Asha", "asha@example.com"))

	require.NoError(t, err)
	assert.Equal(t, "Gift for Ravi", order.Customer)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	svc := services.NewOrderService(&fakeOrderStore{})

	_, err := svc.Create(context.Background(), models.Order{}, userClaims("A", "a@x.com"))
	assert.ErrorIs(t, err, services.ErrEmptyOrder)
}

func TestCreateOrderRejectsTotalMismatch(t *testing.T) {
	store := &fakeOrderStore{}
	svc := services.NewOrderService(store)

	_, err := svc.Create(context.Background(), models.Order{
		Items: []models.OrderItem{{Price: 50, Quantity: 1}},
		Total: 49.99, // correct total is 63.99
	}, userClaims("A", "a@x.com"))

	assert.ErrorIs(t, err, services.ErrTotalMismatch)
	assert.Empty(t, store.orders, "rejected order must not be persisted")
}

func TestCreateOrderToleratesPennyDrift(t *testing.T) {
	svc := services.NewOrderService(&fakeOrderStore{})

	_, err := svc.Create(context.Background(), models.Order{
		Items: []models.OrderItem{{Price: 50, Quantity: 1}},
		Total: 63.985, // within the rounding tolerance of 63.99
	}, userClaims("A", "a@x.com"))

	assert.NoError(t, err)
}

func TestListOrdersScopedByRole(t *testing.T) {
	ctx := context.Background()
	store := &fakeOrderStore{orders: []models.Order{
		{CustomerEmail: "asha@example.com"},
		{CustomerEmail: "ravi@example.com"},
		{CustomerEmail: "asha@example.com"},
	}}
	svc := services.NewOrderService(store)

	own, err := svc.List(ctx, userClaims("Asha", "asha@example.com"))
	require.NoError(t, err)
	require.Len(t, own, 2)
	for _, o := range own {
		assert.Equal(t, "asha@example.com", o.CustomerEmail)
	}

	admin := &auth.Claims{UserID: "id", Email: "admin@example.com", Role: rbac.RoleAdmin}
	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
