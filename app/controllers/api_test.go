package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anvikawear/anvika/app/controllers"
	"github.com/anvikawear/anvika/app/models"
	"github.com/anvikawear/anvika/app/services"
	"github.com/anvikawear/anvika/pkg/auth"
	"github.com/anvikawear/anvika/pkg/middleware"
	"github.com/anvikawear/anvika/pkg/rbac"
	"github.com/anvikawear/anvika/pkg/router"
)

// In-memory stores standing in for the MongoDB repositories.

type memUsers struct {
	users []models.User
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, mongo.ErrNoDocuments
}

func (m *memUsers) FindByID(_ context.Context, id string) (models.User, error) {
	for _, u := range m.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return models.User{}, mongo.ErrNoDocuments
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
		}
	}
	user.ID = primitive.NewObjectID()
	m.users = append(m.users, *user)
	return nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Password = hash
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *memUsers) All(_ context.Context) ([]models.User, error) {
	return append([]models.User{}, m.users...), nil
}

type memProducts struct {
	products []models.Product
}

func (m *memProducts) Find(_ context.Context, category string) ([]models.Product, error) {
	if category == "" {
		return append([]models.Product{}, m.products...), nil
	}
	out := []models.Product{}
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) Create(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	m.products = append(m.products, *product)
	return nil
}

type memOrders struct {
	orders []models.Order
}

func (m *memOrders) Create(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	m.orders = append(m.orders, *order)
	return nil
}

func (m *memOrders) FindAll(_ context.Context) ([]models.Order, error) {
	return append([]models.Order{}, m.orders...), nil
}

func (m *memOrders) FindByCustomerEmail(_ context.Context, email string) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range m.orders {
		if o.CustomerEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

type testAPI struct {
	handler  http.Handler
	users    *memUsers
	products *memProducts
	orders   *memOrders
}

// newTestAPI mounts the storefront routes over in-memory stores, with the
// same grouping and guards as the production wiring.
func newTestAPI() *testAPI {
	users := &memUsers{}
	products := &memProducts{}
	orders := &memOrders{}

	authController := controllers.NewAuthController(services.NewAuthService(users))
	productController := controllers.NewProductController(services.NewCatalogService(products))
	orderController := controllers.NewOrderController(services.NewOrderService(orders))
	userController := controllers.NewUserController(services.NewUserService(users))

	r := router.New()
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", "auth.signup", authController.Signup)
	authGroup.Post("/signin", "auth.signin", authController.Signin)
	authGroup.Get("/me", "auth.me", authController.Me, middleware.Authenticate)
	authGroup.Post("/change-password", "auth.change_password", authController.ChangePassword, middleware.Authenticate)

	api.Get("/products", "products.list", productController.List)
	api.Post("/products", "products.create", productController.Create,
		middleware.Authenticate, rbac.HasRole(rbac.RoleAdmin))

	protected := api.Group("", middleware.Authenticate)
	protected.Post("/orders", "orders.create", orderController.Create)
	protected.Get("/orders", "orders.list", orderController.List)
	protected.Get("/users", "users.list", userController.List, rbac.HasRole(rbac.RoleAdmin))

	return &testAPI{handler: r.Handler(), users: users, products: products, orders: orders}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func (a *testAPI) signup(t *testing.T, name, email, password string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(primitive.NewObjectID().Hex(), "admin@example.com", "Admin", rbac.RoleAdmin)
	require.NoError(t, err)
	return token
}

func TestSignupAndMe(t *testing.T) {
	api := newTestAPI()
	token := api.signup(t, "Asha", "asha@example.com", "pw123456")

	rec := api.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Asha", body["name"])
	assert.Equal(t, "asha@example.com", body["email"])
	assert.Equal(t, "user", body["role"])
	assert.NotContains(t, body, "password")
}

func TestSignupValidation(t *testing.T) {
	api := newTestAPI()

	rec := api.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "A", "password": "pw123456",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "A", "email": "a@x.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupDuplicateEmail(t *testing.T) {
	api := newTestAPI()
	api.signup(t, "Asha", "asha@example.com", "pw123456")

	rec := api.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Imposter", "email": "asha@example.com", "password": "other-pw",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already exists", decode(t, rec)["message"])
}

func TestSigninSameMessageForBothFailures(t *testing.T) {
	api := newTestAPI()
	api.signup(t, "Asha", "asha@example.com", "pw123456")

	unknown := api.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": "nobody@example.com", "password": "pw123456",
	})
	wrongPw := api.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": "asha@example.com", "password": "wrong-password",
	})

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, "Invalid credentials", decode(t, unknown)["message"])
	assert.Equal(t, "Invalid credentials", decode(t, wrongPw)["message"])
}

func TestChangePasswordFlow(t *testing.T) {
	api := newTestAPI()
	token := api.signup(t, "Asha", "asha@example.com", "old-password")

	rec := api.do(t, http.MethodPost, "/api/auth/change-password", token, map[string]string{
		"currentPassword": "not-the-password", "newPassword": "new-password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Current password is incorrect", decode(t, rec)["message"])

	rec = api.do(t, http.MethodPost, "/api/auth/change-password", token, map[string]string{
		"currentPassword": "old-password", "newPassword": "new-password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": "asha@example.com", "password": "new-password",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductListIsPublic(t *testing.T) {
	api := newTestAPI()
	api.products.products = []models.Product{
		{Name: "Tee", Category: "tops"},
		{Name: "Jeans", Category: "bottoms"},
	}

	rec := api.do(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []models.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&products))
	assert.Len(t, products, 2)

	rec = api.do(t, http.MethodGet, "/api/products?category=tops", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	products = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "Tee", products[0].Name)
}

func TestProductCreateRequiresAdmin(t *testing.T) {
	api := newTestAPI()
	product := map[string]any{"name": "Tee", "price": 24.99, "category": "tops"}

	rec := api.do(t, http.MethodPost, "/api/products", "", product)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	userTok := api.signup(t, "Asha", "asha@example.com", "pw123456")
	rec = api.do(t, http.MethodPost, "/api/products", userTok, product)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", decode(t, rec)["message"])
	assert.Empty(t, api.products.products, "forbidden request must not change the catalogue")

	rec = api.do(t, http.MethodPost, "/api/products", adminToken(t), product)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, api.products.products, 1)
	assert.Equal(t, "Tee", api.products.products[0].Name)
}

func TestProductCreateAcceptsZeroPrice(t *testing.T) {
	api := newTestAPI()

	rec := api.do(t, http.MethodPost, "/api/products", adminToken(t), map[string]any{
		"name": "Freebie Sticker", "price": 0, "category": "promo",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, api.products.products, 1)
	assert.Zero(t, api.products.products[0].Price)

	rec = api.do(t, http.MethodPost, "/api/products", adminToken(t), map[string]any{
		"name": "Broken", "price": -1, "category": "promo",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderCreateForcesCallerEmail(t *testing.T) {
	api := newTestAPI()
	token := api.signup(t, "Asha", "asha@example.com", "pw123456")

	rec := api.do(t, http.MethodPost, "/api/orders", token, map[string]any{
		"customerEmail": "somebody-else@example.com",
		"items":         []map[string]any{{"productId": "p1", "name": "Tee", "price": 50, "quantity": 1}},
		"subtotal":      50,
		"shipping":      9.99,
		"tax":           4,
		"total":         63.99,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "asha@example.com", body["customerEmail"])
	assert.Equal(t, "pending", body["status"])

	require.Len(t, api.orders.orders, 1)
	assert.Equal(t, "asha@example.com", api.orders.orders[0].CustomerEmail)
}

func TestOrderCreateRejections(t *testing.T) {
	api := newTestAPI()
	token := api.signup(t, "Asha", "asha@example.com", "pw123456")

	rec := api.do(t, http.MethodPost, "/api/orders", token, map[string]any{"items": []any{}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Order must contain at least one item", decode(t, rec)["message"])

	rec = api.do(t, http.MethodPost, "/api/orders", token, map[string]any{
		"items": []map[string]any{{"price": 50, "quantity": 1}},
		"total": 1.00,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Order total does not match items", decode(t, rec)["message"])
	assert.Empty(t, api.orders.orders)
}

func TestOrderListScopedByRole(t *testing.T) {
	api := newTestAPI()
	api.orders.orders = []models.Order{
		{CustomerEmail: "asha@example.com"},
		{CustomerEmail: "ravi@example.com"},
	}

	token := api.signup(t, "Asha", "asha@example.com", "pw123456")
	rec := api.do(t, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "asha@example.com", orders[0].CustomerEmail)

	rec = api.do(t, http.MethodGet, "/api/orders", adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&orders))
	assert.Len(t, orders, 2)
}

func TestUserListAdminOnlyAndHidesHashes(t *testing.T) {
	api := newTestAPI()
	userTok := api.signup(t, "Asha", "asha@example.com", "pw123456")

	rec := api.do(t, http.MethodGet, "/api/users", userTok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/users", adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password", "hashes must never be serialised")
	assert.Contains(t, rec.Body.String(), "asha@example.com")
}

func TestUnknownRouteBody(t *testing.T) {
	api := newTestAPI()

	rec := api.do(t, http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode(t, rec)["message"])
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}
