package routes

import (
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anvikawear/anvika/app/controllers"
	"github.com/anvikawear/anvika/app/repositories"
	"github.com/anvikawear/anvika/app/services"
	"github.com/anvikawear/anvika/pkg/middleware"
	"github.com/anvikawear/anvika/pkg/rbac"
	"github.com/anvikawear/anvika/pkg/response"
	"github.com/anvikawear/anvika/pkg/router"
)

// RegisterAPI wires every storefront route against the given database.
func RegisterAPI(r *router.Router, db *mongo.Database) {
	users := repositories.NewUserRepository(db)
	products := repositories.NewProductRepository(db)
	orders := repositories.NewOrderRepository(db)

	authController := controllers.NewAuthController(services.NewAuthService(users))
	productController := controllers.NewProductController(services.NewCatalogService(products))
	orderController := controllers.NewOrderController(services.NewOrderService(orders))
	userController := controllers.NewUserController(services.NewUserService(users))

	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

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
}
