package controllers

import (
	"errors"
	"net/http"

	"github.com/anvikawear/anvika/app/models"
	"github.com/anvikawear/anvika/app/services"
	"github.com/anvikawear/anvika/pkg/bind"
	"github.com/anvikawear/anvika/pkg/logger"
	"github.com/anvikawear/anvika/pkg/middleware"
	"github.com/anvikawear/anvika/pkg/response"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Create handles POST /api/orders. The body is the cart snapshot; the
// customer email in it (if any) is discarded in favour of the token's.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "No token provided")
		return
	}

	var order models.Order
	if _, err := bind.JSON(r, &order); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := c.service.Create(r.Context(), order, claims)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyOrder):
			response.Error(w, http.StatusBadRequest, "Order must contain at least one item")
		case errors.Is(err, services.ErrTotalMismatch):
			response.Error(w, http.StatusBadRequest, "Order total does not match items")
		default:
			logger.WithCtx(r.Context()).Error("order creation failed", "error", err)
			response.Internal(w, "Error creating order")
		}
		return
	}

	logger.WithCtx(r.Context()).Info("order created",
		"order_id", created.ID.Hex(),
		"customer_email", created.CustomerEmail,
		"total", created.Total,
	)
	response.JSON(w, http.StatusCreated, created)
}

// List handles GET /api/orders: the caller's own orders, or all of them
// for admins.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "No token provided")
		return
	}

	orders, err := c.service.List(r.Context(), claims)
	if err != nil {
		logger.WithCtx(r.Context()).Error("order listing failed", "error", err)
		response.Internal(w, "Error fetching orders")
		return
	}

	response.JSON(w, http.StatusOK, orders)
}
