package controllers

import (
	"net/http"

	"github.com/anvikawear/anvika/app/services"
	"github.com/anvikawear/anvika/pkg/logger"
	"github.com/anvikawear/anvika/pkg/response"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// List handles GET /api/users. Admin-only (gated at the route); password
// hashes are excluded by the model's serialisation rules.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.service.List(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("user listing failed", "error", err)
		response.Internal(w, "Error fetching users")
		return
	}

	response.JSON(w, http.StatusOK, users)
}
