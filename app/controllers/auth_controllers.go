// Package controllers maps HTTP requests onto the service layer and
// service errors onto statuses. Every failure body is {"message": "..."}.
package controllers

import (
	"errors"
	"net/http"

	"github.com/anvikawear/anvika/app/services"
	"github.com/anvikawear/anvika/pkg/bind"
	"github.com/anvikawear/anvika/pkg/logger"
	"github.com/anvikawear/anvika/pkg/middleware"
	"github.com/anvikawear/anvika/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type signupInput struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type signinInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
}

// tokenResponse is the body returned by signup and signin.
type tokenResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Signup handles POST /api/auth/signup.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var input signupInput
	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.Error(w, http.StatusBadRequest, bind.FirstError(errs))
		return
	}

	user, token, err := c.service.Signup(r.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			response.Error(w, http.StatusBadRequest, "Email already exists")
			return
		}
		logger.WithCtx(r.Context()).Error("signup failed", "error", err)
		response.Internal(w, "Error creating user")
		return
	}

	response.JSON(w, http.StatusCreated, tokenResponse{
		Token: token,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

// Signin handles POST /api/auth/signin.
func (c *AuthController) Signin(w http.ResponseWriter, r *http.Request) {
	var input signinInput
	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.Error(w, http.StatusBadRequest, bind.FirstError(errs))
		return
	}

	user, token, err := c.service.Signin(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// Same message for unknown email and wrong password.
			response.Unauthorized(w, "Invalid credentials")
			return
		}
		logger.WithCtx(r.Context()).Error("signin failed", "error", err)
		response.Internal(w, "Error signing in")
		return
	}

	response.JSON(w, http.StatusOK, tokenResponse{
		Token: token,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

// Me handles GET /api/auth/me. The profile is re-fetched from the store so
// it reflects the current role, not the token's possibly stale claims.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "No token provided")
		return
	}

	user, err := c.service.Profile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		logger.WithCtx(r.Context()).Error("profile fetch failed", "error", err)
		response.Internal(w, "Error fetching user")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// ChangePassword handles POST /api/auth/change-password.
func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "No token provided")
		return
	}

	var input changePasswordInput
	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.Error(w, http.StatusBadRequest, bind.FirstError(errs))
		return
	}

	err = c.service.ChangePassword(r.Context(), claims.UserID, input.CurrentPassword, input.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			response.Unauthorized(w, "Current password is incorrect")
		case errors.Is(err, services.ErrNotFound):
			response.NotFound(w, "User not found")
		default:
			logger.WithCtx(r.Context()).Error("password change failed", "error", err)
			response.Internal(w, "Error changing password")
		}
		return
	}

	response.Message(w, http.StatusOK, "Password changed successfully")
}
