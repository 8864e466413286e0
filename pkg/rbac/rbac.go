// Package rbac centralizes the role checks gating administrative routes.
package rbac

import (
	"net/http"

	"github.com/anvikawear/anvika/pkg/auth"
	"github.com/anvikawear/anvika/pkg/middleware"
	"github.com/anvikawear/anvika/pkg/response"
)

// Role values carried in token claims.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// RequireRole is the single policy predicate: does the caller hold the
// required role? Every role-gated handler goes through here rather than
// comparing strings inline.
func RequireRole(claims *auth.Claims, role string) bool {
	return claims != nil && claims.Role == role
}

// HasRole returns middleware that allows access only to callers whose token
// carries one of the given roles. Requires Authenticate to have already run.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := middleware.ClaimsFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w, "No token provided")
				return
			}

			for _, role := range roles {
				if RequireRole(claims, role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, "Admin access required")
		})
	}
}
