package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anvikawear/anvika/pkg/auth"
	"github.com/anvikawear/anvika/pkg/response"
)

// claimsKey is the unexported context key for the decoded token claims.
type claimsKey struct{}

// Authenticate verifies the bearer token on every protected request and
// stores the decoded claims in the request context for downstream handlers.
// Missing token → 401 "No token provided"; failed verification (bad
// signature, malformed, expired) → 401 "Invalid token".
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")

		if header == "" || token == header {
			response.Unauthorized(w, "No token provided")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the claims stored by Authenticate.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// WithClaims stores claims in ctx directly. Used by tests to exercise
// handlers without minting real tokens.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}
