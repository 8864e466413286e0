package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/anvikawear/anvika/pkg/logger"
	"github.com/anvikawear/anvika/pkg/response"
)

// Recovery catches any panic in downstream handlers, logs the stack trace
// server-side, and returns a generic 500 to the client.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()
				logger.WithCtx(r.Context()).Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(stack),
					"method", r.Method,
					"path", r.URL.Path,
				)
				response.Internal(w, "Something went wrong!")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
