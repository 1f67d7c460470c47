package api

import (
	"context"
	"net/http"
	"time"
)

// TimeoutMiddleware bounds the request context so store calls give up after timeout.
// The handler still owns the response; it reports the deadline as it would any store error.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
