package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout caps each request's context at the configured number of seconds.
// Zero or negative disables the cap.
func Timeout(seconds int) func(http.Handler) http.Handler {
	if seconds <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	d := time.Duration(seconds) * time.Second
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
