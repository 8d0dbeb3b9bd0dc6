package middleware

import (
	"net/http"
	"strconv"

	"vaultkeep/internal/api/presenter"
	"vaultkeep/internal/ratelimit"
)

// RateLimit checks every request against the shared limiter before it
// reaches the mux. Rejected requests get a Retry-After header with the
// seconds left in the current window.
func RateLimit(limiter *ratelimit.Limiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := limiter.Check(r)
			if !decision.Allowed {
				retryAfter := int(decision.RetryAfter.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				presenter.Error(w, r, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
