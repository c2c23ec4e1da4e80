package mid

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit returns middleware that applies a process-wide token bucket:
// rps sustained requests per second with the given burst. Requests over the
// limit get 429 without reaching the handler. Import endpoints use this to
// keep bulk loads from starving the analysis queries.
func RateLimit(rps float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
