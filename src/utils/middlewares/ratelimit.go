package middlewares

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"fittrack/src/utils"
	"fittrack/src/utils/ratelimit"
)

// RateLimit rejects a client with 429 once it exceeds the limiter's window
// quota. Clients are keyed by RemoteAddr, which middleware.RealIP rewrites
// only when service.trustProxy is set. A limiter failure lets the request
// through.
func RateLimit(limiter ratelimit.Limiter, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := limiter.Allow(r.Context(), ClientIP(r))
			if err != nil {
				logger.WithError(err).Warn("Rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				retryAfter := int(math.Ceil(result.RetryAfter(time.Now()).Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				utils.WriteError(w, utils.WithDetails(
					utils.TooManyRequests("Too many requests"),
					"rate limit exceeded, retry in "+strconv.Itoa(retryAfter)+" seconds",
				))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the host part of the request's remote address.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
