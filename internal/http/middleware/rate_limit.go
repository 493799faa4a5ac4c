package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Relancio/relancio/pkg/logger"
	"github.com/Relancio/relancio/pkg/metrics"
	"github.com/Relancio/relancio/pkg/ratelimiter"
)

// RateLimitMiddleware rejects clients that exceed the per-client token
// bucket with 429 and a Retry-After hint.
type RateLimitMiddleware struct {
	limiter *ratelimiter.RateLimiter
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewRateLimitMiddleware creates a new RateLimitMiddleware
func NewRateLimitMiddleware(limiter *ratelimiter.RateLimiter, m *metrics.Metrics, log logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		metrics: m,
		logger:  log,
	}
}

// Limit wraps a handler with the rate limit check.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)

		allowed, retryAfter := m.limiter.Allow(key)
		if !allowed {
			m.metrics.RateLimitedRequests.Inc()
			m.logger.WithFields(map[string]interface{}{
				"client": key,
				"path":   r.URL.Path,
			}).Warn("Request rate limited")

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success":    false,
				"error":      "rate limit exceeded",
				"error_type": "rate_limit_exceeded",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller: the first X-Forwarded-For hop when the
// service sits behind a proxy, the remote address otherwise.
func clientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.Index(forwarded, ","); idx >= 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx >= 0 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}
