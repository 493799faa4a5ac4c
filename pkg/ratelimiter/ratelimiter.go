// Package ratelimiter provides in-memory token-bucket rate limiting keyed by
// caller identity.
package ratelimiter

import (
	"sync"
	"time"
)

// Config defines the bucket shape shared by all clients.
type Config struct {
	// RequestsPerMinute is the sustained refill rate.
	RequestsPerMinute int

	// BurstSize is the bucket capacity.
	BurstSize int
}

// DefaultConfig matches one request per second sustained with a burst of ten.
func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 60,
		BurstSize:         10,
	}
}

type bucket struct {
	tokens     float64
	lastUpdate time.Time
}

// RateLimiter tracks one token bucket per client key.
//
// Buckets refill at RequestsPerMinute/60 tokens per second up to BurstSize.
// A background goroutine evicts buckets idle for over an hour; call Stop when
// the limiter is no longer needed.
type RateLimiter struct {
	config Config

	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewRateLimiter creates a rate limiter and starts its cleanup goroutine.
func NewRateLimiter(config Config) *RateLimiter {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = 60
	}
	if config.BurstSize <= 0 {
		config.BurstSize = 10
	}

	rl := &RateLimiter{
		config:      config,
		buckets:     make(map[string]*bucket),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

func (rl *RateLimiter) refillRate() float64 {
	return float64(rl.config.RequestsPerMinute) / 60.0
}

// Allow consumes one token for the given client key. It returns whether the
// request is allowed and, when it is not, the number of seconds after which
// a token will be available (for the Retry-After header).
func (rl *RateLimiter) Allow(key string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{
			tokens:     float64(rl.config.BurstSize),
			lastUpdate: now,
		}
		rl.buckets[key] = b
	}

	elapsed := now.Sub(b.lastUpdate).Seconds()
	b.tokens += elapsed * rl.refillRate()
	if b.tokens > float64(rl.config.BurstSize) {
		b.tokens = float64(rl.config.BurstSize)
	}
	b.lastUpdate = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}

	retryAfter := int((1-b.tokens)/rl.refillRate()) + 1
	return false, retryAfter
}

// cleanup periodically drops buckets that have been idle long enough to be
// full again, keeping memory bounded.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := rl.now().Add(-time.Hour)
			for key, b := range rl.buckets {
				if b.lastUpdate.Before(cutoff) {
					delete(rl.buckets, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCleanup:
			return
		}
	}
}

// Stop stops the cleanup goroutine. Safe to call multiple times.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopCleanup)
	})
}
