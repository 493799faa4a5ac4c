package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy(t *testing.T) {
	policy := retryPolicy{
		maxRetries: 3,
		backoff:    500 * time.Millisecond,
		statuses:   statusSet(429, 503),
	}

	t.Run("attempts counts the initial request", func(t *testing.T) {
		assert.Equal(t, 4, policy.attempts())
	})

	t.Run("backoff doubles per retry", func(t *testing.T) {
		assert.Equal(t, 500*time.Millisecond, policy.backoffFor(2))
		assert.Equal(t, time.Second, policy.backoffFor(3))
		assert.Equal(t, 2*time.Second, policy.backoffFor(4))
	})

	t.Run("only listed statuses are retryable", func(t *testing.T) {
		assert.True(t, policy.retryableStatus(503))
		assert.False(t, policy.retryableStatus(500))
	})
}
