package service

import (
	"context"
	"time"
)

// retryPolicy controls repeated delivery attempts against a collaborator.
// maxRetries counts retries after the initial attempt, so a policy with
// maxRetries 2 performs up to 3 requests. An attempt is retried on transport
// errors and on the listed status codes.
type retryPolicy struct {
	maxRetries int
	backoff    time.Duration
	statuses   map[int]struct{}
}

func (p retryPolicy) attempts() int {
	return p.maxRetries + 1
}

// backoffFor returns the wait before the given attempt, doubling per retry:
// backoff, 2x, 4x. attempt is 1-based; the first attempt never waits.
func (p retryPolicy) backoffFor(attempt int) time.Duration {
	return p.backoff << (attempt - 2)
}

func (p retryPolicy) retryableStatus(status int) bool {
	_, ok := p.statuses[status]
	return ok
}

// sleepContext waits for the retry delay unless the context ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func statusSet(codes ...int) map[int]struct{} {
	set := make(map[int]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}
