package kafka

import (
	"context"

	"go-hris-audit/internal/config"

	"github.com/cenkalti/backoff/v4"
)

// NewBackOff turns a retry policy into a bounded, jitter-free exponential
// backoff bound to ctx. MaxAttempts counts the first try.
func NewBackOff(ctx context.Context, policy config.RetryPolicy) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = policy.InitialInterval
	b.Multiplier = policy.Multiplier
	b.MaxInterval = policy.MaxInterval
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	// WithMaxRetries treats zero as unlimited.
	if policy.MaxAttempts <= 1 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(policy.MaxAttempts-1)), ctx)
}
