package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TransientError wraps a failure expected to succeed on retry: network
// errors, timeouts, rate limits, server-side 5xx. The marketplace client is
// responsible for the classification.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// RetryPolicy bounds whole-batch retries.
type RetryPolicy struct {
	// MaxAttempts is the total number of submissions per batch, including
	// the first. Values below one are clamped: a batch is always submitted
	// at least once.
	MaxAttempts int

	// BackoffBase is the sleep before the second attempt; it doubles for
	// each subsequent one.
	BackoffBase time.Duration
}

// Validate checks the policy for configuration faults.
func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 0 {
		return fmt.Errorf("retry max attempts must not be negative, got %d", p.MaxAttempts)
	}
	if p.BackoffBase < 0 {
		return fmt.Errorf("retry backoff base must not be negative, got %s", p.BackoffBase)
	}
	return nil
}

// attempts returns the effective submission budget.
func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// backoff returns the sleep before the given attempt (2, 3, ...).
func (p RetryPolicy) backoff(attempt int) time.Duration {
	d := p.BackoffBase
	for i := 2; i < attempt; i++ {
		d *= 2
	}
	return d
}

// sleep waits for the backoff duration, returning early on cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
