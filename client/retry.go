package odmclient

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// RetryPolicy decides whether a failed operation should be retried.
type RetryPolicy interface {
	ShouldRetry(err error) (bool, time.Duration)
}

// RetryPolicyFunc adapts a function to the RetryPolicy interface.
type RetryPolicyFunc func(err error) (bool, time.Duration)

// ShouldRetry implements the RetryPolicy interface.
func (f RetryPolicyFunc) ShouldRetry(err error) (bool, time.Duration) {
	return f(err)
}

// DefaultRetryPolicy retries driver timeouts and transient server errors with
// linear backoff.
var DefaultRetryPolicy RetryPolicy = RetryPolicyFunc(func(err error) (bool, time.Duration) {
	switch {
	case err == nil:
		return false, 0
	case mongo.IsTimeout(err):
		return true, 500 * time.Millisecond
	case hasTransientLabel(err):
		return true, 500 * time.Millisecond
	default:
		return false, 0
	}
})

func hasTransientLabel(err error) bool {
	var serverErr mongo.ServerError
	if !errors.As(err, &serverErr) {
		return false
	}
	return serverErr.HasErrorLabel("TransientTransactionError")
}

// retryWithPolicy runs fn, consulting policy after each failure. The delay
// scales with the attempt count; the context bounds the whole loop.
func retryWithPolicy(ctx context.Context, policy RetryPolicy, logger Logger, op string, fn func() error) error {
	if policy == nil {
		return fn()
	}
	var attempt int
	for {
		err := fn()
		if err == nil {
			return nil
		}
		retry, delay := policy.ShouldRetry(err)
		if !retry || ctx.Err() != nil {
			return err
		}
		attempt++
		logger.Debugf("retrying %s after %v (attempt %d): %v", op, delay*time.Duration(attempt), attempt, err)
		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay * time.Duration(attempt)):
		}
	}
}
