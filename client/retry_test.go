package odmclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestDefaultRetryPolicy(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		retry bool
	}{
		{name: "nil error", err: nil, retry: false},
		{name: "plain error", err: errors.New("boom"), retry: false},
		{
			name:  "transient server error",
			err:   mongo.CommandError{Labels: []string{"TransientTransactionError"}},
			retry: true,
		},
		{
			name:  "non-transient server error",
			err:   mongo.CommandError{Code: 11000},
			retry: false,
		},
		{name: "deadline exceeded", err: context.DeadlineExceeded, retry: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retry, delay := DefaultRetryPolicy.ShouldRetry(tt.err)
			assert.Equal(t, tt.retry, retry)
			if tt.retry {
				assert.Positive(t, delay)
			}
		})
	}
}

func TestRetryWithPolicy(t *testing.T) {
	alwaysRetry := RetryPolicyFunc(func(err error) (bool, time.Duration) {
		return true, time.Millisecond
	})

	t.Run("stops on success", func(t *testing.T) {
		var calls int
		err := retryWithPolicy(context.Background(), alwaysRetry, noopLogger{}, "find", func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops when policy declines", func(t *testing.T) {
		decline := RetryPolicyFunc(func(err error) (bool, time.Duration) {
			return false, 0
		})
		var calls int
		err := retryWithPolicy(context.Background(), decline, noopLogger{}, "find", func() error {
			calls++
			return errors.New("fatal")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var calls int
		err := retryWithPolicy(ctx, alwaysRetry, noopLogger{}, "find", func() error {
			calls++
			cancel()
			return errors.New("transient")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("nil policy runs once", func(t *testing.T) {
		var calls int
		err := retryWithPolicy(context.Background(), nil, noopLogger{}, "find", func() error {
			calls++
			return errors.New("boom")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}
