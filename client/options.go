package odmclient

import "time"

// Logger represents the minimal logging interface used by the collection
// wrapper.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Errorf(string, ...any) {}

// settings holds the per-collection configuration shared by every Collection
// instantiation, so options stay free of the type parameter.
type settings struct {
	logger       Logger
	retryPolicy  RetryPolicy
	queryTimeout time.Duration
}

func defaultSettings() settings {
	return settings{
		logger:      noopLogger{},
		retryPolicy: DefaultRetryPolicy,
	}
}

// Option configures a Collection during construction.
type Option func(*settings) error

// WithLogger registers a logger used for query lifecycle events.
func WithLogger(logger Logger) Option {
	return func(s *settings) error {
		if logger == nil {
			s.logger = noopLogger{}
			return nil
		}
		s.logger = logger
		return nil
	}
}

// WithRetryPolicy configures the retry behavior for read operations.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(s *settings) error {
		s.retryPolicy = policy
		return nil
	}
}

// WithQueryTimeout sets a per-operation deadline applied when the caller's
// context carries none.
func WithQueryTimeout(timeout time.Duration) Option {
	return func(s *settings) error {
		if timeout > 0 {
			s.queryTimeout = timeout
		}
		return nil
	}
}
