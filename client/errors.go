package odmclient

import (
	"errors"
	"fmt"
)

var (
	// ErrNilCollection indicates a nil driver collection was provided.
	ErrNilCollection = errors.New("odmclient: driver collection cannot be nil")
	// ErrNotFound is returned by FindOne when no document matches the filter.
	ErrNotFound = errors.New("odmclient: no matching document")
)

// QueryError wraps a driver failure with the operation that produced it.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("odmclient: %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
