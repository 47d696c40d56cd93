package compression

import (
	"errors"
	"fmt"
)

// Sentinel errors for compression operations.
var (
	// ErrInvalidConfig indicates invalid compression configuration.
	ErrInvalidConfig = errors.New("invalid compression configuration")

	// ErrCounterFailure indicates the injected token counter failed.
	// The pre-model hook recovers by skipping message trimming for the turn.
	ErrCounterFailure = errors.New("token counter failed")
)

// CompressionError provides structured error context for compression operations.
type CompressionError struct {
	// Op is the operation that failed (e.g., "Trim", "CountTokens")
	Op string

	// Err is the underlying error
	Err error

	// Context holds additional key-value pairs for debugging
	Context map[string]any
}

// Error returns a formatted error message.
func (e *CompressionError) Error() string {
	return fmt.Sprintf("compression %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *CompressionError) Unwrap() error {
	return e.Err
}

// NewCompressionError creates a new CompressionError with the given operation
// and underlying error.
func NewCompressionError(op string, err error) *CompressionError {
	return &CompressionError{
		Op:  op,
		Err: err,
	}
}

// WithContext adds a key-value pair to the error context and returns the
// error for chaining.
func (e *CompressionError) WithContext(key string, value any) *CompressionError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
