package errors

import (
	"errors"
	"fmt"
	"strings"
)

// OpenError reports a single failed attempt to open a native connection
// handle. The attempt counter is zero-based.
type OpenError struct {
	Attempt int
	Cause   error
}

// NewOpenError wraps an open failure with its attempt number.
func NewOpenError(attempt int, cause error) *OpenError {
	return &OpenError{Attempt: attempt, Cause: cause}
}

// Error implements the error interface
func (e *OpenError) Error() string {
	return fmt.Sprintf("open attempt %d failed: %v", e.Attempt, e.Cause)
}

// Unwrap returns the underlying error
func (e *OpenError) Unwrap() error {
	return e.Cause
}

// AggregateOpenError is returned when every retry of an open operation has
// failed. It carries one OpenError per attempt, in attempt order.
type AggregateOpenError struct {
	Attempts []error
}

// NewAggregateOpenError bundles the per-attempt errors of an exhausted
// open/retry loop.
func NewAggregateOpenError(attempts []error) *AggregateOpenError {
	return &AggregateOpenError{Attempts: attempts}
}

// Error implements the error interface
func (e *AggregateOpenError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "all %d open attempts failed", len(e.Attempts))
	for _, err := range e.Attempts {
		b.WriteString("; ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap exposes the per-attempt errors to errors.Is and errors.As.
func (e *AggregateOpenError) Unwrap() []error {
	return e.Attempts
}

// IsAggregateOpen reports whether err is (or wraps) an AggregateOpenError.
func IsAggregateOpen(err error) bool {
	var agg *AggregateOpenError
	return errors.As(err, &agg)
}

// CloseError reports a failed close of a native connection handle. Release
// paths report it through the close-error listener and then suppress it.
type CloseError struct {
	Cause error
}

// NewCloseError wraps a close failure.
func NewCloseError(cause error) *CloseError {
	return &CloseError{Cause: cause}
}

// Error implements the error interface
func (e *CloseError) Error() string {
	return fmt.Sprintf("close failed: %v", e.Cause)
}

// Unwrap returns the underlying error
func (e *CloseError) Unwrap() error {
	return e.Cause
}
