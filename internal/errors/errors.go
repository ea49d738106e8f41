// Package errors defines application-specific error types and sentinel errors.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoEvents signals that a full run over every input produced zero
	// stored events. Distinct from per-input failures, which are warnings.
	ErrNoEvents = errors.New("no events found in any input")

	ErrSinkClosed  = errors.New("sink is closed")
	ErrEmptyReport = errors.New("nothing to report")
)

// InputError represents a failure to read one log input. It does not abort
// the run; remaining inputs are still processed.
type InputError struct {
	Origin string
	Path   string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error: origin=%s path=%s: %v", e.Origin, e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// SinkError represents a failure persisting a generated artifact.
type SinkError struct {
	Backend   string
	Operation string
	Name      string
	Err       error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink error: backend=%s operation=%s name=%s: %v",
		e.Backend, e.Operation, e.Name, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// IsRetryable determines if a SinkError is retryable based on the operation.
func (e *SinkError) IsRetryable() bool {
	return e.Operation == "put" || e.Operation == "upload" || e.Operation == "create"
}

// Retryable defines an interface for errors that can indicate if they are
// retryable.
type Retryable interface {
	error
	IsRetryable() bool
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var retryable Retryable
	if errors.As(err, &retryable) {
		return retryable.IsRetryable()
	}

	return false
}
