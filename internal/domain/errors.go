package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks malformed input: non-square matrices,
	// unreadable files, non-integer cells.
	ErrConfiguration = errors.New("configuration error")

	// ErrInfeasible is returned when no complete matching satisfies the constraints.
	ErrInfeasible = errors.New("infeasible assignment problem")

	// ErrUnbounded is only reachable through the LP formulation.
	ErrUnbounded = errors.New("unbounded assignment problem")

	// ErrSolve covers every other solver failure.
	ErrSolve = errors.New("solver error")
)

// ConfigurationError describes malformed input with enough context
// (operation and reason) to be surfaced to the caller as-is.
type ConfigurationError struct {
	Op     string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := e.Reason
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both ErrConfiguration and the underlying cause to errors.Is.
func (e *ConfigurationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfiguration}
	}
	return []error{ErrConfiguration, e.Err}
}

// NewConfigurationError builds a ConfigurationError with a formatted reason.
func NewConfigurationError(op string, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
