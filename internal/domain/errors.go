package domain

import (
	"fmt"
	"strings"
)

// Error types for consistent error handling across the service.

// FieldError is one itemized validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrValidation indicates malformed or out-of-range input. It is surfaced
// to the caller immediately and never retried.
type ErrValidation struct {
	Fields  []FieldError
	Message string
}

func (e *ErrValidation) Error() string {
	if len(e.Fields) == 0 {
		if e.Message != "" {
			return e.Message
		}
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrExternalService indicates a failure in an external service call.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrUnparseable indicates the reasoning service replied but no report
// payload could be extracted from its output. Raw carries the reply text
// for diagnostics.
type ErrUnparseable struct {
	Raw string
}

func (e *ErrUnparseable) Error() string {
	return "no report payload found in reasoning output"
}

// ErrRendering indicates the PDF document could not be produced.
type ErrRendering struct {
	Err error
}

func (e *ErrRendering) Error() string {
	return fmt.Sprintf("report rendering failed: %v", e.Err)
}

func (e *ErrRendering) Unwrap() error {
	return e.Err
}

// ErrNotification indicates the report email could not be dispatched.
type ErrNotification struct {
	Recipient string
	Err       error
}

func (e *ErrNotification) Error() string {
	return fmt.Sprintf("report notification to %s failed: %v", e.Recipient, e.Err)
}

func (e *ErrNotification) Unwrap() error {
	return e.Err
}

// ErrTimeout indicates an operation exceeded its deadline.
type ErrTimeout struct {
	Operation string
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("operation timed out: %s", e.Operation)
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}
