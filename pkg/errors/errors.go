package errors

import (
	"errors"
	"fmt"
)

// Application error kinds. Services wrap these so handlers can pick a status code
// with Is, independent of the message text.

var (
	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or invalid authentication
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream indicates an external dependency (webhook, identity provider) failed
	ErrUpstream = errors.New("upstream failure")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// UpstreamError wraps cause as a failure of the named upstream service
func UpstreamError(service string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", service, ErrUpstream)
	}
	return fmt.Errorf("%s: %w: %w", service, ErrUpstream, cause)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
