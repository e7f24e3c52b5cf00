// Package apperr defines the error taxonomy shared by all services. Every
// failure is terminal for its request; nothing here warrants a retry.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a referenced entity does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Resource, e.ID)
}

// NotFound builds a NotFoundError for a resource/id pair
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// InvalidOperationError signals a business-rule violation on otherwise
// well-formed input
type InvalidOperationError struct {
	Message string
}

func (e *InvalidOperationError) Error() string {
	return e.Message
}

// Invalid builds an InvalidOperationError with a formatted message
func Invalid(format string, args ...interface{}) error {
	return &InvalidOperationError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError signals malformed input, rejected before any core
// computation runs
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation builds a ValidationError with a formatted message
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsInvalidOperation reports whether err is an InvalidOperationError
func IsInvalidOperation(err error) bool {
	var target *InvalidOperationError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
