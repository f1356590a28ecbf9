package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record, item, or file does not
	// exist or is not visible to the caller.
	ErrNotFound = errors.New("resource not found")

	// ErrAccessDenied is returned when the caller lacks the required
	// access level on a record.
	ErrAccessDenied = errors.New("access denied")

	// ErrMissingParameter is returned when a required parameter could
	// not be resolved automatically and was not supplied.
	ErrMissingParameter = errors.New("missing parameter")

	// ErrUnsupportedFormat is returned by the compute task when the
	// decoded pixel layout cannot be histogrammed.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// ValidationError reports a request parameter that failed a
// precondition. It is surfaced synchronously to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
