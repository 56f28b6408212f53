package errors

import (
	stdErrors "errors"
	"fmt"
)

// InputError reports a request the caller must fix, such as a resolution
// query with neither text nor an external id.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewInputError creates an InputError for the given field.
func NewInputError(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}

// IsInputError reports whether err is an InputError (even when wrapped).
func IsInputError(err error) bool {
	var inputErr *InputError
	return stdErrors.As(err, &inputErr)
}
