package errors

import (
	stdErrors "errors"
	"fmt"
)

// UpstreamError wraps a transport level failure talking to the metadata
// provider. Non-success HTTP responses are not UpstreamErrors.
type UpstreamError struct {
	Strategy string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Strategy, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps err with the name of the fetch strategy that failed.
func NewUpstreamError(strategy string, err error) *UpstreamError {
	return &UpstreamError{Strategy: strategy, Err: err}
}

// IsUpstreamError reports whether err is an UpstreamError (even when wrapped).
func IsUpstreamError(err error) bool {
	var upErr *UpstreamError
	return stdErrors.As(err, &upErr)
}

// StatusError is a non-success HTTP response from the provider.
type StatusError struct {
	StatusCode int
	APIMessage string
}

func (e *StatusError) Error() string {
	if e.APIMessage != "" {
		return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.APIMessage)
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// NewStatusError creates a StatusError.
func NewStatusError(statusCode int, apiMessage string) *StatusError {
	return &StatusError{StatusCode: statusCode, APIMessage: apiMessage}
}

// IsStatusError reports whether err is a StatusError (even when wrapped).
func IsStatusError(err error) bool {
	var statusErr *StatusError
	return stdErrors.As(err, &statusErr)
}
