package errors

import (
	stdErrors "errors"
	"fmt"
)

// ConfigError reports missing or invalid process configuration, for example
// an absent TMDB credential. It is never retried.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("misconfiguration (%s): %s", e.Key, e.Reason)
}

// NewConfigError creates a ConfigError for the given configuration key.
func NewConfigError(key, reason string) *ConfigError {
	return &ConfigError{Key: key, Reason: reason}
}

// IsConfigError reports whether err is a ConfigError (even when wrapped).
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return stdErrors.As(err, &cfgErr)
}
