package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestInputError(t *testing.T) {
	err := NewInputError("q", "query text or imdbId is required")

	expected := "invalid q: query text or imdbId is required"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if !IsInputError(fmt.Errorf("resolve: %w", err)) {
		t.Fatalf("IsInputError returned false for wrapped InputError")
	}

	if IsConfigError(err) {
		t.Fatalf("IsConfigError returned true for InputError")
	}
}

func TestInputError_NoField(t *testing.T) {
	err := NewInputError("", "empty request")
	if err.Error() != "empty request" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "empty request")
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("tmdb.token", "TMDB bearer token is not configured")

	expected := "misconfiguration (tmdb.token): TMDB bearer token is not configured"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if !IsConfigError(stdErrors.Join(err)) {
		t.Fatalf("IsConfigError returned false for joined ConfigError")
	}
}

func TestUpstreamError(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := NewUpstreamError("search/movie", cause)

	expected := "search/movie request failed: connection refused"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if !stdErrors.Is(err, cause) {
		t.Fatalf("UpstreamError does not unwrap to its cause")
	}

	if !IsUpstreamError(fmt.Errorf("wrapped: %w", err)) {
		t.Fatalf("IsUpstreamError returned false for wrapped UpstreamError")
	}
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		message  string
		expected string
	}{
		{name: "with message", status: 401, message: "Invalid API key", expected: "unexpected status 401: Invalid API key"},
		{name: "without message", status: 503, message: "", expected: "unexpected status 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewStatusError(tt.status, tt.message)
			if err.Error() != tt.expected {
				t.Fatalf("Error message = %q, want %q", err.Error(), tt.expected)
			}
			if !IsStatusError(err) {
				t.Fatalf("IsStatusError returned false")
			}
			if IsUpstreamError(err) {
				t.Fatalf("StatusError must not be classified as UpstreamError")
			}
		})
	}
}

func TestStopProcessingError(t *testing.T) {
	err := NewStopProcessingError("user stopped")

	if err.Error() != "user stopped" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "user stopped")
	}

	if !IsStopProcessingError(stdErrors.Join(err)) {
		t.Fatalf("IsStopProcessingError returned false for wrapped StopProcessingError")
	}
}
