package notion

import (
	"errors"
	"fmt"
	"time"
)

// AuthError represents an authentication failure (HTTP 401 or 403).
// The token is invalid, expired, or not shared with the target database.
// Auth errors are never retried.
type AuthError struct {
	// StatusCode is the HTTP status code returned by the API.
	StatusCode int

	// Message is the error message from the API.
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("notion authentication failed (status %d): %s", e.StatusCode, e.Message)
}

// NotFoundError represents an unknown database (HTTP 404).
// This usually means the database ID is wrong or the integration has not
// been granted access to it. Not-found errors are never retried.
type NotFoundError struct {
	// DatabaseID is the database identifier that was not found.
	DatabaseID string

	// Message is the error message from the API.
	Message string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("notion database %q not found: %s", e.DatabaseID, e.Message)
}

// RateLimitError represents a rate limit rejection (HTTP 429).
// It includes the Retry-After duration when the API provides one; the
// backoff controller honors it in preference to the computed delay.
type RateLimitError struct {
	// RetryAfter is the duration to wait before retrying (0 if not provided).
	RetryAfter time.Duration

	// Message is the error message from the API.
	Message string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("notion rate limit exceeded (retry after %s): %s", e.RetryAfter, e.Message)
	}
	return fmt.Sprintf("notion rate limit exceeded: %s", e.Message)
}

// ServerError represents a transient server-side failure (HTTP 5xx).
type ServerError struct {
	// StatusCode is the HTTP status code returned by the API.
	StatusCode int

	// Message is the error message from the API.
	Message string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("notion server error (status %d): %s", e.StatusCode, e.Message)
}

// NetworkError represents a transport-level failure (timeout, connection
// reset, DNS failure) where no HTTP response was received.
type NetworkError struct {
	// Cause is the underlying transport error.
	Cause error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("notion request failed: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// APIError represents any other client-side rejection (e.g. HTTP 400
// validation errors). These indicate a defective request and are never
// retried.
type APIError struct {
	// StatusCode is the HTTP status code returned by the API.
	StatusCode int

	// Code is the machine-readable error code from the API, if any.
	Code string

	// Message is the error message from the API.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("notion API error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("notion API error (status %d): %s", e.StatusCode, e.Message)
}

// ParseError represents a malformed API response.
type ParseError struct {
	// RawResponse is the response body that failed to parse.
	RawResponse string

	// Cause is the underlying parse error.
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("notion response parse error: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether err is a transient failure worth retrying.
// Rate limits, server errors, and transport failures are retryable;
// everything else fails the current database immediately.
func IsRetryable(err error) bool {
	var rateLimitErr *RateLimitError
	var serverErr *ServerError
	var networkErr *NetworkError
	return errors.As(err, &rateLimitErr) ||
		errors.As(err, &serverErr) ||
		errors.As(err, &networkErr)
}

// RetryAfter extracts the explicit Retry-After duration from err, or 0 if
// the error does not carry one.
func RetryAfter(err error) time.Duration {
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return rateLimitErr.RetryAfter
	}
	return 0
}
