package prime

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid prime client configuration")
	// ErrNotImplemented is returned for write methods the API wrapper does not support
	ErrNotImplemented = errors.New("method is not yet implemented")
	// ErrUnsupportedMethod is returned for HTTP methods the API does not use
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
	// ErrInvalidTokenResponse is returned when a refresh answer lacks the token pair
	ErrInvalidTokenResponse = errors.New("token refresh response is missing the token pair")
	// ErrManualAuthentication indicates tokens must be obtained through a browser login
	ErrManualAuthentication = errors.New("authenticate manually and set tokens in the credentials file")
)

// APIError represents an unexpected Prime API response
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("prime API error: status %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// AuthorizationError is returned when the auth service rejects a token refresh
type AuthorizationError struct {
	StatusCode int
	Status     string
	Title      string
	Detail     string
}

// Error implements the error interface
func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%d %s - %s: %s", e.StatusCode, e.Status, e.Title, e.Detail)
}

// FetchError aborts a fetch. No partial result accompanies it.
type FetchError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying cause
func (e *FetchError) Unwrap() error {
	return e.Err
}
