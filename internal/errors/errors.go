// Package errors provides custom error types for the Osmiq client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrEmptyInput      = errors.New("input is empty")
	ErrBusy            = errors.New("a turn is already in flight")
	ErrNotFound        = errors.New("message not found")
	ErrDuplicateID     = errors.New("duplicate message id")
	ErrNoAPIKey        = errors.New("no API key configured")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrNoContent       = errors.New("no content in response")
)

// NotFoundError reports an update against a message id that is not in
// the store. This is an invariant violation, not a user condition.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("message not found: %s", e.ID)
}

// Is allows comparison with the ErrNotFound sentinel
func (e *NotFoundError) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	_, ok := target.(*NotFoundError)
	return ok
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(id string) *NotFoundError {
	return &NotFoundError{ID: id}
}

// DuplicateIDError reports an append with an id already in the store.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate message id: %s", e.ID)
}

// Is allows comparison with the ErrDuplicateID sentinel
func (e *DuplicateIDError) Is(target error) bool {
	if target == ErrDuplicateID {
		return true
	}
	_, ok := target.(*DuplicateIDError)
	return ok
}

// NewDuplicateIDError creates a new DuplicateIDError
func NewDuplicateIDError(id string) *DuplicateIDError {
	return &DuplicateIDError{ID: id}
}

// AuthError represents an authentication failure against the backend
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed: check your API key"
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// NewAuthError creates a new AuthError
func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}

// APIError represents a generation request rejected by the backend
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NetworkError represents a transport-level failure
type NetworkError struct {
	Operation string
	Endpoint  string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation, endpoint string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Err: err}
}

// UsageLimitError represents a quota or rate limit rejection
type UsageLimitError struct {
	Message string
}

func (e *UsageLimitError) Error() string {
	if e.Message == "" {
		return "usage limit exceeded"
	}
	return fmt.Sprintf("usage limit exceeded: %s", e.Message)
}

// NewUsageLimitError creates a new UsageLimitError
func NewUsageLimitError(message string) *UsageLimitError {
	return &UsageLimitError{Message: message}
}

// BlockedError represents a prompt rejected by safety filters
type BlockedError struct {
	Message string
}

func (e *BlockedError) Error() string {
	if e.Message == "" {
		return "content blocked"
	}
	return fmt.Sprintf("content blocked: %s", e.Message)
}

// NewBlockedError creates a new BlockedError
func NewBlockedError(message string) *BlockedError {
	return &BlockedError{Message: message}
}

// ParseError represents a response parsing failure
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with the ErrInvalidResponse sentinel
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// IsAuthError reports whether err is an authentication failure
func IsAuthError(err error) bool {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return errors.Is(err, ErrNoAPIKey)
}

// IsUsageLimitError reports whether err is a quota/rate limit rejection
func IsUsageLimitError(err error) bool {
	var limitErr *UsageLimitError
	if errors.As(err, &limitErr) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}

// IsNetworkError reports whether err is a transport-level failure
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsBlockedError reports whether err is a safety-filter rejection
func IsBlockedError(err error) bool {
	var blockedErr *BlockedError
	return errors.As(err, &blockedErr)
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
