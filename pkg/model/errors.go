package model

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across packages.
var (
	// ErrNotAuthenticated indicates no access token is available for a request.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired indicates the refresh flow failed and the token pair
	// has been cleared; the caller must treat the session as terminated.
	ErrSessionExpired = errors.New("session expired")
)

// FieldError describes a validation error on a specific form field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// AuthError is a credentials or registration failure, carrying field-keyed
// messages from the upstream API for inline display.
type AuthError struct {
	Message string
	Fields  []FieldError
}

func (e *AuthError) Error() string {
	return e.Message
}

// NewAuthError creates an AuthError with optional field details.
func NewAuthError(msg string, fields ...FieldError) *AuthError {
	return &AuthError{Message: msg, Fields: fields}
}

// NetworkError is a transport-level failure (connection refused, timeout).
// The UI shows it as a generic retry prompt rather than server text.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
