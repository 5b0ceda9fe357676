package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by the services and mapped to HTTP statuses by the
// transport.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUpstream marks a failure of the phrase backend, as opposed to the
	// lookup providers whose failures degrade silently.
	ErrUpstream = errors.New("upstream unavailable")
)

// FieldError names the offending field of a word and why it was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rejected field. It matches ErrValidation.
type ValidationError struct {
	Errors []FieldError
}

// Error renders "invalid word: required; synonyms: at most 10 entries".
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "invalid " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError rejects a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// NewValidationErrors rejects several fields at once.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
