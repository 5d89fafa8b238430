package domain

import "errors"

// Error kinds. Every failure surfaced to a client wraps one of these.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("resource not found")
	ErrBadRequest   = errors.New("bad request")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)

// AppError carries a client-facing message on top of an error kind
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

// NewError creates an AppError of the given kind
func NewError(kind error, message string) error {
	return &AppError{Kind: kind, Message: message}
}

// Unauthorized creates an unauthorized error
func Unauthorized(message string) error { return NewError(ErrUnauthorized, message) }

// Forbidden creates a forbidden error
func Forbidden(message string) error { return NewError(ErrForbidden, message) }

// NotFound creates a not found error
func NotFound(message string) error { return NewError(ErrNotFound, message) }

// BadRequest creates a bad request error
func BadRequest(message string) error { return NewError(ErrBadRequest, message) }

// Validation creates an error for input that parsed but is not acceptable
func Validation(message string) error { return NewError(ErrValidation, message) }

// Conflict creates a conflict error
func Conflict(message string) error { return NewError(ErrConflict, message) }

// MessageOf returns the client-facing message of err, or fallback
func MessageOf(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
