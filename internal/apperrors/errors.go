package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is the sentinel for missing rows at the repository layer.
var ErrNotFound = errors.New("not found")

// AppError is an error with a client-facing message and HTTP status.
// Operational errors are expected business failures whose messages are safe
// to return verbatim; anything else collapses to a generic 500 in production.
type AppError struct {
	Message     string
	StatusCode  int
	Code        string
	Operational bool
}

func (e *AppError) Error() string {
	return e.Message
}

// New creates an operational error with an explicit status code.
func New(message string, statusCode int) *AppError {
	return &AppError{Message: message, StatusCode: statusCode, Operational: true}
}

// NewValidation creates a 400 validation error.
func NewValidation(message string) *AppError {
	return &AppError{Message: message, StatusCode: http.StatusBadRequest, Code: "VALIDATION_ERROR", Operational: true}
}

// NewValidationf creates a 400 validation error with a formatted message.
func NewValidationf(format string, args ...interface{}) *AppError {
	return NewValidation(fmt.Sprintf(format, args...))
}

// NewAuthentication creates a 401 error.
func NewAuthentication(message string) *AppError {
	return &AppError{Message: message, StatusCode: http.StatusUnauthorized, Code: "AUTHENTICATION_ERROR", Operational: true}
}

// NewAuthorization creates a 403 error.
func NewAuthorization(message string) *AppError {
	return &AppError{Message: message, StatusCode: http.StatusForbidden, Code: "AUTHORIZATION_ERROR", Operational: true}
}

// NewNotFound creates a 404 error.
func NewNotFound(message string) *AppError {
	return &AppError{Message: message, StatusCode: http.StatusNotFound, Code: "NOT_FOUND", Operational: true}
}

// NewConflict creates a 409 error.
func NewConflict(message string) *AppError {
	return &AppError{Message: message, StatusCode: http.StatusConflict, Code: "CONFLICT", Operational: true}
}

// NewInternal wraps an unexpected failure. Not operational: the message is
// for logs, never for clients in production.
func NewInternal(message string) *AppError {
	return &AppError{Message: message, StatusCode: http.StatusInternalServerError, Code: "INTERNAL_ERROR", Operational: false}
}

// NewInsufficientStock reports that a product cannot cover the requested
// quantity. Used by checkout validation and the guarded stock decrement.
func NewInsufficientStock(productName string, available int) *AppError {
	return &AppError{
		Message:     fmt.Sprintf("Insufficient quantity for product %q. Available: %d", productName, available),
		StatusCode:  http.StatusBadRequest,
		Code:        "INSUFFICIENT_STOCK",
		Operational: true,
	}
}

// AsAppError unwraps err into an *AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
