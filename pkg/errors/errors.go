package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the single error shape that crosses workflow boundaries.
// Code identifies the failure category, Message is safe to show to API
// consumers, Errors carries itemized reasons (validation), and Internal
// keeps the underlying driver/relay error for logging only.
type AppError struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
	StatusCode int      `json:"-"`
	Internal   error    `json:"-"`
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}

	return e.Message
}

// Unwrap exposes the internal error for errors.Is / errors.As compatibility.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Internal
}

// WithInternal returns a copy of the AppError with an attached internal error.
func (e *AppError) WithInternal(err error) *AppError {
	if e == nil {
		return nil
	}

	cpy := *e
	cpy.Internal = err
	return &cpy
}

// Failure categories. Every error a workflow surfaces maps onto one of these.
const (
	CodeValidation = "VALIDATION_FAILED"
	CodeStorage    = "STORAGE_FAILURE"
	CodeDelivery   = "DELIVERY_FAILURE"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL_SERVER_ERROR"
)

// Common errors exposed to the rest of the application.
var (
	ErrEndpointNotFound = &AppError{
		Code:       CodeNotFound,
		Message:    "Endpoint not found",
		StatusCode: http.StatusNotFound,
	}

	ErrInternalServer = &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		StatusCode: http.StatusInternalServerError,
	}
)

// NewValidation builds the 400 error carrying the itemized rule violations.
func NewValidation(reasons []string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    "Validation failed",
		Errors:     reasons,
		StatusCode: http.StatusBadRequest,
	}
}

// NewBadRequest reports a malformed request outside field validation,
// e.g. an unparsable JSON body or a missing query parameter.
func NewBadRequest(message string, reasons ...string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		Errors:     reasons,
		StatusCode: http.StatusBadRequest,
	}
}

// NewStorage wraps a backing-store failure. The driver error stays internal.
func NewStorage(message string, err error, reasons ...string) *AppError {
	return &AppError{
		Code:       CodeStorage,
		Message:    message,
		Errors:     reasons,
		StatusCode: http.StatusInternalServerError,
		Internal:   err,
	}
}

// NewDelivery wraps a mail-relay failure. The relay error stays internal.
func NewDelivery(message string, err error, reasons ...string) *AppError {
	return &AppError{
		Code:       CodeDelivery,
		Message:    message,
		Errors:     reasons,
		StatusCode: http.StatusInternalServerError,
		Internal:   err,
	}
}

// NewNotFound reports an unknown or already-consumed resource.
func NewNotFound(message string, reasons ...string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    message,
		Errors:     reasons,
		StatusCode: http.StatusNotFound,
	}
}

// FromError converts a generic error into an AppError, defaulting to ErrInternalServer.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return ErrInternalServer.WithInternal(err)
}

// IsCategory reports whether err carries the given failure category code.
func IsCategory(err error, code string) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr == nil {
		return false
	}
	return appErr.Code == code
}
