// Package errors provides the error types shared by the 9Pay client and its tooling.
// It separates configuration, validation, decoding and transport failures so callers
// can tell "could not reach the gateway" apart from "the request was malformed".
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "configuration_error"
	ErrorTypeValidation    ErrorType = "validation_error"
	ErrorTypeDecode        ErrorType = "decode_error"
	ErrorTypeTransport     ErrorType = "transport_error"
	ErrorTypeDuplicate     ErrorType = "duplicate"
	ErrorTypeInternal      ErrorType = "internal_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`

	cause error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause returns a copy of e wrapping err. The receiver is left untouched
// so package-level sentinels stay shared safely.
func (e *AppError) WithCause(err error) *AppError {
	wrapped := *e
	wrapped.cause = err
	return &wrapped
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConfiguration, http.StatusInternalServerError, message, details)
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewDecodeError creates a new decode error
func NewDecodeError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeDecode, http.StatusBadRequest, message, details)
}

// NewTransportError creates a new transport error
func NewTransportError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeTransport, http.StatusBadGateway, message, details)
}

// NewDuplicateError creates a new duplicate error
func NewDuplicateError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeDuplicate, http.StatusConflict, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsConfigurationError checks if the error is a configuration error
func IsConfigurationError(err error) bool {
	return isType(err, ErrorTypeConfiguration)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsDecodeError checks if the error is a decode error
func IsDecodeError(err error) bool {
	return isType(err, ErrorTypeDecode)
}

// IsTransportError checks if the error is a transport error
func IsTransportError(err error) bool {
	return isType(err, ErrorTypeTransport)
}

// IsDuplicateError checks if the error is a duplicate error
func IsDuplicateError(err error) bool {
	return isType(err, ErrorTypeDuplicate)
}
