package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType classifies an AppError for logging and response mapping.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeStorage    ErrorType = "STORAGE_ERROR"
	ErrorTypeUpload     ErrorType = "UPLOAD_ERROR"
	ErrorTypeTooLarge   ErrorType = "PAYLOAD_TOO_LARGE"
	ErrorTypeBadRequest ErrorType = "BAD_REQUEST"
)

// AppError is an error that knows which HTTP status it maps to.
type AppError struct {
	Type     ErrorType              `json:"type"`
	Message  string                 `json:"message"`
	HTTPCode int                    `json:"-"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Cause    error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, message string, httpCode int) *AppError {
	return &AppError{
		Type:     errorType,
		Message:  message,
		HTTPCode: httpCode,
		Details:  make(map[string]interface{}),
	}
}

// WithCause adds the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail adds a detail field
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewValidationError reports the contact fields that were empty or absent.
func NewValidationError(missing []string) *AppError {
	msg := "Missing required fields: " + strings.Join(missing, ", ")
	return NewAppError(ErrorTypeValidation, msg, http.StatusBadRequest).
		WithDetail("missing", missing)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrorTypeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// NewStorageError wraps a persistence failure for the given operation.
func NewStorageError(op string, cause error) *AppError {
	return NewAppError(ErrorTypeStorage, op+" failed", http.StatusInternalServerError).
		WithCause(cause)
}

// NewUploadError wraps a failure to move an attachment into the upload area.
func NewUploadError(message string, cause error) *AppError {
	return NewAppError(ErrorTypeUpload, message, http.StatusInternalServerError).
		WithCause(cause)
}

// NewPayloadTooLargeError rejects a body or attachment above limit bytes.
func NewPayloadTooLargeError(limit int64) *AppError {
	msg := fmt.Sprintf("upload exceeds the %d byte limit", limit)
	return NewAppError(ErrorTypeTooLarge, msg, http.StatusRequestEntityTooLarge).
		WithDetail("limit", limit)
}

// NewBadRequestError is used for bodies that cannot be decoded at all.
func NewBadRequestError(message string, cause error) *AppError {
	return NewAppError(ErrorTypeBadRequest, message, http.StatusBadRequest).
		WithCause(cause)
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err carries an AppError of type t.
func IsType(err error, t ErrorType) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == t
}

// IsNotFound is shorthand for IsType(err, ErrorTypeNotFound).
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// HTTPStatus returns the status err maps to; unknown errors are 500.
func HTTPStatus(err error) int {
	if appErr, ok := As(err); ok && appErr.HTTPCode != 0 {
		return appErr.HTTPCode
	}
	return http.StatusInternalServerError
}

// PublicMessage is the message safe to show to a client. Causes of
// storage and upload failures stay in the logs.
func PublicMessage(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Message
	}
	return "Server Error"
}
