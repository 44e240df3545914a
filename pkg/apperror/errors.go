package apperror

import (
	"errors"
	"net/http"
)

// Machine readable reasons carried alongside the HTTP status so clients can
// tell apart conditions that share a status code.
const (
	ReasonInvalidRequest    = "invalid_request"
	ReasonNotFound          = "not_found"
	ReasonInsufficientStock = "insufficient_stock"
	ReasonDuplicateKey      = "duplicate_key"
	ReasonAlreadyDeleted    = "already_deleted"
	ReasonStorageFailure    = "storage_failure"
	ReasonValidation        = "validation_failed"
	ReasonRateLimited       = "too_many_requests"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Reason  string       `json:"reason,omitempty"`
	Cause   string       `json:"cause,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Cause != "" {
		return e.Message + ": " + e.Cause
	}
	return e.Message
}

// Is matches on status code and reason so sentinel values below work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Reason == t.Reason
}

// Common errors
var (
	ErrNotFound          = &AppError{Code: http.StatusNotFound, Message: "Resource not found", Reason: ReasonNotFound}
	ErrBadRequest        = &AppError{Code: http.StatusBadRequest, Message: "Bad request", Reason: ReasonInvalidRequest}
	ErrInternalServer    = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error", Reason: ReasonStorageFailure}
	ErrConflict          = &AppError{Code: http.StatusConflict, Message: "Resource already exists", Reason: ReasonDuplicateKey}
	ErrInsufficientStock = &AppError{Code: http.StatusConflict, Message: "Insufficient stock", Reason: ReasonInsufficientStock}
	ErrAlreadyDeleted    = &AppError{Code: http.StatusConflict, Message: "Resource already deleted", Reason: ReasonAlreadyDeleted}
	ErrUnprocessable     = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity", Reason: ReasonValidation}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Reason:  ReasonValidation,
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
		Reason:  ReasonNotFound,
	}
}

// NewConflictError creates a duplicate key error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
		Reason:  ReasonDuplicateKey,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
		Reason:  ReasonInvalidRequest,
	}
}

// NewInsufficientStockError reports a quantity that exceeds available stock
func NewInsufficientStockError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
		Reason:  ReasonInsufficientStock,
	}
}

// NewAlreadyDeletedError reports an operation on a soft-deleted record
func NewAlreadyDeletedError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: resource + " already deleted",
		Reason:  ReasonAlreadyDeleted,
	}
}

// NewStorageError wraps a persistence failure, keeping the cause for the caller
func NewStorageError(message string, cause error) *AppError {
	appErr := &AppError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Reason:  ReasonStorageFailure,
	}
	if cause != nil {
		appErr.Cause = cause.Error()
	}
	return appErr
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewStorageError("Internal server error", err)
}
