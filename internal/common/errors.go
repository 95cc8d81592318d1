package common

import (
	"errors"
	"net/http"
)

// Error codes shared across feature packages.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeDuplicateSerial  = "DUPLICATE_SERIAL"
	CodeDuplicateNumber  = "DUPLICATE_PHONE_NUMBER"
	CodeCapacityExceeded = "CAPACITY_EXCEEDED"
	CodeReferenced       = "REFERENCED"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeInternal         = "INTERNAL"
)

// AppError carries an error code and HTTP status alongside the underlying error.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// ValidationError reports rejected input. The operation must not have written anything.
func ValidationError(message string) *AppError {
	return NewAppError(CodeValidation, message, http.StatusBadRequest, nil)
}

// NotFoundError reports a missing row.
func NotFoundError(message string) *AppError {
	return NewAppError(CodeNotFound, message, http.StatusNotFound, nil)
}

// ConflictError reports a uniqueness or integrity conflict.
func ConflictError(code, message string, err error) *AppError {
	return NewAppError(code, message, http.StatusConflict, err)
}

// AsAppError extracts an AppError from the chain if present.
func AsAppError(err error) (*AppError, bool) {
	var target *AppError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
