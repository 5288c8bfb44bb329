package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies application errors so the HTTP layer can map them
// to status codes without inspecting message strings.
type ErrorCode string

const (
	CodeValidation ErrorCode = "VALIDATION_ERROR"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeConflict   ErrorCode = "CONFLICT"
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
)

// AppError is a typed application error carrying a classification code.
type AppError struct {
	Code    ErrorCode
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError creates an error for invalid input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewNotFoundError creates an error for a missing entity.
func NewNotFoundError(entity, id string) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s not found: %s", entity, id)}
}

// NewConflictError creates an error for a state conflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// CodeOf extracts the error code, defaulting to CodeInternal for
// untyped errors.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// IsNotFound reports whether err is a not-found application error.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}
