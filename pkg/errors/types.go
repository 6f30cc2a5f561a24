// Package errors carries the coded errors the services return and the HTTP
// layer turns into error bodies.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine-readable code sent in error responses
type ErrorCode string

const (
	ErrCodeDatabaseQuery     ErrorCode = "DATABASE_QUERY"
	ErrCodeDatabaseMigration ErrorCode = "DATABASE_MIGRATION"
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden         ErrorCode = "FORBIDDEN"
	ErrCodeInternal          ErrorCode = "INTERNAL"
)

var statusByCode = map[ErrorCode]int{
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
}

// AppError is a service error with a code, a client-safe message and
// optional details such as the offending field
type AppError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail records key under Details and returns e for chaining
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Status is the HTTP status the error is reported with
func (e *AppError) Status() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Wrap tags cause with code. Sentinels passed as cause stay reachable
// through errors.Is.
func Wrap(cause error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// DatabaseError reports a failed storage operation. The cause is kept for
// logs and never sent to clients.
func DatabaseError(operation string, cause error) *AppError {
	return Wrap(cause, ErrCodeDatabaseQuery, fmt.Sprintf("database %s failed", operation)).
		WithDetail("operation", operation)
}

// Unauthorized reports a request without a usable identity
func Unauthorized(reason string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: reason}
}

func find(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// Is reports whether any AppError in err's chain carries code
func Is(err error, code ErrorCode) bool {
	appErr, ok := find(err)
	return ok && appErr.Code == code
}

// GetCode returns the code of the first AppError in err's chain, or
// ErrCodeInternal
func GetCode(err error) ErrorCode {
	if appErr, ok := find(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// GetHTTPCode returns the status err is reported with
func GetHTTPCode(err error) int {
	if appErr, ok := find(err); ok {
		return appErr.Status()
	}
	return http.StatusInternalServerError
}
