package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrInactiveAccount    = New("ACCOUNT_INACTIVE", http.StatusForbidden, "account is inactive")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")

	// Scheduling rejections. Each one blocks the whole batch; nothing is
	// persisted when one fires.
	ErrInvalidDateRange               = New("INVALID_DATE_RANGE", http.StatusBadRequest, "start date must not be after end date")
	ErrGuardUnavailable               = New("GUARD_UNAVAILABLE", http.StatusConflict, "guard is unavailable in the requested range")
	ErrIncompleteRow                  = New("INCOMPLETE_ROW", http.StatusBadRequest, "every row needs a checkpoint and at least one visit time")
	ErrDuplicateGuardTime             = New("DUPLICATE_GUARD_TIME", http.StatusConflict, "same guard has overlapping visit times")
	ErrDuplicateCheckpointTime        = New("DUPLICATE_CHECKPOINT_TIME", http.StatusConflict, "checkpoint already has this visit time in the batch")
	ErrExistingGuardTimeConflict      = New("EXISTING_GUARD_TIME_CONFLICT", http.StatusConflict, "guard already has schedules at these times")
	ErrExistingCheckpointTimeConflict = New("EXISTING_CHECKPOINT_TIME_CONFLICT", http.StatusConflict, "checkpoint already has this visit time in an existing schedule")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
