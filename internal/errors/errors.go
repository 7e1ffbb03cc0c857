package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrLookupFailed ErrorType = "LOOKUP_FAILED"
	ErrNotFound     ErrorType = "NOT_FOUND"
	ErrRateLimit    ErrorType = "RATE_LIMIT"
	ErrInvalidInput ErrorType = "INVALID_INPUT"
	ErrStorage      ErrorType = "STORAGE"
	ErrInternal     ErrorType = "INTERNAL"
)

// User-facing messages.
const (
	MsgLookupFailed      = "User not found, please enter a valid username"
	MsgLookupFailedToast = "Github username not found"
	MsgRateLimited       = "GitHub rate limit exceeded, please try again later"
)

// AppError represents an application error
type AppError struct {
	Type      ErrorType
	Message   string
	Cause     error
	Timestamp time.Time
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:      errType,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// As is errors.As, re-exported so callers need only one errors import
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsLookupFailed checks if the error is a failed profile lookup
func IsLookupFailed(err error) bool {
	return isType(err, ErrLookupFailed)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return isType(err, ErrNotFound)
}

// IsRateLimit checks if the error is a rate limit error
func IsRateLimit(err error) bool {
	return isType(err, ErrRateLimit)
}

// IsInvalidInput checks if the error is an invalid input error
func IsInvalidInput(err error) bool {
	return isType(err, ErrInvalidInput)
}

// IsStorage checks if the error came from the persistence layer
func IsStorage(err error) bool {
	return isType(err, ErrStorage)
}

// NewLookupFailedError wraps a failed profile or repository fetch.
// The message is always the user-facing one; the cause keeps the detail.
func NewLookupFailedError(username string, err error) *AppError {
	if err != nil {
		err = fmt.Errorf("lookup %q: %w", username, err)
	}
	return New(ErrLookupFailed, MsgLookupFailed, err)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, err error) *AppError {
	return New(ErrNotFound, message, err)
}

// NewRateLimitError creates a new rate limit error
func NewRateLimitError(message string, err error) *AppError {
	return New(ErrRateLimit, message, err)
}

// NewValidationError creates a new validation error
func NewValidationError(message string, err error) *AppError {
	return New(ErrInvalidInput, message, err)
}

// NewStorageError creates a new storage error
func NewStorageError(message string, err error) *AppError {
	return New(ErrStorage, message, err)
}
