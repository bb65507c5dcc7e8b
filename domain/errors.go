package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeConfig       ErrorCode = "CONFIG"
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeRead         ErrorCode = "READ"
	ErrCodeWrite        ErrorCode = "WRITE"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeSyncRow      ErrorCode = "SYNC_ROW"
	ErrCodeAssistant    ErrorCode = "ASSISTANT"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrTaskNotFound     = NewError(ErrCodeNotFound, "task not found")
	ErrUserNotFound     = NewError(ErrCodeNotFound, "user not found")
	ErrEmptyDescription = NewError(ErrCodeValidation, "task description must not be empty")
	ErrInvalidStatus    = NewError(ErrCodeValidation, "status is not a recognized lifecycle state")
	ErrRemarkRequired   = NewError(ErrCodeValidation, "closing a task requires a remark")
	ErrInactiveAssignee = NewError(ErrCodeValidation, "assignee is not an active user")
	ErrForbidden        = NewError(ErrCodeForbidden, "operation not permitted for this role")
	ErrUnauthorized     = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload   = NewError(ErrCodeValidation, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
