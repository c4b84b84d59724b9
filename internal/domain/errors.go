package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure so transport layers can map it to a status.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error is a domain-level error with a semantic code.
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
	return &Error{Code: code, Message: message, Err: err}
}

// Common domain errors.
var (
	ErrBoardNotFound = NewError(ErrCodeNotFound, "board not found")
	ErrListNotFound  = NewError(ErrCodeNotFound, "list not found")
	ErrTaskNotFound  = NewError(ErrCodeNotFound, "task not found")
	ErrLabelNotFound = NewError(ErrCodeNotFound, "label not found")
	ErrUserNotFound  = NewError(ErrCodeNotFound, "user not found")

	ErrAccessDenied = NewError(ErrCodeForbidden, "access denied")
	ErrOwnerOnly    = NewError(ErrCodeForbidden, "only board owner can perform this action")

	ErrCrossBoardMove = NewError(ErrCodeInvalid, "invalid list for this board")
	ErrAlreadyMember  = NewError(ErrCodeInvalid, "user is already a member")

	ErrDuplicateLabel = NewError(ErrCodeConflict, "label already exists on this board")
)

// IsDomainError reports whether err carries the given code.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// CodeOf extracts the error code, defaulting to INTERNAL.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}
