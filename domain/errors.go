package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across the console surfaces.
type ErrorCode string

const (
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeConflict ErrorCode = "CONFLICT"
	ErrCodeRejected ErrorCode = "REJECTED"
	ErrCodeInternal ErrorCode = "INTERNAL"
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

// Errorf builds a domain error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
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
	ErrInvalidAmount     = NewError(ErrCodeInvalid, "amount must be positive")
	ErrInsufficientFunds = NewError(ErrCodeRejected, "insufficient funds")
	ErrNotSavings        = NewError(ErrCodeRejected, "interest applies to savings accounts only")
	ErrAlreadyBorrowed   = NewError(ErrCodeRejected, "book is already borrowed")
	ErrNotBorrowed       = NewError(ErrCodeRejected, "book is not borrowed")
	ErrStockUnavailable  = NewError(ErrCodeRejected, "not enough stock available")
	ErrInvalidQuantity   = NewError(ErrCodeInvalid, "quantity must be positive")
	ErrUnknownKind       = NewError(ErrCodeInvalid, "unknown type discriminator")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// IsRejection reports whether err is an expected business outcome rather than a caller or storage fault.
func IsRejection(err error) bool {
	var dErr *Error
	if !errors.As(err, &dErr) {
		return false
	}
	switch dErr.Code {
	case ErrCodeNotFound, ErrCodeConflict, ErrCodeRejected:
		return true
	default:
		return false
	}
}
