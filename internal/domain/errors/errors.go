package errors

import (
	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(errorCode, message, details string) *BaseError {
	return &BaseError{
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details == "" {
		return e.message
	}

	return e.message + ": " + e.details
}

// Is matches any BaseError carrying the same error code, so errors built
// with WithDetails still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Construction-time validation of people, items and attachments.
	ErrValidationFailed = NewBaseError(
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// Cart errors
	ErrEmptyCart = NewBaseError(
		"EMPTY_CART",
		"cannot checkout empty cart",
		"",
	)

	ErrInvalidCartItem = NewBaseError(
		"INVALID_CART_ITEM",
		"invalid item data",
		"",
	)

	// Session errors
	ErrBlockedLogin = NewBaseError(
		"BLOCKED_LOGIN",
		"this account has been blocked by an administrator",
		"",
	)

	// Storage errors
	ErrStorageParse = NewBaseError(
		"STORAGE_PARSE_FAILED",
		"stored value could not be decoded",
		"",
	)

	// General errors
	ErrForbidden = NewBaseError(
		"FORBIDDEN",
		"access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		"NOT_FOUND",
		"resource not found",
		"",
	)
)

// Validation returns a validation error naming the offending field.
func Validation(field, reason string) *BaseError {
	return ErrValidationFailed.WithDetails(field + ": " + reason)
}

// StorageParseError reports a slot whose stored bytes could not be decoded.
// It is recovered locally by the persistence layer and never reaches callers
// of the usecases.
type StorageParseError struct {
	err  error
	slot string
}

// NewStorageParseError creates a storage parse error for the given slot.
func NewStorageParseError(err error, slot string) AppError {
	return &StorageParseError{
		err:  err,
		slot: slot,
	}
}

// Error implements the error interface
func (e *StorageParseError) Error() string {
	return errors.Wrapf(e.err, "decode slot %q", e.slot).Error()
}

// Unwrap exposes the underlying decode error.
func (e *StorageParseError) Unwrap() error {
	return e.err
}

// Is matches ErrStorageParse.
func (e *StorageParseError) Is(target error) bool {
	return target == ErrStorageParse
}

// ErrorCode returns the business error code
func (e *StorageParseError) ErrorCode() string {
	return ErrStorageParse.ErrorCode()
}

// Message returns the user-friendly error message
func (e *StorageParseError) Message() string {
	return ErrStorageParse.Message()
}

// Details returns the slot that failed to decode.
func (e *StorageParseError) Details() string {
	return e.slot
}
