package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a domain error for transport-level mapping.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "VALIDATION"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeInvalidState       ErrorCode = "INVALID_STATE"
	CodeUnavailable        ErrorCode = "UNAVAILABLE"
	CodeSlotTaken          ErrorCode = "SLOT_TAKEN"
	CodePriceNotConfigured ErrorCode = "PRICE_NOT_CONFIGURED"
	CodeDuplicate          ErrorCode = "DUPLICATE"
)

// Error is a typed, recoverable domain error. The web layer maps its code
// to an HTTP status; the core never panics on these conditions.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// IsCode reports whether err is (or wraps) a domain Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}

// NewValidationError reports invalid input, including invalid date ranges.
func NewValidationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewForbiddenError reports an authorization failure.
func NewForbiddenError(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// NewConflictError reports a concurrent-write race detected at commit.
func NewConflictError(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// NewInvalidStateError reports a rejected lifecycle transition.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Code: CodeInvalidState, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewUnavailableError reports a resource whose availability flag is off.
func NewUnavailableError(message string) *Error {
	return &Error{Code: CodeUnavailable, Message: message}
}

// NewSlotTakenError reports an availability conflict for a boat and interval.
func NewSlotTakenError(message string) *Error {
	return &Error{Code: CodeSlotTaken, Message: message}
}

// NewPriceNotConfiguredError reports a missing partner price bucket.
func NewPriceNotConfiguredError(message string) *Error {
	return &Error{Code: CodePriceNotConfigured, Message: message}
}

// NewDuplicateError reports a uniqueness violation, such as a second partner
// price row for the same boat and partner.
func NewDuplicateError(message string) *Error {
	return &Error{Code: CodeDuplicate, Message: message}
}
