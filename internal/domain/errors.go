package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error produced by this package and by the service layer
// unwraps to exactly one of these, so callers classify with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrBusinessRule = errors.New("business rule violated")
	ErrNotFound     = errors.New("not found")
)

// Error is a classified domain error carrying a human-readable message.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Kind returns the sentinel the error is classified under.
func (e *Error) Kind() error { return e.kind }

// NewValidationError returns an error of kind ErrValidation.
func NewValidationError(format string, args ...any) *Error {
	return &Error{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// NewBusinessRuleError returns an error of kind ErrBusinessRule.
func NewBusinessRuleError(format string, args ...any) *Error {
	return &Error{kind: ErrBusinessRule, msg: fmt.Sprintf(format, args...)}
}

// NewNotFoundError returns an error of kind ErrNotFound.
func NewNotFoundError(format string, args ...any) *Error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

var (
	ErrNegativeAmount   = NewValidationError("amount cannot be negative")
	ErrEmptyCurrency    = NewValidationError("currency cannot be empty")
	ErrAmountPrecision  = NewValidationError("amount cannot have more than %d decimal places", MaxAmountScale)
	ErrPriceTooLarge    = NewValidationError("price cannot exceed %d integer digits", MaxPriceIntegerDigits)
	ErrCurrencyMismatch = NewBusinessRuleError("cannot operate on money with different currencies")

	ErrNegativeStock        = NewValidationError("stock quantity cannot be negative")
	ErrNegativeStockDelta   = NewValidationError("stock amount cannot be negative")
	ErrInsufficientStock    = NewBusinessRuleError("insufficient stock")
	ErrNonPositiveStockMove = NewBusinessRuleError("quantity must be greater than zero")

	ErrEmptyCategoryName  = NewValidationError("category name cannot be empty")
	ErrEmptyProductName   = NewValidationError("product name cannot be empty")
	ErrProductNameTooLong = NewValidationError("product name cannot exceed %d characters", MaxProductNameLength)
	ErrEmptyCategoryID    = NewValidationError("category ID cannot be empty")
	ErrInvalidStatus      = NewValidationError("product status must be one of Active, Inactive, Discontinued")
	ErrIDAlreadyAssigned  = NewBusinessRuleError("identity has already been assigned")
)
