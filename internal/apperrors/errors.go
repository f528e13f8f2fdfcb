package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrIllegalTransition indicates that the requested operation is not allowed from the
// current status of the resource.
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrImmutable is returned when editing or deleting an entry that has left draft.
var ErrImmutable = fmt.Errorf("%w: entry is no longer a draft and cannot be modified", ErrIllegalTransition)

// ErrIntegrity indicates that an operation would leave dangling references
// (e.g. deleting an account that still has balances).
var ErrIntegrity = errors.New("referential integrity violation")

// ErrUnbalanced indicates that the debit and credit sides of an entry differ.
var ErrUnbalanced = errors.New("journal entry is not balanced")

// ErrRateUnavailable indicates that no exchange rate could be resolved for a currency pair.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrRateOutOfBounds indicates that a rate falls outside the currency's configured bounds.
var ErrRateOutOfBounds = errors.New("exchange rate outside configured bounds")

// UnbalancedError carries the computed base-currency totals of an unbalanced entry.
type UnbalancedError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("%s: total debit is %s and total credit is %s",
		ErrUnbalanced.Error(), e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2))
}

// Is makes an UnbalancedError match both ErrUnbalanced and ErrValidation.
func (e *UnbalancedError) Is(target error) bool {
	return target == ErrUnbalanced || target == ErrValidation
}

// NewUnbalancedError builds an UnbalancedError from the computed totals.
func NewUnbalancedError(totalDebit, totalCredit decimal.Decimal) error {
	return &UnbalancedError{TotalDebit: totalDebit, TotalCredit: totalCredit}
}

// NewValidationError wraps a message as a validation error.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NewDuplicateError reports a uniqueness violation. Duplicates are a validation failure.
func NewDuplicateError(format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrValidation, ErrDuplicate, fmt.Sprintf(format, args...))
}

// NewNotFoundError reports a missing resource of the given kind.
func NewNotFoundError(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

// NewIntegrityError reports a referential integrity violation.
func NewIntegrityError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIntegrity, fmt.Sprintf(format, args...))
}
