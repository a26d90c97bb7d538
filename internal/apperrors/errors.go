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

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the acting user lacks the role required for the operation.
var ErrForbidden = errors.New("insufficient permissions for this action")

// ErrConflict indicates the operation conflicts with the current state of the
// resource (e.g. activating an already-activated subscription).
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrSubscriptionExpired indicates the company has no currently active subscription.
var ErrSubscriptionExpired = errors.New("subscription has expired")

// ErrRechargeRequired indicates the company's credit balance is empty, or its
// ledger has no entries yet, so there is nothing to spend.
var ErrRechargeRequired = errors.New("credit balance exhausted, recharge required")

// ErrGatewayUnavailable indicates the SMS provider (pricing or sending) could
// not be reached. It must never be conflated with a zero cost.
var ErrGatewayUnavailable = errors.New("sms gateway unavailable, try again later")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// InsufficientBalanceError reports a dispatch whose total cost exceeds the
// company's current credit balance. It carries both figures so callers can
// show them to the user.
type InsufficientBalanceError struct {
	Balance  decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: current %s, required %s", e.Balance.String(), e.Required.String())
}

// NewInsufficientBalanceError builds an InsufficientBalanceError from the
// current balance and the amount the operation needed.
func NewInsufficientBalanceError(balance, required decimal.Decimal) *InsufficientBalanceError {
	return &InsufficientBalanceError{Balance: balance, Required: required}
}

// AppError wraps a lower-level error with an HTTP-ish status code and a
// message safe to surface. Repositories use it for transaction-level
// failures; handlers translate the code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
