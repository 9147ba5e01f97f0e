// Package errors defines the application-level error vocabulary: stable codes
// that outer layers (HTTP today, gRPC or CLI tomorrow) translate into their
// own status space. No transport knowledge lives here.
package errors

import (
	"errors"

	"ddd-order/domain/order"
	"ddd-order/domain/shared"
)

// ErrorCode is a stable, machine-readable error identifier.
type ErrorCode string

const (
	CodeValidation        ErrorCode = "VALIDATION"
	CodeOrderNotFound     ErrorCode = "ORDER_NOT_FOUND"
	CodeProductNotFound   ErrorCode = "PRODUCT_NOT_FOUND"
	CodeInvalidOrderState ErrorCode = "INVALID_ORDER_STATE"
	CodeCurrencyMismatch  ErrorCode = "CURRENCY_MISMATCH"
	CodeConcurrentModify  ErrorCode = "CONCURRENT_MODIFY"
	CodeConflict          ErrorCode = "CONFLICT"
	CodeInternal          ErrorCode = "INTERNAL"
)

// AppError pairs a code with a caller-safe message while keeping the cause
// for logs.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError without a cause.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// FromDomainError classifies a domain error into the application vocabulary.
// Unknown errors become INTERNAL with a generic message; the cause still
// travels for logging.
func FromDomainError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return Wrap(CodeOrderNotFound, err.Error(), err)
	case errors.Is(err, order.ErrConcurrentModification):
		return Wrap(CodeConcurrentModify, err.Error(), err)
	case errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, shared.ErrInvalidInput):
		return Wrap(CodeValidation, err.Error(), err)
	case errors.Is(err, shared.ErrCurrencyMismatch):
		return Wrap(CodeCurrencyMismatch, err.Error(), err)
	case errors.Is(err, order.ErrCancelledOrderModification),
		errors.Is(err, order.ErrNotDraft),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidStateTransition):
		return Wrap(CodeInvalidOrderState, err.Error(), err)
	case errors.Is(err, shared.ErrConflict):
		return Wrap(CodeConflict, err.Error(), err)
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(CodeOrderNotFound, err.Error(), err)
	default:
		return Wrap(CodeInternal, "internal error", err)
	}
}
