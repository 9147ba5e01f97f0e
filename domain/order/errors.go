package order

import (
	"errors"

	"ddd-order/domain/shared"
)

// Sentinel errors for the order subdomain. Business-rule violations are a
// separate family from the validation errors in domain/shared: they signal a
// rejected operation on a well-formed aggregate, not malformed input.
// Callers classify with errors.Is().
var (
	// ErrOrderNotFound signals absence on repository lookup. Absence is a
	// normal outcome, distinguishable from infrastructure failures.
	ErrOrderNotFound = errors.New("order not found")

	// ErrConcurrentModification signals an optimistic-lock conflict: the
	// order was modified by another transaction. Callers may retry.
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")

	// ErrInvalidQuantity rejects non-positive item quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrCancelledOrderModification rejects item mutation after cancellation.
	ErrCancelledOrderModification = errors.New("cannot modify cancelled order")

	// ErrNotDraft rejects confirmation of a non-draft order.
	ErrNotDraft = errors.New("can only confirm draft orders")

	// ErrEmptyOrder rejects confirmation of an order with no items.
	ErrEmptyOrder = errors.New("cannot confirm empty order")

	// ErrInvalidStateTransition rejects a transition whose source state is
	// not in the valid source set (e.g. shipping a draft order).
	ErrInvalidStateTransition = errors.New("invalid order state transition")
)

// NewOrderNotFoundError creates a not-found error carrying the order id and
// the stack of its creation point (usually inside a repository).
func NewOrderNotFoundError(orderID string) error {
	return &orderError{
		sentinel: ErrOrderNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error.
func NewConcurrentModificationError(orderID string) error {
	return &orderError{
		sentinel: ErrConcurrentModification,
		message:  "order " + orderID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidTransitionError creates a state-machine violation error naming
// the attempted transition.
func NewInvalidTransitionError(from, to Status) error {
	return &orderError{
		sentinel: ErrInvalidStateTransition,
		message:  "cannot transition from " + string(from) + " to " + string(to),
		stack:    shared.CaptureStack(3),
	}
}

// orderError wraps a sentinel with context and a lazily formatted stack.
// It implements error, Unwrap and shared.Stacker.
type orderError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *orderError) Error() string {
	return e.message
}

func (e *orderError) Unwrap() error {
	return e.sentinel
}

func (e *orderError) Stack() []string {
	return shared.FormatStack(e.stack)
}
