/*
Package shared provides the base building blocks for the domain layer:
identity, event recording, the Money value object and the error primitives
shared by all subdomains.

Error design:
 1. Sentinel errors support errors.Is() for type-safe classification.
 2. DomainError captures the call stack at creation but formats it lazily.
 3. Domain errors carry no transport concepts (no HTTP status codes).
 4. Standard library errors only; no third-party error packages.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNotFound marks absence of a resource. Absence is a normal outcome;
	// callers translate it into whatever semantics they need.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a resource conflict such as a concurrent modification.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput marks a validation failure at value-object construction.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCurrencyMismatch marks arithmetic between different currencies.
	// There is no implicit currency conversion.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// DomainError is a structured error carrying business context and the stack
// of its creation point. It supports errors.Is() and errors.As() through the
// wrapped sentinel.
type DomainError struct {
	// Err is the underlying sentinel, used by errors.Is().
	Err error

	// Entity names the domain object the error relates to ("order", "money").
	Entity string

	// Message is the human-readable description.
	Message string

	// Field optionally names the offending field for validation errors.
	Field string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack on demand; only called when logging.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// Stacker is implemented by errors that can report their creation stack.
// The API layer uses it to log the point where an error originated.
type Stacker interface {
	Stack() []string
}

// CaptureStack captures the current call stack. skip is the number of frames
// to drop (typically 3: Callers, CaptureStack, the NewXxxError constructor).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders stack frames, filtering runtime internals, max 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewNotFoundError creates a "not found" domain error.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a "conflict" domain error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a validation failure for a specific field.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewCurrencyMismatchError creates the error for cross-currency arithmetic.
func NewCurrencyMismatchError(have, want string) error {
	return &DomainError{
		Err:     ErrCurrencyMismatch,
		Entity:  "money",
		Field:   "currency",
		Message: fmt.Sprintf("currency mismatch: %s vs %s", have, want),
		stack:   CaptureStack(3),
	}
}
