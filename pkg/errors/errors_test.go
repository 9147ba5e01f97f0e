package errors

import (
	stderrors "errors"
	"testing"

	"ddd-order/domain/order"
	"ddd-order/domain/shared"
)

func TestFromDomainErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"order not found", order.NewOrderNotFoundError("abc"), CodeOrderNotFound},
		{"concurrent modification", order.NewConcurrentModificationError("abc"), CodeConcurrentModify},
		{"invalid quantity", order.ErrInvalidQuantity, CodeValidation},
		{"validation", shared.NewValidationError("order", "id", "blank"), CodeValidation},
		{"currency mismatch", shared.NewCurrencyMismatchError("USD", "EUR"), CodeCurrencyMismatch},
		{"cancelled modification", order.ErrCancelledOrderModification, CodeInvalidOrderState},
		{"not draft", order.ErrNotDraft, CodeInvalidOrderState},
		{"empty order", order.ErrEmptyOrder, CodeInvalidOrderState},
		{"invalid transition", order.NewInvalidTransitionError(order.StatusShipped, order.StatusCancelled), CodeInvalidOrderState},
		{"shared conflict", shared.NewConflictError("order", "conflict"), CodeConflict},
		{"shared not found", shared.NewNotFoundError("order"), CodeOrderNotFound},
		{"unknown", stderrors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDomainError(tt.err)
			if got.Code != tt.want {
				t.Errorf("got code %s, want %s", got.Code, tt.want)
			}
			if !stderrors.Is(got, tt.err) {
				t.Error("classification broke the error chain")
			}
		})
	}
}

func TestFromDomainErrorHidesInternalDetail(t *testing.T) {
	got := FromDomainError(stderrors.New("password=hunter2 leaked into message"))
	if got.Message != "internal error" {
		t.Errorf("internal error message leaked: %q", got.Message)
	}
}

func TestFromDomainErrorPassesThroughAppError(t *testing.T) {
	orig := New(CodeProductNotFound, "product not found")
	got := FromDomainError(orig)
	if got != orig {
		t.Error("existing AppError was rewrapped")
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("cause")
	err := Wrap(CodeInternal, "wrapped", cause)
	if !stderrors.Is(err, cause) {
		t.Error("Unwrap does not reach the cause")
	}
}
