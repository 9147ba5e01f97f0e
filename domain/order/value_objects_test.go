package order

import (
	"errors"
	"testing"

	"ddd-order/domain/shared"
)

func TestNewOrderIDUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := NewOrderID()
		if _, dup := seen[id.String()]; dup {
			t.Fatalf("duplicate order id generated: %s", id)
		}
		seen[id.String()] = struct{}{}
	}
}

func TestOrderIDFromRejectsBlank(t *testing.T) {
	for _, value := range []string{"", "   ", "\t\n"} {
		_, err := OrderIDFrom(value)
		if err == nil {
			t.Errorf("blank value %q accepted", value)
			continue
		}
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	}
}

func TestOrderIDFromTrims(t *testing.T) {
	id, err := OrderIDFrom("  abc-123  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "abc-123" {
		t.Errorf("got %q, want %q", id.String(), "abc-123")
	}
}

func TestCustomerIDFrom(t *testing.T) {
	if _, err := CustomerIDFrom(" "); err == nil {
		t.Error("blank customer id accepted")
	}

	a, _ := CustomerIDFrom("cust-1")
	b, _ := CustomerIDFrom("cust-1")
	c, _ := CustomerIDFrom("cust-2")
	if !a.Equals(b) {
		t.Error("equal customer ids reported unequal")
	}
	if a.Equals(c) {
		t.Error("different customer ids reported equal")
	}
}

func TestProductIDFrom(t *testing.T) {
	if _, err := ProductIDFrom(""); err == nil {
		t.Error("blank product id accepted")
	}

	id, err := ProductIDFrom("widget-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "widget-1" {
		t.Errorf("got %q, want %q", id.String(), "widget-1")
	}
}
