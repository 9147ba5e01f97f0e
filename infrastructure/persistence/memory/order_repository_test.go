package memory

import (
	"context"
	"errors"
	"testing"

	"ddd-order/domain/order"
	"ddd-order/domain/shared"
)

func newOrder(t *testing.T, customer string) *order.Order {
	t.Helper()
	customerID, err := order.CustomerIDFrom(customer)
	if err != nil {
		t.Fatal(err)
	}
	o := order.NewOrder(customerID)

	productID, err := order.ProductIDFrom("widget")
	if err != nil {
		t.Fatal(err)
	}
	price, err := shared.NewMoney(1000, "USD")
	if err != nil {
		t.Fatal(err)
	}
	if err := o.AddItem(productID, 1, price); err != nil {
		t.Fatal(err)
	}
	return o
}

func TestSaveAndFindByID(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	o := newOrder(t, "cust-1")

	if err := repo.Save(ctx, o); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if o.Version() != 1 {
		t.Errorf("got version %d, want 1 after save", o.Version())
	}

	found, err := repo.FindByID(ctx, o.ID())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !found.ID().Equals(o.ID()) {
		t.Error("found wrong order")
	}
	if len(found.PendingEvents()) != 0 {
		t.Error("loaded aggregate carries pending events")
	}
}

func TestFindByIDNotFound(t *testing.T) {
	repo := NewOrderRepository()

	_, err := repo.FindByID(context.Background(), order.NewOrderID())
	if !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("got %v, want ErrOrderNotFound", err)
	}
}

func TestSaveDetectsConcurrentModification(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	o := newOrder(t, "cust-1")
	if err := repo.Save(ctx, o); err != nil {
		t.Fatal(err)
	}

	// Two sessions load the same version.
	first, err := repo.FindByID(ctx, o.ID())
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.FindByID(ctx, o.ID())
	if err != nil {
		t.Fatal(err)
	}

	if err := first.Confirm(); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	if err := second.Cancel("late"); err != nil {
		t.Fatal(err)
	}
	err = repo.Save(ctx, second)
	if !errors.Is(err, order.ErrConcurrentModification) {
		t.Errorf("got %v, want ErrConcurrentModification", err)
	}
}

func TestStoredStateIsIsolated(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	o := newOrder(t, "cust-1")
	if err := repo.Save(ctx, o); err != nil {
		t.Fatal(err)
	}

	// Mutating the loaded copy without saving must not leak into the store.
	loaded, err := repo.FindByID(ctx, o.ID())
	if err != nil {
		t.Fatal(err)
	}
	if err := loaded.Confirm(); err != nil {
		t.Fatal(err)
	}

	fresh, err := repo.FindByID(ctx, o.ID())
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Status() != order.StatusDraft {
		t.Errorf("unsaved mutation leaked: got status %s, want DRAFT", fresh.Status())
	}
}

func TestFindByCustomerID(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Save(ctx, newOrder(t, "cust-1")); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Save(ctx, newOrder(t, "cust-2")); err != nil {
		t.Fatal(err)
	}

	orders, err := repo.FindByCustomerID(ctx, mustCustomerID(t, "cust-1"))
	if err != nil {
		t.Fatalf("FindByCustomerID: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("got %d orders, want 3", len(orders))
	}
	for i := 1; i < len(orders); i++ {
		if orders[i].CreatedAt().After(orders[i-1].CreatedAt()) {
			t.Error("orders not sorted newest first")
		}
	}
}

func TestDelete(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	o := newOrder(t, "cust-1")
	if err := repo.Save(ctx, o); err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(ctx, o.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, o.ID()); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("got %v, want ErrOrderNotFound after delete", err)
	}
	if err := repo.Delete(ctx, o.ID()); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("second delete: got %v, want ErrOrderNotFound", err)
	}
}

func mustCustomerID(t *testing.T, v string) order.CustomerID {
	t.Helper()
	id, err := order.CustomerIDFrom(v)
	if err != nil {
		t.Fatal(err)
	}
	return id
}
