package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ddd-order/domain/shared"
)

// recordingPublisher captures published events; it can be told to fail.
type recordingPublisher struct {
	mu     sync.Mutex
	names  []string
	failOn string
}

func (p *recordingPublisher) Publish(ctx context.Context, event shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failOn != "" && event.EventName() == p.failOn {
		return errors.New("publish failed")
	}
	p.names = append(p.names, event.EventName())
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.names...)
}

func TestExecutePublishesInOrderAndClears(t *testing.T) {
	pub := &recordingPublisher{}
	uow := NewUnitOfWork(pub)

	o := newOrder(t, "cust-1")
	if err := o.Confirm(); err != nil {
		t.Fatal(err)
	}

	uow.RegisterNew(o)
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{"order.created", "order.confirmed"}
	got := pub.published()
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if len(o.PendingEvents()) != 0 {
		t.Error("events not cleared after successful execute")
	}
}

func TestExecuteFailureKeepsEvents(t *testing.T) {
	pub := &recordingPublisher{}
	uow := NewUnitOfWork(pub)
	o := newOrder(t, "cust-1")

	uow.RegisterNew(o)
	wantErr := errors.New("save failed")
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want the fn error", err)
	}

	if len(pub.published()) != 0 {
		t.Error("events published despite failed execute")
	}
	if len(o.PendingEvents()) != 1 {
		t.Error("events cleared despite failed execute")
	}
}

func TestExecutePublishFailureKeepsEvents(t *testing.T) {
	pub := &recordingPublisher{failOn: "order.created"}
	uow := NewUnitOfWork(pub)
	o := newOrder(t, "cust-1")

	uow.RegisterNew(o)
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		return nil
	})
	if err == nil {
		t.Fatal("expected publish error")
	}
	if len(o.PendingEvents()) != 1 {
		t.Error("events cleared despite failed publish")
	}
}

func TestConcurrentUseCasesDoNotShareRegistrations(t *testing.T) {
	pub := &recordingPublisher{}
	factory := NewUnitOfWorkFactory(pub)

	orderA := newOrder(t, "cust-a")
	orderB := newOrder(t, "cust-b")

	// Use case A registers its aggregate but has not executed yet when use
	// case B runs to completion.
	uowA := factory.New()
	uowA.RegisterNew(orderA)

	uowB := factory.New()
	uowB.RegisterNew(orderB)
	if err := uowB.Execute(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Fatal(err)
	}

	// B published only its own events; A's are untouched.
	for _, name := range pub.published() {
		if name != "order.created" {
			t.Errorf("unexpected event %s", name)
		}
	}
	if got := len(pub.published()); got != 1 {
		t.Fatalf("got %d published events, want only order B's 1", got)
	}
	if len(orderA.PendingEvents()) != 1 {
		t.Fatal("order A's events were drained by another use case")
	}

	// A's save now fails: nothing of A's may have been published, and its
	// events stay queued for a retry.
	saveErr := errors.New("save failed")
	err := uowA.Execute(context.Background(), func(ctx context.Context) error { return saveErr })
	if !errors.Is(err, saveErr) {
		t.Fatalf("got %v, want the save error", err)
	}
	if got := len(pub.published()); got != 1 {
		t.Errorf("got %d published events after A's failed save, want still 1", got)
	}
	if len(orderA.PendingEvents()) != 1 {
		t.Error("order A's events lost after failed save")
	}
}

func TestExecuteResetsRegistrations(t *testing.T) {
	pub := &recordingPublisher{}
	uow := NewUnitOfWork(pub)
	o := newOrder(t, "cust-1")

	uow.RegisterNew(o)
	if err := uow.Execute(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Fatal(err)
	}

	before := len(pub.published())
	if err := uow.Execute(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if len(pub.published()) != before {
		t.Error("previous registration leaked into the next execute")
	}
}
