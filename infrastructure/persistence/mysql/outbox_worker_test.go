package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"ddd-order/domain/shared"
	"ddd-order/infrastructure/persistence/mysql/po"
)

// fakeOutboxStore keeps rows in a slice and records status transitions.
type fakeOutboxStore struct {
	rows      []po.OutboxEventPO
	published []uint64
	failed    []uint64
	released  []uint64
}

func (s *fakeOutboxStore) FetchPending(ctx context.Context, limit int) ([]po.OutboxEventPO, error) {
	var pending []po.OutboxEventPO
	for i := range s.rows {
		if s.rows[i].Status == po.OutboxStatusPending && len(pending) < limit {
			s.rows[i].Status = po.OutboxStatusProcessing
			pending = append(pending, s.rows[i])
		}
	}
	return pending, nil
}

func (s *fakeOutboxStore) MarkPublished(ctx context.Context, id uint64) error {
	s.published = append(s.published, id)
	s.setStatus(id, po.OutboxStatusPublished)
	return nil
}

func (s *fakeOutboxStore) MarkFailed(ctx context.Context, id uint64, retryCount, maxRetries int) error {
	s.failed = append(s.failed, id)
	status := po.OutboxStatusPending
	if retryCount >= maxRetries {
		status = po.OutboxStatusFailed
	}
	s.setStatus(id, status)
	return nil
}

func (s *fakeOutboxStore) Release(ctx context.Context, id uint64) error {
	s.released = append(s.released, id)
	s.setStatus(id, po.OutboxStatusPending)
	return nil
}

func (s *fakeOutboxStore) setStatus(id uint64, status string) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Status = status
		}
	}
}

// failingPublisher fails every event whose name is in failOn.
type failingPublisher struct {
	failOn map[string]bool
	names  []string
}

func (p *failingPublisher) Publish(ctx context.Context, event shared.DomainEvent) error {
	if p.failOn[event.EventName()] {
		return errors.New("broker unavailable")
	}
	p.names = append(p.names, event.EventName()+":"+event.GetAggregateID())
	return nil
}

func outboxRow(id uint64, aggregateID, name string) po.OutboxEventPO {
	return po.OutboxEventPO{
		ID:          id,
		EventID:     name + "-" + aggregateID,
		EventName:   name,
		AggregateID: aggregateID,
		Payload:     "{}",
		Status:      po.OutboxStatusPending,
		CreatedAt:   time.Now(),
	}
}

func TestProcessBatchHoldsBackAggregateAfterFailure(t *testing.T) {
	store := &fakeOutboxStore{rows: []po.OutboxEventPO{
		outboxRow(1, "order-a", "order.created"),
		outboxRow(2, "order-b", "order.created"),
		outboxRow(3, "order-a", "order.confirmed"),
	}}
	pub := &failingPublisher{failOn: map[string]bool{"order.created": true}}
	worker := NewOutboxWorker(store, pub, zap.NewNop(), OutboxWorkerConfig{})

	if err := worker.processBatch(context.Background()); err != nil {
		t.Fatalf("processBatch: %v", err)
	}

	// order-a's later confirmed event must not jump ahead of its failed
	// created event. order-b fails independently.
	if len(pub.names) != 0 {
		t.Errorf("published %v despite earlier failures for those aggregates", pub.names)
	}
	if len(store.failed) != 2 {
		t.Errorf("got %d failed rows, want 2 (both created events)", len(store.failed))
	}
	if len(store.released) != 1 || store.released[0] != 3 {
		t.Errorf("got released rows %v, want [3] (held-back confirmed event)", store.released)
	}
	// A held-back row returns to PENDING with no retry counted, ready for
	// the next poll.
	for _, row := range store.rows {
		if row.ID == 3 {
			if row.Status != po.OutboxStatusPending {
				t.Errorf("held-back row status %s, want PENDING", row.Status)
			}
			if row.RetryCount != 0 {
				t.Errorf("held-back row retry count %d, want 0", row.RetryCount)
			}
		}
	}
}

func TestProcessBatchFailureDoesNotBlockOtherAggregates(t *testing.T) {
	store := &fakeOutboxStore{rows: []po.OutboxEventPO{
		outboxRow(1, "order-a", "order.created"),
		outboxRow(2, "order-b", "order.shipped"),
		outboxRow(3, "order-a", "order.confirmed"),
	}}
	pub := &failingPublisher{failOn: map[string]bool{"order.created": true}}
	worker := NewOutboxWorker(store, pub, zap.NewNop(), OutboxWorkerConfig{})

	if err := worker.processBatch(context.Background()); err != nil {
		t.Fatalf("processBatch: %v", err)
	}

	if len(pub.names) != 1 || pub.names[0] != "order.shipped:order-b" {
		t.Errorf("got published %v, want only order-b's event", pub.names)
	}
	if len(store.published) != 1 || store.published[0] != 2 {
		t.Errorf("got published rows %v, want [2]", store.published)
	}
}

func TestProcessBatchPublishesInOrder(t *testing.T) {
	store := &fakeOutboxStore{rows: []po.OutboxEventPO{
		outboxRow(1, "order-a", "order.created"),
		outboxRow(2, "order-a", "order.confirmed"),
		outboxRow(3, "order-a", "order.shipped"),
	}}
	pub := &failingPublisher{}
	worker := NewOutboxWorker(store, pub, zap.NewNop(), OutboxWorkerConfig{})

	if err := worker.processBatch(context.Background()); err != nil {
		t.Fatalf("processBatch: %v", err)
	}

	want := []string{"order.created:order-a", "order.confirmed:order-a", "order.shipped:order-a"}
	if len(pub.names) != len(want) {
		t.Fatalf("got %d events, want %d", len(pub.names), len(want))
	}
	for i := range want {
		if pub.names[i] != want[i] {
			t.Errorf("event %d: got %s, want %s", i, pub.names[i], want[i])
		}
	}
}
