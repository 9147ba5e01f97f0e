package shared

import (
	"testing"
	"time"
)

type testEvent struct {
	name        string
	aggregateID string
	occurredOn  time.Time
}

func (e *testEvent) EventName() string      { return e.name }
func (e *testEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *testEvent) GetAggregateID() string { return e.aggregateID }

func newTestEvent(name string) *testEvent {
	return &testEvent{name: name, aggregateID: "agg-1", occurredOn: time.Now()}
}

func TestEntityEqualsByIdentity(t *testing.T) {
	a := NewEntity("id-1")
	b := NewEntity("id-1")
	c := NewEntity("id-2")

	if !a.Equals(b) {
		t.Error("entities with the same id reported unequal")
	}
	if a.Equals(c) {
		t.Error("entities with different ids reported equal")
	}
}

func TestEventRecorderOrder(t *testing.T) {
	var r EventRecorder
	r.AddEvent(newTestEvent("first"))
	r.AddEvent(newTestEvent("second"))
	r.AddEvent(newTestEvent("third"))

	events := r.PendingEvents()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, want := range []string{"first", "second", "third"} {
		if events[i].EventName() != want {
			t.Errorf("event %d: got %s, want %s", i, events[i].EventName(), want)
		}
	}
}

func TestPendingEventsReturnsCopy(t *testing.T) {
	var r EventRecorder
	r.AddEvent(newTestEvent("only"))

	events := r.PendingEvents()
	events[0] = newTestEvent("tampered")

	if r.PendingEvents()[0].EventName() != "only" {
		t.Error("mutating the snapshot changed the queue")
	}
}

func TestClearEvents(t *testing.T) {
	var r EventRecorder
	r.AddEvent(newTestEvent("first"))
	r.ClearEvents()

	if len(r.PendingEvents()) != 0 {
		t.Error("queue not empty after clear")
	}

	// Recording keeps working after a clear.
	r.AddEvent(newTestEvent("second"))
	if len(r.PendingEvents()) != 1 {
		t.Error("recording after clear failed")
	}
}

func TestValidateEvent(t *testing.T) {
	if err := ValidateEvent(newTestEvent("ok")); err != nil {
		t.Errorf("valid event rejected: %v", err)
	}
	if err := ValidateEvent(nil); err == nil {
		t.Error("nil event accepted")
	}
	if err := ValidateEvent(&testEvent{aggregateID: "a", occurredOn: time.Now()}); err == nil {
		t.Error("event without name accepted")
	}
	if err := ValidateEvent(&testEvent{name: "n", occurredOn: time.Now()}); err == nil {
		t.Error("event without aggregate id accepted")
	}
	if err := ValidateEvent(&testEvent{name: "n", aggregateID: "a"}); err == nil {
		t.Error("event with zero time accepted")
	}
}
