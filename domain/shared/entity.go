package shared

// Entity provides identity to a domain object.
// Entities are compared by identity, not by attributes: two entities with the
// same ID are the same entity even if every other field differs.
//
// It is meant to be embedded (composition over inheritance); the embedding
// type gains ID() and Equals() without exposing a settable identifier.
type Entity[ID comparable] struct {
	id ID
}

// NewEntity creates the identity capability for a domain object.
func NewEntity[ID comparable](id ID) Entity[ID] {
	return Entity[ID]{id: id}
}

// ID returns the unique identifier.
func (e Entity[ID]) ID() ID {
	return e.id
}

// Equals compares by identity only.
func (e Entity[ID]) Equals(other Entity[ID]) bool {
	return e.id == other.id
}

// EventRecorder accumulates domain events raised by an aggregate.
// Like Entity it is an embeddable capability: the aggregate records events as
// state changes happen, the unit of work drains them after a successful save.
type EventRecorder struct {
	events []DomainEvent
}

// AddEvent appends an event to the pending queue. No validation happens here;
// events are validated when they cross the persistence boundary.
func (r *EventRecorder) AddEvent(event DomainEvent) {
	r.events = append(r.events, event)
}

// PendingEvents returns a snapshot of the uncommitted events, in the order
// they were recorded. Callers get a copy and cannot mutate the queue.
func (r *EventRecorder) PendingEvents() []DomainEvent {
	events := make([]DomainEvent, len(r.events))
	copy(events, r.events)
	return events
}

// ClearEvents empties the queue. Call only after the events have been durably
// persisted or published; clearing earlier loses events on failure.
func (r *EventRecorder) ClearEvents() {
	r.events = nil
}
