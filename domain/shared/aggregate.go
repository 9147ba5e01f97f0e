package shared

// AggregateRoot is the contract the unit of work needs from any aggregate:
// a version for optimistic concurrency control and access to the domain
// events recorded since the last save.
//
// Aggregates satisfy it by embedding EventRecorder and keeping their own
// version counter. All modifications to objects inside an aggregate must go
// through its root; nothing outside the aggregate may hold a reference into
// its internals.
type AggregateRoot interface {
	// Version returns the optimistic-lock version counter. It is incremented
	// by the repository after each successful persisted mutation.
	Version() int

	// PendingEvents returns a snapshot of the uncommitted domain events.
	PendingEvents() []DomainEvent

	// ClearEvents empties the event queue after a successful save/publish.
	ClearEvents()
}
