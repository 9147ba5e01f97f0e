package shared

import "context"

// UnitOfWork manages the transaction boundary of one use-case execution and
// collects domain events from the aggregates touched inside it. Events reach
// their destination (outbox table or publisher) only if the unit of work
// completes; the aggregates' queues are cleared only after that succeeded.
//
// A UnitOfWork instance belongs to exactly one use-case execution. It must
// not be shared across concurrent executions; obtain a fresh one from a
// UnitOfWorkFactory per use case.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
}

// UnitOfWorkFactory creates a fresh UnitOfWork per use-case execution, so
// registrations of concurrent executions never mix.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository persists domain events transactionally with the business
// data they belong to (transactional outbox pattern).
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
