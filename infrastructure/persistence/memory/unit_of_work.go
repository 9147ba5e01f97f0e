package memory

import (
	"context"
	"sync"

	"ddd-order/domain/shared"
)

// UnitOfWorkFactory hands out one UnitOfWork per use-case execution. The
// publisher is shared; the registration state is not.
type UnitOfWorkFactory struct {
	publisher shared.EventPublisher
}

func NewUnitOfWorkFactory(publisher shared.EventPublisher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{publisher: publisher}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	return NewUnitOfWork(f.publisher)
}

// UnitOfWork is the no-database unit of work: there is no transaction to
// manage, so Execute just runs the function and then dispatches the events of
// every registered aggregate, in the order they were recorded. Queues are
// cleared only after every event went out.
//
// An instance serves a single use-case execution; the registered list is that
// execution's private state.
type UnitOfWork struct {
	publisher shared.EventPublisher

	mu         sync.Mutex
	registered []shared.AggregateRoot
}

func NewUnitOfWork(publisher shared.EventPublisher) *UnitOfWork {
	return &UnitOfWork{publisher: publisher}
}

func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.register(aggregate)
}

func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.register(aggregate)
}

func (u *UnitOfWork) register(aggregate shared.AggregateRoot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.registered = append(u.registered, aggregate)
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	defer u.reset()

	if err := fn(ctx); err != nil {
		return err
	}

	u.mu.Lock()
	aggregates := u.registered
	u.registered = nil
	u.mu.Unlock()

	for _, aggregate := range aggregates {
		for _, event := range aggregate.PendingEvents() {
			if err := u.publisher.Publish(ctx, event); err != nil {
				return err
			}
		}
	}
	for _, aggregate := range aggregates {
		aggregate.ClearEvents()
	}
	return nil
}

func (u *UnitOfWork) reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.registered = nil
}

var (
	_ shared.UnitOfWork        = (*UnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
)
