package mysql

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ddd-order/domain/shared"
	"ddd-order/infrastructure/persistence"
	"ddd-order/infrastructure/persistence/retry"
)

// UnitOfWorkFactory hands out one UnitOfWork per use-case execution. The
// connection pool, outbox and retry policy are shared; the registration
// state is not.
type UnitOfWorkFactory struct {
	db     *gorm.DB
	outbox shared.OutboxRepository
	logger *zap.Logger
	retry  retry.Config
}

func NewUnitOfWorkFactory(db *gorm.DB, outbox shared.OutboxRepository, logger *zap.Logger, retryCfg retry.Config) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		db:     db,
		outbox: outbox,
		logger: logger,
		retry:  retryCfg,
	}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	return NewUnitOfWork(f.db, f.outbox, f.logger, f.retry)
}

// UnitOfWork runs a use case inside one database transaction and writes the
// registered aggregates' events to the outbox in that same transaction.
// Event queues are cleared only after the commit, so a rollback leaves the
// events pending for the retried attempt.
//
// An instance serves a single use-case execution; the registered list is that
// execution's private state.
type UnitOfWork struct {
	db     *gorm.DB
	outbox shared.OutboxRepository
	logger *zap.Logger
	retry  retry.Config

	mu         sync.Mutex
	registered []shared.AggregateRoot
}

func NewUnitOfWork(db *gorm.DB, outbox shared.OutboxRepository, logger *zap.Logger, retryCfg retry.Config) *UnitOfWork {
	return &UnitOfWork{
		db:     db,
		outbox: outbox,
		logger: logger,
		retry:  retryCfg,
	}
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

// Execute wraps fn in a transaction, appends outbox rows for every pending
// event of the registered aggregates, and commits. Transient MySQL failures
// (deadlock, lock wait timeout) retry the whole cycle with backoff; the
// events are still pending on each retry because clearing happens last.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	defer u.reset()

	// Aggregates registered before Execute survive retries; ones registered
	// inside a failed attempt are discarded so the retried fn re-registers
	// them without duplicating their events.
	u.mu.Lock()
	preRegistered := len(u.registered)
	u.mu.Unlock()

	return retry.ExecuteWithRetry(ctx, u.retry, u.logger, func(ctx context.Context) error {
		u.truncate(preRegistered)
		err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			txCtx := persistence.ContextWithTx(ctx, tx)
			if err := fn(txCtx); err != nil {
				return err
			}

			for _, aggregate := range u.snapshot() {
				for _, event := range aggregate.PendingEvents() {
					if err := u.outbox.SaveEvent(txCtx, event); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, aggregate := range u.snapshot() {
			aggregate.ClearEvents()
		}
		return nil
	})
}

func (u *UnitOfWork) snapshot() []shared.AggregateRoot {
	u.mu.Lock()
	defer u.mu.Unlock()
	aggregates := make([]shared.AggregateRoot, len(u.registered))
	copy(aggregates, u.registered)
	return aggregates
}

func (u *UnitOfWork) truncate(n int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.registered) > n {
		u.registered = u.registered[:n]
	}
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
