package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ddd-order/domain/shared"
	"ddd-order/infrastructure/persistence"
	"ddd-order/infrastructure/persistence/mysql/po"
)

// OutboxRepository writes domain events to the outbox table. SaveEvent joins
// the ambient transaction, which is the whole point of the pattern: the event
// row commits or rolls back together with the aggregate row.
type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) dbFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := persistence.TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *OutboxRepository) SaveEvent(ctx context.Context, event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return err
	}
	eventPO, err := po.FromDomainEvent(event)
	if err != nil {
		return err
	}
	return r.dbFromContext(ctx).Create(eventPO).Error
}

// FetchPending claims up to limit pending events for delivery, oldest first.
// Claimed rows move to PROCESSING inside one transaction so concurrent worker
// instances do not deliver the same event twice.
func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]po.OutboxEventPO, error) {
	var events []po.OutboxEventPO
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("status = ?", po.OutboxStatusPending).
			Order("id ASC").
			Limit(limit).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Find(&events).Error
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		ids := make([]uint64, 0, len(events))
		for i := range events {
			ids = append(ids, events[i].ID)
		}
		return tx.Model(&po.OutboxEventPO{}).
			Where("id IN ?", ids).
			Update("status", po.OutboxStatusProcessing).Error
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// MarkPublished finalizes a delivered event.
func (r *OutboxRepository) MarkPublished(ctx context.Context, id uint64) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&po.OutboxEventPO{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       po.OutboxStatusPublished,
			"published_at": &now,
		}).Error
}

// Release returns a claimed row to PENDING without counting a retry. Used for
// rows that were skipped, not failed, e.g. events held back behind a failed
// earlier event of the same aggregate.
func (r *OutboxRepository) Release(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Model(&po.OutboxEventPO{}).
		Where("id = ?", id).
		Update("status", po.OutboxStatusPending).Error
}

// MarkFailed records a delivery failure. Events under the retry budget return
// to PENDING for the next poll; the rest park as FAILED for operator review.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64, retryCount, maxRetries int) error {
	status := po.OutboxStatusPending
	if retryCount >= maxRetries {
		status = po.OutboxStatusFailed
	}
	return r.db.WithContext(ctx).Model(&po.OutboxEventPO{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      status,
			"retry_count": retryCount,
		}).Error
}

var _ shared.OutboxRepository = (*OutboxRepository)(nil)
