package mysql

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ddd-order/domain/shared"
	"ddd-order/infrastructure/persistence/mysql/po"
)

// outboxStore is the slice of the outbox repository the worker needs.
type outboxStore interface {
	FetchPending(ctx context.Context, limit int) ([]po.OutboxEventPO, error)
	MarkPublished(ctx context.Context, id uint64) error
	MarkFailed(ctx context.Context, id uint64, retryCount, maxRetries int) error
	Release(ctx context.Context, id uint64) error
}

// OutboxWorker polls the outbox table and pushes events to the configured
// publisher. It is the asynchronous half of the transactional outbox: the
// request path only writes rows, delivery happens here.
type OutboxWorker struct {
	outbox       outboxStore
	publisher    shared.EventPublisher
	logger       *zap.Logger
	pollInterval time.Duration
	batchSize    int
	maxRetries   int
}

type OutboxWorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxRetries   int
}

func NewOutboxWorker(outbox outboxStore, publisher shared.EventPublisher, logger *zap.Logger, cfg OutboxWorkerConfig) *OutboxWorker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &OutboxWorker{
		outbox:       outbox,
		publisher:    publisher,
		logger:       logger,
		pollInterval: cfg.PollInterval,
		batchSize:    cfg.BatchSize,
		maxRetries:   cfg.MaxRetries,
	}
}

// Run polls until the context is cancelled.
func (w *OutboxWorker) Run(ctx context.Context) {
	w.logger.Info("outbox worker started",
		zap.Duration("poll_interval", w.pollInterval),
		zap.Int("batch_size", w.batchSize))

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := w.processBatch(ctx); err != nil {
				w.logger.Error("outbox batch failed", zap.Error(err))
			}
		}
	}
}

func (w *OutboxWorker) processBatch(ctx context.Context) error {
	events, err := w.outbox.FetchPending(ctx, w.batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	// Events of one aggregate must go out in recorded order. After a failed
	// publish, later events of that aggregate are held back (released to
	// PENDING, no retry counted) until the failed one succeeds.
	blocked := make(map[string]struct{})
	for i := range events {
		row := &events[i]
		if _, held := blocked[row.AggregateID]; held {
			if err := w.outbox.Release(ctx, row.ID); err != nil {
				w.logger.Error("outbox status update failed", zap.Uint64("outbox_id", row.ID), zap.Error(err))
			}
			continue
		}

		err := w.publisher.Publish(ctx, &outboxEvent{
			name:        row.EventName,
			aggregateID: row.AggregateID,
			occurredOn:  row.CreatedAt,
			payload:     row.Payload,
		})
		if err != nil {
			blocked[row.AggregateID] = struct{}{}
			w.logger.Warn("event delivery failed",
				zap.String("event", row.EventName),
				zap.Uint64("outbox_id", row.ID),
				zap.Int("retry_count", row.RetryCount+1),
				zap.Error(err))
			if markErr := w.outbox.MarkFailed(ctx, row.ID, row.RetryCount+1, w.maxRetries); markErr != nil {
				w.logger.Error("outbox status update failed", zap.Uint64("outbox_id", row.ID), zap.Error(markErr))
			}
			continue
		}
		if err := w.outbox.MarkPublished(ctx, row.ID); err != nil {
			w.logger.Error("outbox status update failed", zap.Uint64("outbox_id", row.ID), zap.Error(err))
		}
	}

	w.logger.Debug("outbox batch processed", zap.Int("count", len(events)))
	return nil
}

// outboxEvent adapts a stored outbox row back to the DomainEvent interface
// for delivery. The payload travels as the serialized JSON written at save
// time.
type outboxEvent struct {
	name        string
	aggregateID string
	occurredOn  time.Time
	payload     string
}

func (e *outboxEvent) EventName() string      { return e.name }
func (e *outboxEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *outboxEvent) GetAggregateID() string { return e.aggregateID }

// Payload returns the serialized event body.
func (e *outboxEvent) Payload() string { return e.payload }
