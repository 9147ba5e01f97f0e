package memory

import (
	"context"

	"go.uber.org/zap"

	"ddd-order/domain/shared"
)

// LoggingEventPublisher writes each event to the structured log. It stands in
// for a message broker in development mode.
type LoggingEventPublisher struct {
	logger *zap.Logger
}

func NewLoggingEventPublisher(logger *zap.Logger) *LoggingEventPublisher {
	return &LoggingEventPublisher{logger: logger}
}

func (p *LoggingEventPublisher) Publish(ctx context.Context, event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return err
	}
	p.logger.Info("domain event published",
		zap.String("event", event.EventName()),
		zap.String("aggregate_id", event.GetAggregateID()),
		zap.Time("occurred_on", event.OccurredOn()))
	return nil
}

var _ shared.EventPublisher = (*LoggingEventPublisher)(nil)
