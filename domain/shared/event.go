package shared

import (
	"context"
	"fmt"
	"time"
)

// DomainEvent is an immutable, past-tense fact recorded by an aggregate.
// Events carry no behavior; they are pure data for downstream consumers.
// Events from the same aggregate must be published in the order they were
// recorded (FIFO). No ordering is imposed across aggregates.
type DomainEvent interface {
	// EventName returns the event type identifier, e.g. "order.created".
	EventName() string

	// OccurredOn returns when the event was created.
	OccurredOn() time.Time

	// GetAggregateID returns the identifier of the aggregate that raised it.
	GetAggregateID() string
}

// EventPublisher is the outbound port for event publication. Implementations
// live in infrastructure; the core only requires that events are published
// after durable persistence succeeded, in recorded order, at least once.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}

// ValidateEvent rejects malformed events before they cross the persistence
// or publication boundary.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}
	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}
	return nil
}
