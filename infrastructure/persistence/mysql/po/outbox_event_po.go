package po

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ddd-order/domain/order"
	"ddd-order/domain/shared"
)

// Outbox delivery states. PENDING rows are picked up by the worker, moved to
// PROCESSING while in flight, and end as PUBLISHED or, after the retry budget
// is spent, FAILED.
const (
	OutboxStatusPending    = "PENDING"
	OutboxStatusProcessing = "PROCESSING"
	OutboxStatusPublished  = "PUBLISHED"
	OutboxStatusFailed     = "FAILED"
)

// OutboxEventPO is one row of the transactional outbox. It is written in the
// same transaction as the aggregate change it belongs to.
type OutboxEventPO struct {
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	EventID     string     `gorm:"column:event_id;size:36;uniqueIndex"`
	EventName   string     `gorm:"column:event_name;size:64;index"`
	AggregateID string     `gorm:"column:aggregate_id;size:36;index"`
	Payload     string     `gorm:"column:payload;type:json"`
	Status      string     `gorm:"column:status;size:16;index"`
	RetryCount  int        `gorm:"column:retry_count;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (OutboxEventPO) TableName() string { return "outbox_events" }

// FromDomainEvent serializes a domain event into an outbox row. Each event
// type gets an explicit payload shape; an unknown type is a programming error
// and is reported, not silently stored.
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	var payload any

	switch e := event.(type) {
	case *order.OrderCreatedEvent:
		payload = map[string]any{
			"order_id":    e.OrderID().String(),
			"customer_id": e.CustomerID().String(),
		}
	case *order.OrderConfirmedEvent:
		payload = map[string]any{
			"order_id":       e.OrderID().String(),
			"total_amount":   e.Total().Amount(),
			"total_currency": e.Total().Currency(),
		}
	case *order.OrderShippedEvent:
		payload = map[string]any{
			"order_id": e.OrderID().String(),
		}
	case *order.OrderCancelledEvent:
		payload = map[string]any{
			"order_id": e.OrderID().String(),
			"reason":   e.Reason(),
		}
	default:
		return nil, fmt.Errorf("unsupported event type %T", event)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", event.EventName(), err)
	}

	return &OutboxEventPO{
		EventID:     uuid.New().String(),
		EventName:   event.EventName(),
		AggregateID: event.GetAggregateID(),
		Payload:     string(body),
		Status:      OutboxStatusPending,
		RetryCount:  0,
		CreatedAt:   event.OccurredOn(),
	}, nil
}
