package order

import (
	"time"

	"ddd-order/domain/shared"
)

// OrderCreatedEvent is recorded once, by the aggregate factory. Every order
// that exists has emitted exactly one of these.
type OrderCreatedEvent struct {
	orderID    OrderID
	customerID CustomerID
	occurredOn time.Time
}

func NewOrderCreatedEvent(orderID OrderID, customerID CustomerID) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		orderID:    orderID,
		customerID: customerID,
		occurredOn: time.Now(),
	}
}

func (e *OrderCreatedEvent) EventName() string       { return "order.created" }
func (e *OrderCreatedEvent) OccurredOn() time.Time   { return e.occurredOn }
func (e *OrderCreatedEvent) GetAggregateID() string  { return e.orderID.String() }
func (e *OrderCreatedEvent) OrderID() OrderID        { return e.orderID }
func (e *OrderCreatedEvent) CustomerID() CustomerID  { return e.customerID }

// OrderConfirmedEvent carries the total computed at confirmation time.
type OrderConfirmedEvent struct {
	orderID    OrderID
	total      shared.Money
	occurredOn time.Time
}

func NewOrderConfirmedEvent(orderID OrderID, total shared.Money) *OrderConfirmedEvent {
	return &OrderConfirmedEvent{
		orderID:    orderID,
		total:      total,
		occurredOn: time.Now(),
	}
}

func (e *OrderConfirmedEvent) EventName() string      { return "order.confirmed" }
func (e *OrderConfirmedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderConfirmedEvent) GetAggregateID() string { return e.orderID.String() }
func (e *OrderConfirmedEvent) OrderID() OrderID       { return e.orderID }
func (e *OrderConfirmedEvent) Total() shared.Money    { return e.total }

type OrderShippedEvent struct {
	orderID    OrderID
	occurredOn time.Time
}

func NewOrderShippedEvent(orderID OrderID) *OrderShippedEvent {
	return &OrderShippedEvent{
		orderID:    orderID,
		occurredOn: time.Now(),
	}
}

func (e *OrderShippedEvent) EventName() string      { return "order.shipped" }
func (e *OrderShippedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderShippedEvent) GetAggregateID() string { return e.orderID.String() }
func (e *OrderShippedEvent) OrderID() OrderID       { return e.orderID }

type OrderCancelledEvent struct {
	orderID    OrderID
	reason     string
	occurredOn time.Time
}

func NewOrderCancelledEvent(orderID OrderID, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		orderID:    orderID,
		reason:     reason,
		occurredOn: time.Now(),
	}
}

func (e *OrderCancelledEvent) EventName() string      { return "order.cancelled" }
func (e *OrderCancelledEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderCancelledEvent) GetAggregateID() string { return e.orderID.String() }
func (e *OrderCancelledEvent) OrderID() OrderID       { return e.orderID }
func (e *OrderCancelledEvent) Reason() string         { return e.reason }
