/*
Package order contains the Order aggregate, the core of this example.

The aggregate is the consistency boundary for a purchase order: all
modifications to the order and its line items go through the Order root,
which enforces the lifecycle state machine and records domain events.
Fields are private; behavior is exposed through methods only.
*/
package order

import (
	"time"

	"ddd-order/domain/shared"
)

// Status enumerates the order lifecycle. Transitions are monotonic along
// DRAFT -> CONFIRMED -> SHIPPED; CANCELLED is terminal and reachable from
// DRAFT or CONFIRMED only.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusCancelled Status = "CANCELLED"
)

// defaultCurrency is the working currency of an order before its first item
// fixes one.
const defaultCurrency = "USD"

// OrderItem is a line item inside the Order aggregate. It has no global
// identity and is never addressable from outside the aggregate. The unit
// price is captured when the item is first added; later price changes do not
// affect existing orders. Once added, an item only changes by quantity
// increase.
type OrderItem struct {
	productID ProductID
	quantity  int
	unitPrice shared.Money
}

func (i OrderItem) ProductID() ProductID    { return i.productID }
func (i OrderItem) Quantity() int           { return i.quantity }
func (i OrderItem) UnitPrice() shared.Money { return i.unitPrice }

// Subtotal is the line total: unit price times quantity.
func (i OrderItem) Subtotal() (shared.Money, error) {
	return i.unitPrice.Multiply(i.quantity)
}

// Order is the aggregate root for a customer's purchase order.
// It owns its line items exclusively; external code references an order only
// by OrderID and reads state through copying accessors.
type Order struct {
	shared.Entity[OrderID]
	shared.EventRecorder

	customerID CustomerID
	items      []OrderItem
	status     Status
	currency   string
	version    int
	createdAt  time.Time
	updatedAt  time.Time
}

// NewOrder is the only way to create an Order. It generates a fresh identity,
// starts the lifecycle in DRAFT with no items, and records the OrderCreated
// event. Every order that exists has emitted one.
func NewOrder(customerID CustomerID) *Order {
	id := NewOrderID()
	now := time.Now()
	o := &Order{
		Entity:     shared.NewEntity(id),
		customerID: customerID,
		items:      make([]OrderItem, 0),
		status:     StatusDraft,
		version:    0,
		createdAt:  now,
		updatedAt:  now,
	}
	o.AddEvent(NewOrderCreatedEvent(id, customerID))
	return o
}

// AddItem adds a product to the order, or increases the quantity of the
// existing line when the product is already present. Repeated adds accumulate
// quantity; they neither duplicate the line nor overwrite it. The first
// line fixes the order's working currency; items priced in another currency
// are rejected rather than failing later at total time.
func (o *Order) AddItem(productID ProductID, quantity int, unitPrice shared.Money) error {
	if o.status == StatusCancelled {
		return ErrCancelledOrderModification
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if o.currency == "" {
		o.currency = unitPrice.Currency()
	} else if unitPrice.Currency() != o.currency {
		return shared.NewCurrencyMismatchError(o.currency, unitPrice.Currency())
	}

	// Existing line for this product: merge quantities, keep the unit price
	// captured at first add.
	for i := range o.items {
		if o.items[i].productID.Equals(productID) {
			o.items[i].quantity += quantity
			o.updatedAt = time.Now()
			return nil
		}
	}

	o.items = append(o.items, OrderItem{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
	})
	o.updatedAt = time.Now()
	return nil
}

// Confirm transitions DRAFT -> CONFIRMED and records an OrderConfirmed event
// carrying the total computed at this moment. An order with no items cannot
// be confirmed.
func (o *Order) Confirm() error {
	if o.status != StatusDraft {
		return ErrNotDraft
	}
	if len(o.items) == 0 {
		return ErrEmptyOrder
	}

	total, err := o.Total()
	if err != nil {
		return err
	}

	o.status = StatusConfirmed
	o.updatedAt = time.Now()
	o.AddEvent(NewOrderConfirmedEvent(o.ID(), total))
	return nil
}

// Ship transitions CONFIRMED -> SHIPPED.
func (o *Order) Ship() error {
	if o.status != StatusConfirmed {
		return NewInvalidTransitionError(o.status, StatusShipped)
	}

	o.status = StatusShipped
	o.updatedAt = time.Now()
	o.AddEvent(NewOrderShippedEvent(o.ID()))
	return nil
}

// Cancel transitions DRAFT or CONFIRMED into the terminal CANCELLED state.
// Shipped orders cannot be cancelled.
func (o *Order) Cancel(reason string) error {
	if o.status != StatusDraft && o.status != StatusConfirmed {
		return NewInvalidTransitionError(o.status, StatusCancelled)
	}

	o.status = StatusCancelled
	o.updatedAt = time.Now()
	o.AddEvent(NewOrderCancelledEvent(o.ID(), reason))
	return nil
}

// Total is derived, never stored: the sum of all line subtotals accumulated
// from the zero of the order's working currency.
func (o *Order) Total() (shared.Money, error) {
	total := shared.Zero(o.Currency())
	for _, item := range o.items {
		subtotal, err := item.Subtotal()
		if err != nil {
			return shared.Money{}, err
		}
		total, err = total.Add(subtotal)
		if err != nil {
			return shared.Money{}, err
		}
	}
	return total, nil
}

func (o *Order) CustomerID() CustomerID { return o.customerID }
func (o *Order) Status() Status         { return o.status }
func (o *Order) CreatedAt() time.Time   { return o.createdAt }
func (o *Order) UpdatedAt() time.Time   { return o.updatedAt }
func (o *Order) Version() int           { return o.version }

// Currency returns the order's working currency; before any item was added
// it defaults to USD.
func (o *Order) Currency() string {
	if o.currency == "" {
		return defaultCurrency
	}
	return o.currency
}

// Items returns a copy of the line items so callers cannot bypass the
// aggregate's mutation contract.
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// IncrementVersion bumps the optimistic-lock counter. Repositories call this
// after a successful persisted write, never the domain itself.
func (o *Order) IncrementVersion() {
	o.version++
}

// ReconstructionDTO carries persisted state back into a private-field Order.
// It exists for repository implementations only; application code must use
// NewOrder.
type ReconstructionDTO struct {
	ID         OrderID
	CustomerID CustomerID
	Items      []OrderItem
	Status     Status
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RebuildFromDTO reconstitutes an Order from persistence. The rebuilt
// aggregate has an empty event queue: past events were already dispatched.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	currency := ""
	if len(dto.Items) > 0 {
		currency = dto.Items[0].unitPrice.Currency()
	}
	return &Order{
		Entity:     shared.NewEntity(dto.ID),
		customerID: dto.CustomerID,
		items:      dto.Items,
		status:     dto.Status,
		currency:   currency,
		version:    dto.Version,
		createdAt:  dto.CreatedAt,
		updatedAt:  dto.UpdatedAt,
	}
}

// ItemReconstructionDTO mirrors one persisted line item.
type ItemReconstructionDTO struct {
	ProductID ProductID
	Quantity  int
	UnitPrice shared.Money
}

// RebuildItemFromDTO reconstitutes a line item from persistence.
func RebuildItemFromDTO(dto ItemReconstructionDTO) OrderItem {
	return OrderItem{
		productID: dto.ProductID,
		quantity:  dto.Quantity,
		unitPrice: dto.UnitPrice,
	}
}

var _ shared.AggregateRoot = (*Order)(nil)
