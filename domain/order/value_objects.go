package order

import (
	"strings"

	"ddd-order/domain/shared"

	"github.com/google/uuid"
)

// OrderID is the value object identifying an Order aggregate.
type OrderID struct {
	value string
}

// NewOrderID generates a fresh, globally unique OrderID (128-bit random UUID).
func NewOrderID() OrderID {
	return OrderID{value: uuid.New().String()}
}

// OrderIDFrom reconstitutes an OrderID from an existing string value.
// The value must not be blank.
func OrderIDFrom(value string) (OrderID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return OrderID{}, shared.NewValidationError("order", "id", "order id cannot be blank")
	}
	return OrderID{value: value}, nil
}

func (id OrderID) String() string { return id.value }

// Equals compares by value.
func (id OrderID) Equals(other OrderID) bool { return id.value == other.value }

// CustomerID is the value object identifying the customer placing an order.
// The order aggregate only ever holds the identifier, never a customer object.
type CustomerID struct {
	value string
}

// CustomerIDFrom creates a CustomerID. The value must not be blank.
func CustomerIDFrom(value string) (CustomerID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return CustomerID{}, shared.NewValidationError("order", "customer_id", "customer id cannot be blank")
	}
	return CustomerID{value: value}, nil
}

func (id CustomerID) String() string { return id.value }

// Equals compares by value.
func (id CustomerID) Equals(other CustomerID) bool { return id.value == other.value }

// ProductID is the value object identifying a product on an order line.
// It is also the dedup key: an order holds at most one line per product.
type ProductID struct {
	value string
}

// ProductIDFrom creates a ProductID. The value must not be blank.
func ProductIDFrom(value string) (ProductID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ProductID{}, shared.NewValidationError("order", "product_id", "product id cannot be blank")
	}
	return ProductID{value: value}, nil
}

func (id ProductID) String() string { return id.value }

// Equals compares by value.
func (id ProductID) Equals(other ProductID) bool { return id.value == other.value }
