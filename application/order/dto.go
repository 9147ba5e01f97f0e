package order

import "time"

// PlaceOrderRequest creates a draft order for a customer with an initial set
// of items. Prices are resolved from the catalog server-side; clients never
// supply them.
type PlaceOrderRequest struct {
	CustomerID string           `json:"customer_id" binding:"required"`
	Items      []PlaceOrderItem `json:"items"`
}

// PlaceOrderItem is one requested line: which product and how many.
type PlaceOrderItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// CancelOrderRequest carries the cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// OrderResponse is the read model returned to clients.
type OrderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Status     string              `json:"status"`
	Items      []OrderItemResponse `json:"items"`
	Total      MoneyResponse       `json:"total"`
	Version    int                 `json:"version"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// OrderItemResponse is one line item in the read model.
type OrderItemResponse struct {
	ProductID string        `json:"product_id"`
	Quantity  int           `json:"quantity"`
	UnitPrice MoneyResponse `json:"unit_price"`
	Subtotal  MoneyResponse `json:"subtotal"`
}

// MoneyResponse renders an amount in minor units plus its currency code.
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
