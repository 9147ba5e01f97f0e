package order

import (
	"context"
	"errors"

	"ddd-order/domain/order"
	"ddd-order/domain/shared"
)

// ErrProductNotFound signals that a requested product does not exist in the
// catalog. The API layer maps it to a client error, not a server failure.
var ErrProductNotFound = errors.New("product not found")

// Product is the catalog's view of a sellable item. The order aggregate never
// sees it; the application service resolves it to a unit price at order time.
type Product struct {
	ID    order.ProductID
	Name  string
	Price shared.Money
}

// ProductCatalog is the outbound port for price lookup. Orders capture the
// price returned here; later catalog changes do not touch existing orders.
type ProductCatalog interface {
	FindProduct(ctx context.Context, id order.ProductID) (*Product, error)
}
