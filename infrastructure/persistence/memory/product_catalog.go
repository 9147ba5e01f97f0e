package memory

import (
	"context"
	"sync"

	apporder "ddd-order/application/order"
	"ddd-order/domain/order"
	"ddd-order/domain/shared"
)

// ProductCatalog is a fixed in-memory catalog. Good enough for development;
// a real deployment would back this port with the product service.
type ProductCatalog struct {
	mu       sync.RWMutex
	products map[string]apporder.Product
}

// NewProductCatalog returns a catalog seeded with a small USD product set.
func NewProductCatalog() *ProductCatalog {
	c := &ProductCatalog{
		products: make(map[string]apporder.Product),
	}
	for _, p := range []struct {
		id     string
		name   string
		amount int64
	}{
		{"widget-basic", "Basic Widget", 1999},
		{"widget-pro", "Pro Widget", 4999},
		{"gadget-mini", "Mini Gadget", 899},
		{"gadget-max", "Max Gadget", 12999},
	} {
		c.mustAdd(p.id, p.name, p.amount)
	}
	return c
}

func (c *ProductCatalog) mustAdd(id, name string, amount int64) {
	productID, err := order.ProductIDFrom(id)
	if err != nil {
		panic(err)
	}
	price, err := shared.NewMoney(amount, "USD")
	if err != nil {
		panic(err)
	}
	c.products[id] = apporder.Product{ID: productID, Name: name, Price: price}
}

// AddProduct registers or replaces a product. Used by tests and fixtures.
func (c *ProductCatalog) AddProduct(p apporder.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID.String()] = p
}

func (c *ProductCatalog) FindProduct(ctx context.Context, id order.ProductID) (*apporder.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id.String()]
	if !ok {
		return nil, apporder.ErrProductNotFound
	}
	return &p, nil
}

var _ apporder.ProductCatalog = (*ProductCatalog)(nil)
