// Package memory provides in-process adapters used in development and tests.
// They honor the same contracts as the MySQL adapters, including optimistic
// concurrency, so the application behaves identically against either.
package memory

import (
	"context"
	"sort"
	"sync"

	"ddd-order/domain/order"
)

// OrderRepository keeps aggregates in a map guarded by a RWMutex. Stored
// values are deep clones: callers never share item slices with the store, so
// mutating a loaded aggregate without saving cannot corrupt persisted state.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*order.Order),
	}
}

func (r *OrderRepository) FindByID(ctx context.Context, id order.OrderID) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id.String()]
	if !ok {
		return nil, order.NewOrderNotFoundError(id.String())
	}
	return clone(o), nil
}

func (r *OrderRepository) FindByCustomerID(ctx context.Context, customerID order.CustomerID) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*order.Order
	for _, o := range r.orders {
		if o.CustomerID().Equals(customerID) {
			result = append(result, clone(o))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt().After(result[j].CreatedAt())
	})
	return result, nil
}

// Save persists a new aggregate or updates an existing one. The stored
// version must match the caller's version or the write is rejected; on
// success the caller's in-memory counter is advanced past the stored one.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[o.ID().String()]
	if ok && existing.Version() != o.Version() {
		return order.NewConcurrentModificationError(o.ID().String())
	}

	stored := clone(o)
	stored.IncrementVersion()
	r.orders[o.ID().String()] = stored
	o.IncrementVersion()
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id order.OrderID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id.String()]; !ok {
		return order.NewOrderNotFoundError(id.String())
	}
	delete(r.orders, id.String())
	return nil
}

// clone rebuilds an independent copy through the reconstruction path, the
// same round trip a database adapter performs. The copy carries no pending
// events.
func clone(o *order.Order) *order.Order {
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Items:      o.Items(),
		Status:     o.Status(),
		Version:    o.Version(),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	})
}
