package order

import "context"

// Repository is the persistence port for the Order aggregate. It speaks only
// domain language; implementations live in infrastructure and translate their
// storage errors into the domain error vocabulary (ErrOrderNotFound,
// ErrConcurrentModification).
//
// Save handles both creation and update, with optimistic concurrency: a save
// against a stale version fails with ErrConcurrentModification and the
// in-memory version counter is advanced only after the write succeeded.
type Repository interface {
	FindByID(ctx context.Context, id OrderID) (*Order, error)
	FindByCustomerID(ctx context.Context, customerID CustomerID) ([]*Order, error)
	Save(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id OrderID) error
}
