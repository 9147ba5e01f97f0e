// Package order (application) hosts the use-case layer for orders. It
// orchestrates only: parse input, load aggregates, invoke domain behavior,
// persist through the unit of work. Business rules stay in the domain.
package order

import (
	"context"

	"go.uber.org/zap"

	"ddd-order/domain/order"
	"ddd-order/domain/shared"
)

// ApplicationService drives the order use cases. State-changing operations run
// inside a unit of work so that the aggregate write and its recorded events
// reach storage atomically. Each use case gets its own unit of work from the
// factory; concurrent requests never share registration state.
type ApplicationService struct {
	orders     order.Repository
	catalog    ProductCatalog
	uowFactory shared.UnitOfWorkFactory
	logger     *zap.Logger
}

func NewApplicationService(
	orders order.Repository,
	catalog ProductCatalog,
	uowFactory shared.UnitOfWorkFactory,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		orders:     orders,
		catalog:    catalog,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// PlaceOrder creates a draft order and adds the requested items, pricing each
// one from the catalog at this moment.
func (s *ApplicationService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	customerID, err := order.CustomerIDFrom(req.CustomerID)
	if err != nil {
		return nil, err
	}

	o := order.NewOrder(customerID)
	for _, item := range req.Items {
		productID, err := order.ProductIDFrom(item.ProductID)
		if err != nil {
			return nil, err
		}
		product, err := s.catalog.FindProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		if err := o.AddItem(productID, item.Quantity, product.Price); err != nil {
			return nil, err
		}
	}

	uow := s.uowFactory.New()
	uow.RegisterNew(o)
	err = uow.Execute(ctx, func(ctx context.Context) error {
		return s.orders.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", o.ID().String()),
		zap.String("customer_id", customerID.String()),
		zap.Int("items", len(o.Items())))

	return toOrderResponse(o)
}

// ConfirmOrder transitions a draft order to CONFIRMED.
func (s *ApplicationService) ConfirmOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(o *order.Order) error {
		return o.Confirm()
	})
}

// ShipOrder transitions a confirmed order to SHIPPED.
func (s *ApplicationService) ShipOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(o *order.Order) error {
		return o.Ship()
	})
}

// CancelOrder cancels a draft or confirmed order.
func (s *ApplicationService) CancelOrder(ctx context.Context, orderID, reason string) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(o *order.Order) error {
		return o.Cancel(reason)
	})
}

// mutate is the shared load-modify-save cycle for lifecycle transitions.
// The load happens inside the unit of work so the modification and the save
// see the same transaction.
func (s *ApplicationService) mutate(ctx context.Context, orderID string, fn func(o *order.Order) error) (*OrderResponse, error) {
	id, err := order.OrderIDFrom(orderID)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	var o *order.Order
	err = uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return s.orders.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order updated",
		zap.String("order_id", o.ID().String()),
		zap.String("status", string(o.Status())))

	return toOrderResponse(o)
}

// GetOrder returns a single order by id.
func (s *ApplicationService) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	id, err := order.OrderIDFrom(orderID)
	if err != nil {
		return nil, err
	}

	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o)
}

// GetCustomerOrders returns all orders of one customer, newest first.
func (s *ApplicationService) GetCustomerOrders(ctx context.Context, customerID string) ([]*OrderResponse, error) {
	id, err := order.CustomerIDFrom(customerID)
	if err != nil {
		return nil, err
	}

	ordersFound, err := s.orders.FindByCustomerID(ctx, id)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, 0, len(ordersFound))
	for _, o := range ordersFound {
		resp, err := toOrderResponse(o)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// DeleteOrder removes an order permanently.
func (s *ApplicationService) DeleteOrder(ctx context.Context, orderID string) error {
	id, err := order.OrderIDFrom(orderID)
	if err != nil {
		return err
	}

	err = s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		return s.orders.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("order deleted", zap.String("order_id", id.String()))
	return nil
}
