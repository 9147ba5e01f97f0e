// Package mysql implements the persistence ports on MySQL via GORM.
package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ddd-order/domain/order"
	"ddd-order/infrastructure/persistence"
	"ddd-order/infrastructure/persistence/mysql/po"
)

// OrderRepository persists Order aggregates. Writes use optimistic locking on
// the version column; the aggregate's in-memory counter is advanced only
// after the database accepted the write.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// dbFromContext joins the ambient transaction when the unit of work opened
// one, otherwise uses the base connection.
func (r *OrderRepository) dbFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := persistence.TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *OrderRepository) FindByID(ctx context.Context, id order.OrderID) (*order.Order, error) {
	var orderPO po.OrderPO
	err := r.dbFromContext(ctx).
		Preload("Items").
		First(&orderPO, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id.String())
		}
		return nil, err
	}
	return orderPO.ToDomain()
}

func (r *OrderRepository) FindByCustomerID(ctx context.Context, customerID order.CustomerID) ([]*order.Order, error) {
	var orderPOs []po.OrderPO
	err := r.dbFromContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID.String()).
		Order("created_at DESC").
		Find(&orderPOs).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(orderPOs))
	for i := range orderPOs {
		o, err := orderPOs[i].ToDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Save inserts a never-persisted aggregate (version 0) or updates an existing
// one. The update's WHERE clause compares the version the aggregate was
// loaded with; zero affected rows means another transaction won the race.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	db := r.dbFromContext(ctx)
	orderPO := po.FromDomain(o)
	next := o.Version() + 1

	if o.Version() == 0 {
		orderPO.Version = next
		if err := db.Create(orderPO).Error; err != nil {
			return err
		}
		o.IncrementVersion()
		return nil
	}

	result := db.Model(&po.OrderPO{}).
		Where("id = ? AND version = ?", orderPO.ID, o.Version()).
		Updates(map[string]any{
			"customer_id": orderPO.CustomerID,
			"status":      orderPO.Status,
			"version":     next,
			"updated_at":  orderPO.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&po.OrderPO{}).Where("id = ?", orderPO.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return order.NewOrderNotFoundError(orderPO.ID)
		}
		return order.NewConcurrentModificationError(orderPO.ID)
	}

	// Lines are replaced wholesale. They carry no identity beyond the
	// composite key, so diffing buys nothing.
	if err := db.Where("order_id = ?", orderPO.ID).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}
	if len(orderPO.Items) > 0 {
		if err := db.Create(&orderPO.Items).Error; err != nil {
			return err
		}
	}

	o.IncrementVersion()
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id order.OrderID) error {
	db := r.dbFromContext(ctx)

	result := db.Where("id = ?", id.String()).Delete(&po.OrderPO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewOrderNotFoundError(id.String())
	}
	return db.Where("order_id = ?", id.String()).Delete(&po.OrderItemPO{}).Error
}

var _ order.Repository = (*OrderRepository)(nil)
