// Package po defines the persistence objects mapped by GORM. They are plain
// rows, deliberately separate from domain types: the domain keeps private
// fields and invariants, the PO keeps column tags. Conversion happens only
// here.
package po

import (
	"time"

	"ddd-order/domain/order"
	"ddd-order/domain/shared"
)

// OrderPO is the orders table row. The total is not stored; it is derived
// from the items on read.
type OrderPO struct {
	ID         string        `gorm:"column:id;primaryKey;size:36"`
	CustomerID string        `gorm:"column:customer_id;size:64;index"`
	Status     string        `gorm:"column:status;size:16"`
	Version    int           `gorm:"column:version;not null"`
	CreatedAt  time.Time     `gorm:"column:created_at"`
	UpdatedAt  time.Time     `gorm:"column:updated_at"`
	Items      []OrderItemPO `gorm:"foreignKey:OrderID;references:ID"`
}

func (OrderPO) TableName() string { return "orders" }

// OrderItemPO is one order line. The composite key mirrors the domain rule of
// at most one line per product per order.
type OrderItemPO struct {
	OrderID           string `gorm:"column:order_id;primaryKey;size:36"`
	ProductID         string `gorm:"column:product_id;primaryKey;size:64"`
	Quantity          int    `gorm:"column:quantity;not null"`
	UnitPriceAmount   int64  `gorm:"column:unit_price_amount;not null"`
	UnitPriceCurrency string `gorm:"column:unit_price_currency;size:3;not null"`
}

func (OrderItemPO) TableName() string { return "order_items" }

// FromDomain maps an aggregate to its row form. The version written is the
// caller's concern; this is a straight field copy.
func FromDomain(o *order.Order) *OrderPO {
	items := o.Items()
	itemPOs := make([]OrderItemPO, 0, len(items))
	for _, item := range items {
		itemPOs = append(itemPOs, OrderItemPO{
			OrderID:           o.ID().String(),
			ProductID:         item.ProductID().String(),
			Quantity:          item.Quantity(),
			UnitPriceAmount:   item.UnitPrice().Amount(),
			UnitPriceCurrency: item.UnitPrice().Currency(),
		})
	}
	return &OrderPO{
		ID:         o.ID().String(),
		CustomerID: o.CustomerID().String(),
		Status:     string(o.Status()),
		Version:    o.Version(),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
		Items:      itemPOs,
	}
}

// ToDomain rebuilds the aggregate through the reconstruction path. Rows that
// fail value-object validation indicate corrupt data and surface as errors
// rather than half-built aggregates.
func (p *OrderPO) ToDomain() (*order.Order, error) {
	id, err := order.OrderIDFrom(p.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := order.CustomerIDFrom(p.CustomerID)
	if err != nil {
		return nil, err
	}

	items := make([]order.OrderItem, 0, len(p.Items))
	for _, itemPO := range p.Items {
		productID, err := order.ProductIDFrom(itemPO.ProductID)
		if err != nil {
			return nil, err
		}
		unitPrice, err := shared.NewMoney(itemPO.UnitPriceAmount, itemPO.UnitPriceCurrency)
		if err != nil {
			return nil, err
		}
		items = append(items, order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ProductID: productID,
			Quantity:  itemPO.Quantity,
			UnitPrice: unitPrice,
		}))
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:         id,
		CustomerID: customerID,
		Items:      items,
		Status:     order.Status(p.Status),
		Version:    p.Version,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}), nil
}
