package order

import "ddd-order/domain/order"

// toOrderResponse maps an aggregate to its read model. Totals and subtotals
// are computed here from the domain, never stored or recomputed client-side.
func toOrderResponse(o *order.Order) (*OrderResponse, error) {
	total, err := o.Total()
	if err != nil {
		return nil, err
	}

	items := o.Items()
	itemResponses := make([]OrderItemResponse, 0, len(items))
	for _, item := range items {
		subtotal, err := item.Subtotal()
		if err != nil {
			return nil, err
		}
		itemResponses = append(itemResponses, OrderItemResponse{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity(),
			UnitPrice: MoneyResponse{
				Amount:   item.UnitPrice().Amount(),
				Currency: item.UnitPrice().Currency(),
			},
			Subtotal: MoneyResponse{
				Amount:   subtotal.Amount(),
				Currency: subtotal.Currency(),
			},
		})
	}

	return &OrderResponse{
		ID:         o.ID().String(),
		CustomerID: o.CustomerID().String(),
		Status:     string(o.Status()),
		Items:      itemResponses,
		Total: MoneyResponse{
			Amount:   total.Amount(),
			Currency: total.Currency(),
		},
		Version:   o.Version(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}, nil
}
