package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"ecomdash/internal/dataset"
)

// PaymentTypes joins the filtered orders to payments (inner join on order
// id) and summarizes per payment type: a distinct count of orders and the
// mean payment value over every row in the group. An order with two rows of
// the same type counts once for orders but both values enter the mean.
// Rows come back sorted by payment type ascending.
func PaymentTypes(orders []dataset.Order, payments []dataset.Payment) []PaymentTypeSummary {
	inRange := orderIDSet(orders)

	distinctOrders := make(map[string]map[string]struct{})
	valuesByType := make(map[string][]decimal.Decimal)
	for _, p := range payments {
		if _, ok := inRange[p.OrderID]; !ok {
			continue
		}
		if distinctOrders[p.Type] == nil {
			distinctOrders[p.Type] = make(map[string]struct{})
		}
		distinctOrders[p.Type][p.OrderID] = struct{}{}
		valuesByType[p.Type] = append(valuesByType[p.Type], p.Value)
	}

	types := make([]string, 0, len(valuesByType))
	for t := range valuesByType {
		types = append(types, t)
	}
	sort.Strings(types)

	out := make([]PaymentTypeSummary, 0, len(types))
	for _, t := range types {
		values := valuesByType[t]
		out = append(out, PaymentTypeSummary{
			Type:      t,
			Orders:    len(distinctOrders[t]),
			MeanValue: decimal.Avg(values[0], values[1:]...),
		})
	}
	return out
}
