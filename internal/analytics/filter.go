package analytics

import (
	"time"

	"ecomdash/internal/dataset"
)

// FilterOrdersByDateRange returns the orders whose purchase timestamp falls
// within [from, to]. Both bounds are inclusive and compared as calendar
// dates in the purchase timestamp's location. from after to yields an empty
// result, not an error.
func FilterOrdersByDateRange(orders []dataset.Order, from, to time.Time) []dataset.Order {
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)

	out := make([]dataset.Order, 0, len(orders))
	for _, o := range orders {
		if o.PurchasedAt.IsZero() {
			continue
		}
		day := truncateToDay(o.PurchasedAt)
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// orderIDSet builds the membership set the aggregators use to re-derive
// their joins from the filtered orders.
func orderIDSet(orders []dataset.Order) map[string]struct{} {
	set := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		set[o.ID] = struct{}{}
	}
	return set
}
