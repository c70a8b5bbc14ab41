package analytics

import (
	"sort"
	"strconv"
	"time"

	"ecomdash/internal/dataset"
)

// canonicalWeekdays is the fixed day-of-week output order.
var canonicalWeekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// PurchasesByTime counts filtered orders per purchase-time bucket.
//
// Hour-of-day and day-of-month report only buckets that actually occur,
// sorted by value ascending. Day-of-week always reports exactly seven rows
// in Monday…Sunday order with zero counts for absent days.
func PurchasesByTime(orders []dataset.Order, granularity TimeGranularity) []TimeBucket {
	if granularity == GranularityDayOfWeek {
		counts := make(map[time.Weekday]int)
		for _, o := range orders {
			counts[o.PurchasedAt.Weekday()]++
		}
		out := make([]TimeBucket, 0, len(canonicalWeekdays))
		for _, day := range canonicalWeekdays {
			out = append(out, TimeBucket{Bucket: day.String(), Count: counts[day]})
		}
		return out
	}

	counts := make(map[int]int)
	for _, o := range orders {
		switch granularity {
		case GranularityHourOfDay:
			counts[o.PurchasedAt.Hour()]++
		default:
			counts[o.PurchasedAt.Day()]++
		}
	}

	values := make([]int, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Ints(values)

	out := make([]TimeBucket, 0, len(values))
	for _, v := range values {
		out = append(out, TimeBucket{Bucket: strconv.Itoa(v), Count: counts[v]})
	}
	return out
}
