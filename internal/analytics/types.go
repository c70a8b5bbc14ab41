// Package analytics holds the pure aggregation functions behind each
// dashboard view. Every function takes the date-filtered order set plus the
// reference tables it joins against and returns a small derived table; no
// function mutates its inputs.
package analytics

import (
	"github.com/shopspring/decimal"
)

// CategoryCount is one row of the category ranking.
type CategoryCount struct {
	Category string `json:"category"`
	Orders   int    `json:"orders"`
}

// LocationCount is one geo-density point.
type LocationCount struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Orders int     `json:"orders"`
}

// TimeBucket is one time-bucketed purchase count. Bucket is the hour
// ("0".."23"), the weekday name ("Monday".."Sunday") or the day of month
// ("1".."31") depending on granularity.
type TimeBucket struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// PaymentTypeSummary is one row of the payment-type breakdown. Orders is a
// distinct order count; MeanValue averages every payment row in the group,
// so an order paying twice with the same type contributes both values.
type PaymentTypeSummary struct {
	Type      string          `json:"type"`
	Orders    int             `json:"orders"`
	MeanValue decimal.Decimal `json:"mean_value"`
}

// PersonKind selects which party the location aggregation groups by.
type PersonKind string

const (
	PersonCustomer PersonKind = "customer"
	PersonSeller   PersonKind = "seller"
)

// TimeGranularity selects the purchase-time bucketing.
type TimeGranularity string

const (
	GranularityHourOfDay  TimeGranularity = "hour"
	GranularityDayOfWeek  TimeGranularity = "weekday"
	GranularityDayOfMonth TimeGranularity = "day"
)
