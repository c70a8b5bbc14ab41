package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomdash/internal/dataset"
)

func TestPurchasesByTimeHourOfDay(t *testing.T) {
	orders := []dataset.Order{
		{ID: "o1", PurchasedAt: mustTime(t, "2018-01-01 09:15:00")},
		{ID: "o2", PurchasedAt: mustTime(t, "2018-01-02 09:45:00")},
		{ID: "o3", PurchasedAt: mustTime(t, "2018-01-03 23:00:00")},
		{ID: "o4", PurchasedAt: mustTime(t, "2018-01-04 00:30:00")},
	}

	got := PurchasesByTime(orders, GranularityHourOfDay)

	// Only hours that occur, sorted ascending.
	assert.Equal(t, []TimeBucket{
		{Bucket: "0", Count: 1},
		{Bucket: "9", Count: 2},
		{Bucket: "23", Count: 1},
	}, got)
}

func TestPurchasesByTimeDayOfWeek(t *testing.T) {
	orders := []dataset.Order{
		// 2018-01-01 was a Monday.
		{ID: "o1", PurchasedAt: mustTime(t, "2018-01-01 10:00:00")},
		{ID: "o2", PurchasedAt: mustTime(t, "2018-01-08 10:00:00")},
		{ID: "o3", PurchasedAt: mustTime(t, "2018-01-06 10:00:00")}, // Saturday
	}

	got := PurchasesByTime(orders, GranularityDayOfWeek)

	require.Len(t, got, 7, "weekday histogram always has seven rows")
	want := []TimeBucket{
		{Bucket: "Monday", Count: 2},
		{Bucket: "Tuesday", Count: 0},
		{Bucket: "Wednesday", Count: 0},
		{Bucket: "Thursday", Count: 0},
		{Bucket: "Friday", Count: 0},
		{Bucket: "Saturday", Count: 1},
		{Bucket: "Sunday", Count: 0},
	}
	assert.Equal(t, want, got)
}

func TestPurchasesByTimeDayOfWeekEmptyInput(t *testing.T) {
	got := PurchasesByTime(nil, GranularityDayOfWeek)

	require.Len(t, got, 7, "even an empty range reports all seven days")
	for _, bucket := range got {
		assert.Zero(t, bucket.Count)
	}
}

func TestPurchasesByTimeDayOfMonth(t *testing.T) {
	orders := []dataset.Order{
		{ID: "o1", PurchasedAt: mustTime(t, "2018-01-05 10:00:00")},
		{ID: "o2", PurchasedAt: mustTime(t, "2018-02-05 10:00:00")},
		{ID: "o3", PurchasedAt: mustTime(t, "2018-01-28 10:00:00")},
	}

	got := PurchasesByTime(orders, GranularityDayOfMonth)

	assert.Equal(t, []TimeBucket{
		{Bucket: "5", Count: 2},
		{Bucket: "28", Count: 1},
	}, got)
}

func TestPurchasesByTimeEmptyInput(t *testing.T) {
	assert.Empty(t, PurchasesByTime(nil, GranularityHourOfDay))
	assert.Empty(t, PurchasesByTime(nil, GranularityDayOfMonth))
}
