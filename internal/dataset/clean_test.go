package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(TimestampLayout, value)
	if err != nil {
		t.Fatalf("bad fixture timestamp %q: %v", value, err)
	}
	return ts
}

func TestCleanDedupesExactGeolocationRows(t *testing.T) {
	in := Tables{
		Geolocations: []Geolocation{
			{ZipPrefix: "01000", Lat: 1, Lng: 2, City: "sao paulo", State: "SP"},
			{ZipPrefix: "01000", Lat: 1, Lng: 2, City: "sao paulo", State: "SP"},
			{ZipPrefix: "01000", Lat: 1.1, Lng: 2, City: "sao paulo", State: "SP"},
		},
	}

	got := Clean(in, nil)

	// Only byte-for-byte duplicates collapse; near-duplicates stay.
	require.Len(t, got.Geolocations, 2)
	assert.Equal(t, in.Geolocations[0], got.Geolocations[0])
	assert.Equal(t, in.Geolocations[2], got.Geolocations[1])
}

func TestCleanProducts(t *testing.T) {
	in := Tables{
		Products: []Product{
			{ID: "p1", CategoryCode: "", NameLength: math.NaN(), WeightG: math.NaN()},
			{ID: "p2", CategoryCode: "beleza_saude", NameLength: 40, WeightG: 200},
		},
	}

	got := Clean(in, nil)

	require.Len(t, got.Products, 2)
	assert.Equal(t, UnknownCategory, got.Products[0].CategoryCode)
	assert.Zero(t, got.Products[0].NameLength)
	assert.Zero(t, got.Products[0].WeightG)

	assert.Equal(t, "beleza_saude", got.Products[1].CategoryCode)
	assert.Equal(t, 40.0, got.Products[1].NameLength)
}

func TestCleanAppendsUnknownTranslation(t *testing.T) {
	in := Tables{
		CategoryTranslations: []CategoryTranslation{{Code: "beleza_saude", English: "health_beauty"}},
	}

	got := Clean(in, nil)

	require.Len(t, got.CategoryTranslations, 2)
	assert.Equal(t, CategoryTranslation{Code: UnknownCategory, English: UnknownCategory}, got.CategoryTranslations[1])
}

func TestCleanImputesMissingTimestamps(t *testing.T) {
	in := Tables{
		Orders: []Order{
			{
				ID:          "observed-1",
				PurchasedAt: mustTime(t, "2018-01-01 00:00:00"),
				ApprovedAt:  mustTime(t, "2018-01-01 02:00:00"), // +2h
			},
			{
				ID:          "observed-2",
				PurchasedAt: mustTime(t, "2018-01-02 00:00:00"),
				ApprovedAt:  mustTime(t, "2018-01-02 04:00:00"), // +4h
			},
			{
				ID:          "missing",
				PurchasedAt: mustTime(t, "2018-01-03 00:00:00"),
			},
		},
	}

	got := Clean(in, nil)

	// Mean approval lag is 3h; the missing row gets purchase + 3h.
	missing := got.Orders[2]
	assert.Equal(t, mustTime(t, "2018-01-03 03:00:00"), missing.ApprovedAt)

	// Observed rows keep their real timestamps.
	assert.Equal(t, mustTime(t, "2018-01-01 02:00:00"), got.Orders[0].ApprovedAt)
	assert.Equal(t, mustTime(t, "2018-01-02 04:00:00"), got.Orders[1].ApprovedAt)
}

func TestCleanImputesFieldsIndependently(t *testing.T) {
	in := Tables{
		Orders: []Order{
			{
				ID:                   "a",
				PurchasedAt:          mustTime(t, "2018-01-01 00:00:00"),
				ApprovedAt:           mustTime(t, "2018-01-01 01:00:00"),
				DeliveredToCarrierAt: mustTime(t, "2018-01-03 00:00:00"),
			},
			{
				ID:          "b",
				PurchasedAt: mustTime(t, "2018-01-10 00:00:00"),
			},
		},
	}

	got := Clean(in, nil)

	b := got.Orders[1]
	assert.Equal(t, mustTime(t, "2018-01-10 01:00:00"), b.ApprovedAt)
	assert.Equal(t, mustTime(t, "2018-01-12 00:00:00"), b.DeliveredToCarrierAt)
}

func TestCleanSkipsFieldWithNoObservations(t *testing.T) {
	in := Tables{
		Orders: []Order{
			{ID: "a", PurchasedAt: mustTime(t, "2018-01-01 00:00:00")},
			{ID: "b", PurchasedAt: mustTime(t, "2018-01-02 00:00:00")},
		},
	}

	got := Clean(in, nil)

	// No order ever had an approval timestamp, so the mean is undefined and
	// the field stays absent.
	for _, o := range got.Orders {
		assert.True(t, o.ApprovedAt.IsZero())
		assert.True(t, o.DeliveredToCarrierAt.IsZero())
		assert.True(t, o.DeliveredToCustomerAt.IsZero())
	}
}

func TestCleanDoesNotMutateInput(t *testing.T) {
	in := Tables{
		Orders: []Order{
			{
				ID:          "observed",
				PurchasedAt: mustTime(t, "2018-01-01 00:00:00"),
				ApprovedAt:  mustTime(t, "2018-01-01 02:00:00"),
			},
			{ID: "missing", PurchasedAt: mustTime(t, "2018-01-02 00:00:00")},
		},
		Products: []Product{{ID: "p1", CategoryCode: "", NameLength: math.NaN()}},
		Geolocations: []Geolocation{
			{ZipPrefix: "01000", Lat: 1, Lng: 2},
			{ZipPrefix: "01000", Lat: 1, Lng: 2},
		},
	}

	_ = Clean(in, nil)

	assert.True(t, in.Orders[1].ApprovedAt.IsZero(), "input orders must stay untouched")
	assert.Empty(t, in.Products[0].CategoryCode, "input products must stay untouched")
	assert.Len(t, in.Geolocations, 2, "input geolocations must stay untouched")
}

func TestPurchaseBounds(t *testing.T) {
	t.Run("skips zero timestamps", func(t *testing.T) {
		tables := Tables{Orders: []Order{
			{ID: "a", PurchasedAt: mustTime(t, "2018-03-01 10:00:00")},
			{ID: "b"},
			{ID: "c", PurchasedAt: mustTime(t, "2017-12-31 08:00:00")},
		}}

		min, max, ok := tables.PurchaseBounds()
		require.True(t, ok)
		assert.Equal(t, mustTime(t, "2017-12-31 08:00:00"), min)
		assert.Equal(t, mustTime(t, "2018-03-01 10:00:00"), max)
	})

	t.Run("no timestamps at all", func(t *testing.T) {
		tables := Tables{Orders: []Order{{ID: "a"}}}
		_, _, ok := tables.PurchaseBounds()
		assert.False(t, ok)
	})
}
