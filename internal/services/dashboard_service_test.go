package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomdash/internal/dataset"
)

func decimalFromString(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad fixture decimal %q: %v", value, err)
	}
	return d
}

func fixtureTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(dataset.TimestampLayout, value)
	if err != nil {
		t.Fatalf("bad fixture timestamp %q: %v", value, err)
	}
	return ts
}

// fixtureService builds a service over a two-order January 2018 snapshot.
func fixtureService(t *testing.T) *DashboardService {
	t.Helper()

	tables := dataset.Tables{
		Orders: []dataset.Order{
			{ID: "o1", CustomerID: "c1", PurchasedAt: fixtureTime(t, "2018-01-01 10:00:00")},
			{ID: "o2", CustomerID: "c2", PurchasedAt: fixtureTime(t, "2018-02-15 18:00:00")},
		},
		OrderItems: []dataset.OrderItem{
			{OrderID: "o1", ProductID: "p1", SellerID: "s1"},
			{OrderID: "o2", ProductID: "p1", SellerID: "s1"},
		},
		Products: []dataset.Product{{ID: "p1", CategoryCode: "beleza_saude"}},
		CategoryTranslations: []dataset.CategoryTranslation{
			{Code: "beleza_saude", English: "health_beauty"},
		},
		Customers: []dataset.Customer{
			{ID: "c1", ZipPrefix: "01000"},
			{ID: "c2", ZipPrefix: "02000"},
		},
		Sellers: []dataset.Seller{{ID: "s1", ZipPrefix: "13000"}},
		Geolocations: []dataset.Geolocation{
			{ZipPrefix: "01000", Lat: -23.5, Lng: -46.6},
			{ZipPrefix: "02000", Lat: -22.9, Lng: -43.2},
			{ZipPrefix: "13000", Lat: -22.9, Lng: -47.0},
		},
		Payments: []dataset.Payment{
			{OrderID: "o1", Type: "credit_card", Value: decimalFromString(t, "100.00")},
			{OrderID: "o2", Type: "boleto", Value: decimalFromString(t, "55.00")},
		},
		Reviews: []dataset.Review{
			{ID: "r1", OrderID: "o1", Score: 5, CommentMessage: "muito bom"},
		},
	}

	stopwords := dataset.NewStopwordSet("muito")
	return NewDashboardService(tables, stopwords, nil, nil)
}

func TestParseRange(t *testing.T) {
	svc := fixtureService(t)

	tests := []struct {
		name    string
		params  DateRangeParams
		wantErr error
	}{
		{name: "valid range", params: DateRangeParams{From: "2018-01-01", To: "2018-01-31"}},
		{name: "inverted range is still valid", params: DateRangeParams{From: "2018-02-01", To: "2018-01-01"}},
		{name: "missing from", params: DateRangeParams{To: "2018-01-31"}, wantErr: ErrInvalidDateRange},
		{name: "missing to", params: DateRangeParams{From: "2018-01-01"}, wantErr: ErrInvalidDateRange},
		{name: "bad format", params: DateRangeParams{From: "01/01/2018", To: "2018-01-31"}, wantErr: ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.ParseRange(tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCategories(t *testing.T) {
	svc := fixtureService(t)
	params := DateRangeParams{From: "2018-01-01", To: "2018-01-31"}

	top, err := svc.Categories(context.Background(), params, "top")
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "health_beauty", top[0].Category)
	assert.Equal(t, 1, top[0].Orders, "only January's order is in range")

	_, err = svc.Categories(context.Background(), params, "sideways")
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestLocations(t *testing.T) {
	svc := fixtureService(t)
	params := DateRangeParams{From: "2018-01-01", To: "2018-12-31"}

	customers, err := svc.Locations(context.Background(), params, "customer")
	require.NoError(t, err)
	assert.Len(t, customers, 2)

	sellers, err := svc.Locations(context.Background(), params, "seller")
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, 2, sellers[0].Orders)

	_, err = svc.Locations(context.Background(), params, "warehouse")
	assert.ErrorIs(t, err, ErrInvalidPersonKind)
}

func TestPurchases(t *testing.T) {
	svc := fixtureService(t)
	params := DateRangeParams{From: "2018-01-01", To: "2018-12-31"}

	weekday, err := svc.Purchases(context.Background(), params, "weekday")
	require.NoError(t, err)
	assert.Len(t, weekday, 7)

	hour, err := svc.Purchases(context.Background(), params, "hour")
	require.NoError(t, err)
	assert.Len(t, hour, 2)

	_, err = svc.Purchases(context.Background(), params, "month")
	assert.ErrorIs(t, err, ErrInvalidGranularity)
}

func TestReviews(t *testing.T) {
	svc := fixtureService(t)
	params := DateRangeParams{From: "2018-01-01", To: "2018-12-31"}

	comments, err := svc.Reviews(context.Background(), params, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"bom"}, comments, "stopwords are stripped")

	empty, err := svc.Reviews(context.Background(), params, 1)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.Reviews(context.Background(), params, 6)
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestBuildDashboard(t *testing.T) {
	svc := fixtureService(t)

	d, err := svc.BuildDashboard(context.Background(), DateRangeParams{From: "2018-01-01", To: "2018-01-31"})
	require.NoError(t, err)

	assert.Equal(t, "2018-01-01", d.From)
	assert.Len(t, d.TopCategories, 1)
	assert.Len(t, d.CustomerLocations, 1, "February's customer is out of range")
	assert.Len(t, d.PurchasesByWeekday, 7)
	assert.Len(t, d.PaymentTypes, 1)
	require.Len(t, d.ReviewsByScore, 5)
	assert.Equal(t, []string{"bom"}, d.ReviewsByScore[5])
	assert.Empty(t, d.ReviewsByScore[1])
}

func TestBuildDashboardEmptyRange(t *testing.T) {
	svc := fixtureService(t)

	d, err := svc.BuildDashboard(context.Background(), DateRangeParams{From: "2020-01-01", To: "2020-12-31"})
	require.NoError(t, err)

	assert.Empty(t, d.TopCategories)
	assert.Empty(t, d.PaymentTypes)
	assert.Len(t, d.PurchasesByWeekday, 7, "weekday histogram is zero-filled even when empty")
}

func TestDatasetMeta(t *testing.T) {
	svc := fixtureService(t)

	meta := svc.DatasetMeta(context.Background())

	assert.Equal(t, "2018-01-01", meta.MinPurchaseDate)
	assert.Equal(t, "2018-02-15", meta.MaxPurchaseDate)
	assert.Equal(t, 2, meta.RowCounts["orders"])
	assert.Equal(t, 3, meta.RowCounts["geolocations"])
}
