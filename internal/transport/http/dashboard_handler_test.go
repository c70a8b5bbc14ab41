package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomdash/internal/dataset"
	"ecomdash/internal/services"
)

func fixtureHandler(t *testing.T) *DashboardHandler {
	t.Helper()

	purchase := func(value string) time.Time {
		ts, err := time.Parse(dataset.TimestampLayout, value)
		require.NoError(t, err)
		return ts
	}

	tables := dataset.Tables{
		Orders: []dataset.Order{
			{ID: "o1", CustomerID: "c1", PurchasedAt: purchase("2018-01-01 10:00:00")},
		},
		OrderItems: []dataset.OrderItem{{OrderID: "o1", ProductID: "p1", SellerID: "s1"}},
		Products:   []dataset.Product{{ID: "p1", CategoryCode: "moveis"}},
		CategoryTranslations: []dataset.CategoryTranslation{
			{Code: "moveis", English: "furniture"},
		},
		Customers:    []dataset.Customer{{ID: "c1", ZipPrefix: "01000"}},
		Sellers:      []dataset.Seller{{ID: "s1", ZipPrefix: "13000"}},
		Geolocations: []dataset.Geolocation{{ZipPrefix: "01000", Lat: 1, Lng: 2}},
		Reviews:      []dataset.Review{{ID: "r1", OrderID: "o1", Score: 4, CommentMessage: "bom"}},
	}

	svc := services.NewDashboardService(tables, dataset.NewStopwordSet(), nil, nil)
	exports := services.NewExportService(svc, t.TempDir(), nil)
	return NewDashboardHandler(svc, exports, testLogger())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetCategories(t *testing.T) {
	handler := fixtureHandler(t)
	router := handler.Routes()

	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantCount  float64
	}{
		{
			name:       "top categories",
			url:        "/categories?from=2018-01-01&to=2018-01-31&order=top",
			wantStatus: http.StatusOK,
			wantCount:  1,
		},
		{
			name:       "order defaults to top",
			url:        "/categories?from=2018-01-01&to=2018-01-31",
			wantStatus: http.StatusOK,
			wantCount:  1,
		},
		{
			name:       "empty range",
			url:        "/categories?from=2020-01-01&to=2020-12-31&order=bottom",
			wantStatus: http.StatusOK,
			wantCount:  0,
		},
		{
			name:       "invalid order",
			url:        "/categories?from=2018-01-01&to=2018-01-31&order=middle",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing dates",
			url:        "/categories",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				body := decodeBody(t, rec)
				assert.Equal(t, "success", body["status"])
				assert.Equal(t, tt.wantCount, body["count"])
			}
		})
	}
}

func TestGetLocations(t *testing.T) {
	handler := fixtureHandler(t)
	router := handler.Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/locations?from=2018-01-01&to=2018-01-31&person=customer", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["count"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/locations?from=2018-01-01&to=2018-01-31&person=warehouse", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPurchases(t *testing.T) {
	handler := fixtureHandler(t)
	router := handler.Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/purchases?from=2018-01-01&to=2018-01-31&granularity=weekday", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(7), decodeBody(t, rec)["count"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/purchases?from=2018-01-01&to=2018-01-31&granularity=year", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetReviews(t *testing.T) {
	handler := fixtureHandler(t)
	router := handler.Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reviews?from=2018-01-01&to=2018-01-31&score=4", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reviews?from=2018-01-01&to=2018-01-31&score=9", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reviews?from=2018-01-01&to=2018-01-31", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing score is rejected")
}

func TestGetDashboard(t *testing.T) {
	handler := fixtureHandler(t)
	router := handler.Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard?from=2018-01-01&to=2018-01-31", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data, "top_categories")
	assert.Contains(t, data, "purchases_by_weekday")
	assert.Contains(t, data, "reviews_by_score")
}

func TestGetMeta(t *testing.T) {
	handler := fixtureHandler(t)
	router := handler.Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "2018-01-01", data["min_purchase_date"])
}

func TestExportEndpoint(t *testing.T) {
	handler := fixtureHandler(t)
	router := handler.Routes()

	body := `{"from":"2018-01-01","to":"2018-01-31","format":"csv"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "csv", data["format"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(`{"from":"2018-01-01","to":"2018-01-31","format":"pdf"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(`not-json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
