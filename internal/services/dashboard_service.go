package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"ecomdash/internal/analytics"
	"ecomdash/internal/dataset"
	"ecomdash/internal/metrics"
)

// DateLayout is the wire format for date-range parameters.
const DateLayout = "2006-01-02"

// ReviewScores are the valid review score values.
var ReviewScores = []int{1, 2, 3, 4, 5}

// DashboardService runs the aggregation pipeline over the cleaned dataset.
// Every method is a pure function of (tables, date range, stopwords); the
// service holds no per-request state and is safe for concurrent use.
type DashboardService struct {
	tables    dataset.Tables
	stopwords dataset.StopwordSet
	logger    *slog.Logger
	validate  *validator.Validate
	registry  *metrics.Registry
}

// DateRangeParams carries the caller-supplied date range.
type DateRangeParams struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}

// Dashboard bundles all nine derived tables for one date range.
type Dashboard struct {
	From               string                          `json:"from"`
	To                 string                          `json:"to"`
	TopCategories      []analytics.CategoryCount       `json:"top_categories"`
	BottomCategories   []analytics.CategoryCount       `json:"bottom_categories"`
	CustomerLocations  []analytics.LocationCount       `json:"customer_locations"`
	SellerLocations    []analytics.LocationCount       `json:"seller_locations"`
	PurchasesByHour    []analytics.TimeBucket          `json:"purchases_by_hour"`
	PurchasesByWeekday []analytics.TimeBucket          `json:"purchases_by_weekday"`
	PurchasesByDay     []analytics.TimeBucket          `json:"purchases_by_day"`
	PaymentTypes       []analytics.PaymentTypeSummary  `json:"payment_types"`
	ReviewsByScore     map[int][]string                `json:"reviews_by_score"`
}

// Meta describes the loaded dataset for the UI's date picker.
type Meta struct {
	MinPurchaseDate string         `json:"min_purchase_date"`
	MaxPurchaseDate string         `json:"max_purchase_date"`
	RowCounts       map[string]int `json:"row_counts"`
}

// NewDashboardService creates a dashboard service over an already-cleaned
// dataset. registry may be nil when metrics are not wanted (tests, CLI).
func NewDashboardService(tables dataset.Tables, stopwords dataset.StopwordSet, logger *slog.Logger, registry *metrics.Registry) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		tables:    tables,
		stopwords: stopwords,
		logger:    logger.With(slog.String("component", "dashboard_service")),
		validate:  validator.New(),
		registry:  registry,
	}
}

// ParseRange validates and parses the caller-supplied date range. A range
// whose start is after its end is valid; it just filters to nothing.
func (s *DashboardService) ParseRange(params DateRangeParams) (from, to time.Time, err error) {
	if err := s.validate.Struct(params); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	from, _ = time.Parse(DateLayout, params.From)
	to, _ = time.Parse(DateLayout, params.To)
	return from, to, nil
}

// filtered returns the orders in range; every aggregator re-derives its own
// joins from this set.
func (s *DashboardService) filtered(from, to time.Time) []dataset.Order {
	return analytics.FilterOrdersByDateRange(s.tables.Orders, from, to)
}

// Categories returns the top or bottom category ranking for the range.
func (s *DashboardService) Categories(ctx context.Context, params DateRangeParams, order string) ([]analytics.CategoryCount, error) {
	from, to, err := s.ParseRange(params)
	if err != nil {
		return nil, err
	}

	orders := s.filtered(from, to)
	switch order {
	case "top", "":
		return analytics.TopCategories(orders, s.tables.OrderItems, s.tables.Products, s.tables.CategoryTranslations), nil
	case "bottom":
		return analytics.BottomCategories(orders, s.tables.OrderItems, s.tables.Products, s.tables.CategoryTranslations), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrder, order)
	}
}

// Locations returns geo-density points for customers or sellers.
func (s *DashboardService) Locations(ctx context.Context, params DateRangeParams, person string) ([]analytics.LocationCount, error) {
	from, to, err := s.ParseRange(params)
	if err != nil {
		return nil, err
	}

	var kind analytics.PersonKind
	switch person {
	case "customer", "":
		kind = analytics.PersonCustomer
	case "seller":
		kind = analytics.PersonSeller
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPersonKind, person)
	}

	orders := s.filtered(from, to)
	return analytics.OrdersByLocation(kind, orders, s.tables.OrderItems, s.tables.Customers, s.tables.Sellers, s.tables.Geolocations), nil
}

// Purchases returns time-bucketed purchase counts.
func (s *DashboardService) Purchases(ctx context.Context, params DateRangeParams, granularity string) ([]analytics.TimeBucket, error) {
	from, to, err := s.ParseRange(params)
	if err != nil {
		return nil, err
	}

	var g analytics.TimeGranularity
	switch granularity {
	case "hour", "":
		g = analytics.GranularityHourOfDay
	case "weekday":
		g = analytics.GranularityDayOfWeek
	case "day":
		g = analytics.GranularityDayOfMonth
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidGranularity, granularity)
	}

	return analytics.PurchasesByTime(s.filtered(from, to), g), nil
}

// Payments returns the payment-type breakdown for the range.
func (s *DashboardService) Payments(ctx context.Context, params DateRangeParams) ([]analytics.PaymentTypeSummary, error) {
	from, to, err := s.ParseRange(params)
	if err != nil {
		return nil, err
	}
	return analytics.PaymentTypes(s.filtered(from, to), s.tables.Payments), nil
}

// Reviews returns stopword-filtered review comments for one score.
func (s *DashboardService) Reviews(ctx context.Context, params DateRangeParams, score int) ([]string, error) {
	from, to, err := s.ParseRange(params)
	if err != nil {
		return nil, err
	}
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}
	comments := analytics.ReviewComments(s.filtered(from, to), s.tables.Reviews, s.stopwords, score)
	if comments == nil {
		comments = []string{}
	}
	return comments, nil
}

// BuildDashboard runs every aggregator once and bundles the results.
func (s *DashboardService) BuildDashboard(ctx context.Context, params DateRangeParams) (*Dashboard, error) {
	from, to, err := s.ParseRange(params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	orders := s.filtered(from, to)

	d := &Dashboard{
		From:               params.From,
		To:                 params.To,
		TopCategories:      analytics.TopCategories(orders, s.tables.OrderItems, s.tables.Products, s.tables.CategoryTranslations),
		BottomCategories:   analytics.BottomCategories(orders, s.tables.OrderItems, s.tables.Products, s.tables.CategoryTranslations),
		CustomerLocations:  analytics.OrdersByLocation(analytics.PersonCustomer, orders, s.tables.OrderItems, s.tables.Customers, s.tables.Sellers, s.tables.Geolocations),
		SellerLocations:    analytics.OrdersByLocation(analytics.PersonSeller, orders, s.tables.OrderItems, s.tables.Customers, s.tables.Sellers, s.tables.Geolocations),
		PurchasesByHour:    analytics.PurchasesByTime(orders, analytics.GranularityHourOfDay),
		PurchasesByWeekday: analytics.PurchasesByTime(orders, analytics.GranularityDayOfWeek),
		PurchasesByDay:     analytics.PurchasesByTime(orders, analytics.GranularityDayOfMonth),
		PaymentTypes:       analytics.PaymentTypes(orders, s.tables.Payments),
		ReviewsByScore:     make(map[int][]string, len(ReviewScores)),
	}
	for _, score := range ReviewScores {
		comments := analytics.ReviewComments(orders, s.tables.Reviews, s.stopwords, score)
		if comments == nil {
			comments = []string{}
		}
		d.ReviewsByScore[score] = comments
	}

	if s.registry != nil {
		s.registry.ObservePipeline(start)
	}
	s.logger.InfoContext(ctx, "dashboard built",
		slog.String("from", params.From),
		slog.String("to", params.To),
		slog.Int("orders_in_range", len(orders)),
		slog.String("duration", time.Since(start).String()))

	return d, nil
}

// DatasetMeta reports the purchase-date bounds and table sizes.
func (s *DashboardService) DatasetMeta(ctx context.Context) Meta {
	meta := Meta{
		RowCounts: map[string]int{
			"orders":       len(s.tables.Orders),
			"order_items":  len(s.tables.OrderItems),
			"products":     len(s.tables.Products),
			"customers":    len(s.tables.Customers),
			"sellers":      len(s.tables.Sellers),
			"geolocations": len(s.tables.Geolocations),
			"payments":     len(s.tables.Payments),
			"reviews":      len(s.tables.Reviews),
		},
	}
	if min, max, ok := s.tables.PurchaseBounds(); ok {
		meta.MinPurchaseDate = min.Format(DateLayout)
		meta.MaxPurchaseDate = max.Format(DateLayout)
	}
	return meta
}
