// Package exporter turns derived dashboard tables into CSV files and
// Excel workbooks.
package exporter

import (
	"strconv"

	"ecomdash/internal/analytics"
)

// Table is a named grid of string cells ready for serialization.
type Table struct {
	Name    string
	Headers []string
	Records [][]string
}

// Report carries every derived table for one date range.
type Report struct {
	From               string
	To                 string
	TopCategories      []analytics.CategoryCount
	BottomCategories   []analytics.CategoryCount
	CustomerLocations  []analytics.LocationCount
	SellerLocations    []analytics.LocationCount
	PurchasesByHour    []analytics.TimeBucket
	PurchasesByWeekday []analytics.TimeBucket
	PurchasesByDay     []analytics.TimeBucket
	PaymentTypes       []analytics.PaymentTypeSummary
	ReviewsByScore     map[int][]string
}

// Tables flattens the report into serializable tables, in a fixed order.
func (r Report) Tables() []Table {
	tables := []Table{
		categoryTable("top_categories", r.TopCategories),
		categoryTable("bottom_categories", r.BottomCategories),
		locationTable("customer_locations", r.CustomerLocations),
		locationTable("seller_locations", r.SellerLocations),
		bucketTable("purchases_by_hour", "hour", r.PurchasesByHour),
		bucketTable("purchases_by_weekday", "weekday", r.PurchasesByWeekday),
		bucketTable("purchases_by_day", "day", r.PurchasesByDay),
		paymentTable(r.PaymentTypes),
	}
	for _, score := range []int{1, 2, 3, 4, 5} {
		tables = append(tables, reviewTable(score, r.ReviewsByScore[score]))
	}
	return tables
}

func categoryTable(name string, counts []analytics.CategoryCount) Table {
	records := make([][]string, 0, len(counts))
	for _, c := range counts {
		records = append(records, []string{c.Category, strconv.Itoa(c.Orders)})
	}
	return Table{Name: name, Headers: []string{"category", "orders"}, Records: records}
}

func locationTable(name string, counts []analytics.LocationCount) Table {
	records := make([][]string, 0, len(counts))
	for _, c := range counts {
		records = append(records, []string{
			strconv.FormatFloat(c.Lat, 'f', -1, 64),
			strconv.FormatFloat(c.Lng, 'f', -1, 64),
			strconv.Itoa(c.Orders),
		})
	}
	return Table{Name: name, Headers: []string{"lat", "lng", "orders"}, Records: records}
}

func bucketTable(name, bucketHeader string, buckets []analytics.TimeBucket) Table {
	records := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		records = append(records, []string{b.Bucket, strconv.Itoa(b.Count)})
	}
	return Table{Name: name, Headers: []string{bucketHeader, "orders"}, Records: records}
}

func paymentTable(summaries []analytics.PaymentTypeSummary) Table {
	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, []string{s.Type, strconv.Itoa(s.Orders), s.MeanValue.StringFixed(2)})
	}
	return Table{Name: "payment_types", Headers: []string{"payment_type", "orders", "mean_value"}, Records: records}
}

func reviewTable(score int, comments []string) Table {
	records := make([][]string, 0, len(comments))
	for _, c := range comments {
		records = append(records, []string{c})
	}
	return Table{
		Name:    "reviews_score_" + strconv.Itoa(score),
		Headers: []string{"comment"},
		Records: records,
	}
}
