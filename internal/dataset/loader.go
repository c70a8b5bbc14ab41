package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot file names inside the data directory.
const (
	OrdersFile               = "orders_dataset.csv"
	OrderItemsFile           = "order_items_dataset.csv"
	ProductsFile             = "products_dataset.csv"
	CategoryTranslationsFile = "product_category_name_translation.csv"
	CustomersFile            = "customers_dataset.csv"
	SellersFile              = "sellers_dataset.csv"
	GeolocationFile          = "geolocation_dataset.csv"
	PaymentsFile             = "order_payments_dataset.csv"
	ReviewsFile              = "order_reviews_dataset.csv"
)

// Loader reads the CSV snapshots into typed tables. Column positions are
// resolved from the header row, so column order in the files does not matter.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a snapshot loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "dataset_loader"))}
}

// Load reads all nine snapshot files from dir.
func (l *Loader) Load(dir string) (Tables, error) {
	var t Tables
	var err error

	if t.Orders, err = l.loadOrders(filepath.Join(dir, OrdersFile)); err != nil {
		return Tables{}, err
	}
	if t.OrderItems, err = l.loadOrderItems(filepath.Join(dir, OrderItemsFile)); err != nil {
		return Tables{}, err
	}
	if t.Products, err = l.loadProducts(filepath.Join(dir, ProductsFile)); err != nil {
		return Tables{}, err
	}
	if t.CategoryTranslations, err = l.loadCategoryTranslations(filepath.Join(dir, CategoryTranslationsFile)); err != nil {
		return Tables{}, err
	}
	if t.Customers, err = l.loadCustomers(filepath.Join(dir, CustomersFile)); err != nil {
		return Tables{}, err
	}
	if t.Sellers, err = l.loadSellers(filepath.Join(dir, SellersFile)); err != nil {
		return Tables{}, err
	}
	if t.Geolocations, err = l.loadGeolocations(filepath.Join(dir, GeolocationFile)); err != nil {
		return Tables{}, err
	}
	if t.Payments, err = l.loadPayments(filepath.Join(dir, PaymentsFile)); err != nil {
		return Tables{}, err
	}
	if t.Reviews, err = l.loadReviews(filepath.Join(dir, ReviewsFile)); err != nil {
		return Tables{}, err
	}

	l.logger.Info("snapshot loaded",
		slog.Int("orders", len(t.Orders)),
		slog.Int("order_items", len(t.OrderItems)),
		slog.Int("products", len(t.Products)),
		slog.Int("customers", len(t.Customers)),
		slog.Int("sellers", len(t.Sellers)),
		slog.Int("geolocations", len(t.Geolocations)),
		slog.Int("payments", len(t.Payments)),
		slog.Int("reviews", len(t.Reviews)))

	return t, nil
}

// row is one CSV record with header-resolved column access.
type row struct {
	columns map[string]int
	fields  []string
}

func (r row) get(name string) string {
	idx, ok := r.columns[name]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

func (r row) getTime(name string) time.Time {
	v := r.get(name)
	if v == "" {
		return time.Time{}
	}
	ts, err := time.Parse(TimestampLayout, v)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// getFloat returns NaN for absent cells so the cleaning stage can tell
// absent from a genuine zero.
func (r row) getFloat(name string) float64 {
	v := r.get(name)
	if v == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func (r row) getInt(name string) int {
	v, _ := strconv.Atoi(r.get(name))
	return v
}

func (r row) getDecimal(name string) decimal.Decimal {
	d, err := decimal.NewFromString(r.get(name))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// readRows reads a CSV file and invokes fn for every data record.
func readRows(path string, fn func(row)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open snapshot %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", filepath.Base(path), err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("read rows of %s: %w", filepath.Base(path), err)
	}
	for _, fields := range records {
		fn(row{columns: columns, fields: fields})
	}
	return nil
}

func (l *Loader) loadOrders(path string) ([]Order, error) {
	var orders []Order
	err := readRows(path, func(r row) {
		orders = append(orders, Order{
			ID:                    r.get("order_id"),
			CustomerID:            r.get("customer_id"),
			Status:                r.get("order_status"),
			PurchasedAt:           r.getTime("order_purchase_timestamp"),
			ApprovedAt:            r.getTime("order_approved_at"),
			DeliveredToCarrierAt:  r.getTime("order_delivered_carrier_date"),
			DeliveredToCustomerAt: r.getTime("order_delivered_customer_date"),
			EstimatedDeliveryAt:   r.getTime("order_estimated_delivery_date"),
		})
	})
	return orders, err
}

func (l *Loader) loadOrderItems(path string) ([]OrderItem, error) {
	var items []OrderItem
	err := readRows(path, func(r row) {
		items = append(items, OrderItem{
			OrderID:      r.get("order_id"),
			Sequence:     r.getInt("order_item_id"),
			ProductID:    r.get("product_id"),
			SellerID:     r.get("seller_id"),
			Price:        r.getDecimal("price"),
			FreightValue: r.getDecimal("freight_value"),
		})
	})
	return items, err
}

func (l *Loader) loadProducts(path string) ([]Product, error) {
	var products []Product
	err := readRows(path, func(r row) {
		products = append(products, Product{
			ID:                r.get("product_id"),
			CategoryCode:      r.get("product_category_name"),
			NameLength:        r.getFloat("product_name_lenght"),
			DescriptionLength: r.getFloat("product_description_lenght"),
			PhotoCount:        r.getFloat("product_photos_qty"),
			WeightG:           r.getFloat("product_weight_g"),
			LengthCM:          r.getFloat("product_length_cm"),
			HeightCM:          r.getFloat("product_height_cm"),
			WidthCM:           r.getFloat("product_width_cm"),
		})
	})
	return products, err
}

func (l *Loader) loadCategoryTranslations(path string) ([]CategoryTranslation, error) {
	var translations []CategoryTranslation
	err := readRows(path, func(r row) {
		translations = append(translations, CategoryTranslation{
			Code:    r.get("product_category_name"),
			English: r.get("product_category_name_english"),
		})
	})
	return translations, err
}

func (l *Loader) loadCustomers(path string) ([]Customer, error) {
	var customers []Customer
	err := readRows(path, func(r row) {
		customers = append(customers, Customer{
			ID:        r.get("customer_id"),
			UniqueID:  r.get("customer_unique_id"),
			ZipPrefix: r.get("customer_zip_code_prefix"),
			City:      r.get("customer_city"),
			State:     r.get("customer_state"),
		})
	})
	return customers, err
}

func (l *Loader) loadSellers(path string) ([]Seller, error) {
	var sellers []Seller
	err := readRows(path, func(r row) {
		sellers = append(sellers, Seller{
			ID:        r.get("seller_id"),
			ZipPrefix: r.get("seller_zip_code_prefix"),
			City:      r.get("seller_city"),
			State:     r.get("seller_state"),
		})
	})
	return sellers, err
}

func (l *Loader) loadGeolocations(path string) ([]Geolocation, error) {
	var geos []Geolocation
	err := readRows(path, func(r row) {
		lat, _ := strconv.ParseFloat(r.get("geolocation_lat"), 64)
		lng, _ := strconv.ParseFloat(r.get("geolocation_lng"), 64)
		geos = append(geos, Geolocation{
			ZipPrefix: r.get("geolocation_zip_code_prefix"),
			Lat:       lat,
			Lng:       lng,
			City:      r.get("geolocation_city"),
			State:     r.get("geolocation_state"),
		})
	})
	return geos, err
}

func (l *Loader) loadPayments(path string) ([]Payment, error) {
	var payments []Payment
	err := readRows(path, func(r row) {
		payments = append(payments, Payment{
			OrderID:      r.get("order_id"),
			Sequential:   r.getInt("payment_sequential"),
			Type:         r.get("payment_type"),
			Installments: r.getInt("payment_installments"),
			Value:        r.getDecimal("payment_value"),
		})
	})
	return payments, err
}

func (l *Loader) loadReviews(path string) ([]Review, error) {
	var reviews []Review
	err := readRows(path, func(r row) {
		reviews = append(reviews, Review{
			ID:             r.get("review_id"),
			OrderID:        r.get("order_id"),
			Score:          r.getInt("review_score"),
			CommentTitle:   r.get("review_comment_title"),
			CommentMessage: r.get("review_comment_message"),
		})
	})
	return reviews, err
}
