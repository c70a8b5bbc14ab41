package dataset

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the layout used by every timestamp column in the
// snapshot files.
const TimestampLayout = "2006-01-02 15:04:05"

// Order is one row of the orders snapshot. A zero time.Time means the
// column was absent in the raw file; after cleaning, the purchase-anchored
// timestamps are populated for every order unless the undefined-mean edge
// case applies (see Clean).
type Order struct {
	ID                    string    `json:"order_id"`
	CustomerID            string    `json:"customer_id"`
	Status                string    `json:"status"`
	PurchasedAt           time.Time `json:"purchased_at"`
	ApprovedAt            time.Time `json:"approved_at"`
	DeliveredToCarrierAt  time.Time `json:"delivered_to_carrier_at"`
	DeliveredToCustomerAt time.Time `json:"delivered_to_customer_at"`
	EstimatedDeliveryAt   time.Time `json:"estimated_delivery_at"`
}

// OrderItem is one line item of an order.
type OrderItem struct {
	OrderID      string          `json:"order_id"`
	Sequence     int             `json:"sequence"`
	ProductID    string          `json:"product_id"`
	SellerID     string          `json:"seller_id"`
	Price        decimal.Decimal `json:"price"`
	FreightValue decimal.Decimal `json:"freight_value"`
}

// Product is one row of the products snapshot. Numeric attributes are NaN
// when the raw column was absent; Clean maps them to zero.
type Product struct {
	ID                string  `json:"product_id"`
	CategoryCode      string  `json:"category_code"`
	NameLength        float64 `json:"name_length"`
	DescriptionLength float64 `json:"description_length"`
	PhotoCount        float64 `json:"photo_count"`
	WeightG           float64 `json:"weight_g"`
	LengthCM          float64 `json:"length_cm"`
	HeightCM          float64 `json:"height_cm"`
	WidthCM           float64 `json:"width_cm"`
}

// CategoryTranslation maps a raw category code to its display name.
type CategoryTranslation struct {
	Code    string `json:"code"`
	English string `json:"english"`
}

// Customer links an order to a postal-code prefix.
type Customer struct {
	ID        string `json:"customer_id"`
	UniqueID  string `json:"customer_unique_id"`
	ZipPrefix string `json:"zip_prefix"`
	City      string `json:"city"`
	State     string `json:"state"`
}

// Seller links an order item to a postal-code prefix.
type Seller struct {
	ID        string `json:"seller_id"`
	ZipPrefix string `json:"zip_prefix"`
	City      string `json:"city"`
	State     string `json:"state"`
}

// Geolocation maps a postal-code prefix to a coordinate. The raw snapshot
// carries many rows per prefix; Clean drops exact duplicates only.
type Geolocation struct {
	ZipPrefix string  `json:"zip_prefix"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	City      string  `json:"city"`
	State     string  `json:"state"`
}

// Payment is one payment row; an order may have several.
type Payment struct {
	OrderID      string          `json:"order_id"`
	Sequential   int             `json:"sequential"`
	Type         string          `json:"type"`
	Installments int             `json:"installments"`
	Value        decimal.Decimal `json:"value"`
}

// Review is one customer review of an order.
type Review struct {
	ID             string `json:"review_id"`
	OrderID        string `json:"order_id"`
	Score          int    `json:"score"`
	CommentTitle   string `json:"comment_title"`
	CommentMessage string `json:"comment_message"`
}

// Tables holds the full loaded snapshot. All downstream transforms treat
// Tables as immutable; Clean returns a new Tables value.
type Tables struct {
	Orders               []Order
	OrderItems           []OrderItem
	Products             []Product
	CategoryTranslations []CategoryTranslation
	Customers            []Customer
	Sellers              []Seller
	Geolocations         []Geolocation
	Payments             []Payment
	Reviews              []Review
}

// PurchaseBounds returns the earliest and latest purchase timestamps across
// all orders. Zero purchase timestamps are skipped. ok is false when no
// order carries a purchase timestamp.
func (t Tables) PurchaseBounds() (min, max time.Time, ok bool) {
	for _, o := range t.Orders {
		if o.PurchasedAt.IsZero() {
			continue
		}
		if !ok {
			min, max, ok = o.PurchasedAt, o.PurchasedAt, true
			continue
		}
		if o.PurchasedAt.Before(min) {
			min = o.PurchasedAt
		}
		if o.PurchasedAt.After(max) {
			max = o.PurchasedAt
		}
	}
	return min, max, ok
}
