package dataset

import (
	"log/slog"
	"math"
	"time"
)

// UnknownCategory is the sentinel category assigned to products whose raw
// category code is absent. The translation table gains a matching synthetic
// row so every product resolves to a display category.
const UnknownCategory = "unknown"

// Clean applies the deterministic cleaning rules to a loaded snapshot and
// returns new tables; the input is never mutated.
//
// Rules:
//   - Geolocation: exact duplicate rows are dropped.
//   - Products: absent category code becomes UnknownCategory; absent numeric
//     attributes (NaN) become zero.
//   - Category translations: one synthetic unknown→unknown row is appended.
//   - Orders: each of the three purchase-anchored timestamps (approval,
//     carrier handoff, customer delivery) is imputed independently as
//     purchase time plus the mean observed duration for that field. Means
//     are computed from the pre-imputation table, so the three fields do not
//     interact. A field with zero observed durations stays absent.
//   - Reviews: absent comment title/message become empty strings.
func Clean(t Tables, logger *slog.Logger) Tables {
	if logger == nil {
		logger = slog.Default()
	}

	cleaned := t
	cleaned.Geolocations = dedupeGeolocations(t.Geolocations)
	cleaned.Products = cleanProducts(t.Products)
	cleaned.CategoryTranslations = appendUnknownTranslation(t.CategoryTranslations)
	cleaned.Orders = imputeOrderTimestamps(t.Orders, logger)
	cleaned.Reviews = cleanReviews(t.Reviews)

	logger.Info("snapshot cleaned",
		slog.Int("geolocations_before", len(t.Geolocations)),
		slog.Int("geolocations_after", len(cleaned.Geolocations)))

	return cleaned
}

func dedupeGeolocations(geos []Geolocation) []Geolocation {
	seen := make(map[Geolocation]struct{}, len(geos))
	out := make([]Geolocation, 0, len(geos))
	for _, g := range geos {
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

func cleanProducts(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		if p.CategoryCode == "" {
			p.CategoryCode = UnknownCategory
		}
		p.NameLength = zeroIfNaN(p.NameLength)
		p.DescriptionLength = zeroIfNaN(p.DescriptionLength)
		p.PhotoCount = zeroIfNaN(p.PhotoCount)
		p.WeightG = zeroIfNaN(p.WeightG)
		p.LengthCM = zeroIfNaN(p.LengthCM)
		p.HeightCM = zeroIfNaN(p.HeightCM)
		p.WidthCM = zeroIfNaN(p.WidthCM)
		out[i] = p
	}
	return out
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func appendUnknownTranslation(translations []CategoryTranslation) []CategoryTranslation {
	out := make([]CategoryTranslation, len(translations), len(translations)+1)
	copy(out, translations)
	return append(out, CategoryTranslation{Code: UnknownCategory, English: UnknownCategory})
}

// imputeOrderTimestamps fills the three purchase-anchored timestamp fields.
// Each field's mean duration comes from the orders where both the purchase
// timestamp and that field were present in the raw table.
func imputeOrderTimestamps(orders []Order, logger *slog.Logger) []Order {
	out := make([]Order, len(orders))
	copy(out, orders)

	fields := []struct {
		name string
		get  func(*Order) time.Time
		set  func(*Order, time.Time)
	}{
		{
			name: "approved_at",
			get:  func(o *Order) time.Time { return o.ApprovedAt },
			set:  func(o *Order, ts time.Time) { o.ApprovedAt = ts },
		},
		{
			name: "delivered_to_carrier_at",
			get:  func(o *Order) time.Time { return o.DeliveredToCarrierAt },
			set:  func(o *Order, ts time.Time) { o.DeliveredToCarrierAt = ts },
		},
		{
			name: "delivered_to_customer_at",
			get:  func(o *Order) time.Time { return o.DeliveredToCustomerAt },
			set:  func(o *Order, ts time.Time) { o.DeliveredToCustomerAt = ts },
		},
	}

	for _, field := range fields {
		var totalSeconds float64
		var observed int
		for i := range orders {
			o := &orders[i]
			if o.PurchasedAt.IsZero() || field.get(o).IsZero() {
				continue
			}
			totalSeconds += field.get(o).Sub(o.PurchasedAt).Seconds()
			observed++
		}
		if observed == 0 {
			// Undefined mean: the field stays absent.
			logger.Warn("no observed durations, skipping imputation",
				slog.String("field", field.name))
			continue
		}
		mean := time.Duration(totalSeconds / float64(observed) * float64(time.Second))

		imputed := 0
		for i := range out {
			o := &out[i]
			if !field.get(o).IsZero() || o.PurchasedAt.IsZero() {
				continue
			}
			field.set(o, o.PurchasedAt.Add(mean))
			imputed++
		}
		logger.Debug("imputed order timestamps",
			slog.String("field", field.name),
			slog.Int("observed", observed),
			slog.Int("imputed", imputed),
			slog.String("mean_duration", mean.String()))
	}

	return out
}

func cleanReviews(reviews []Review) []Review {
	// Absent titles and messages load as empty strings already; copying keeps
	// the cleaned table independent of the input.
	out := make([]Review, len(reviews))
	copy(out, reviews)
	return out
}
