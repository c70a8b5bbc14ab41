package analytics

import (
	"sort"

	"ecomdash/internal/dataset"
)

const categoryRankingSize = 10

// TopCategories ranks display categories by items sold within the filtered
// orders, highest first, at most ten rows.
func TopCategories(orders []dataset.Order, items []dataset.OrderItem, products []dataset.Product, translations []dataset.CategoryTranslation) []CategoryCount {
	return rankCategories(orders, items, products, translations, true)
}

// BottomCategories ranks display categories by items sold within the
// filtered orders, lowest first, at most ten rows.
func BottomCategories(orders []dataset.Order, items []dataset.OrderItem, products []dataset.Product, translations []dataset.CategoryTranslation) []CategoryCount {
	return rankCategories(orders, items, products, translations, false)
}

// rankCategories joins filtered orders to items (inner join on order id),
// counts items per product, resolves each product through the translation
// table to its display category (inner joins; unmatched rows drop) and sums
// per category. Ties keep the alphabetical category order.
func rankCategories(orders []dataset.Order, items []dataset.OrderItem, products []dataset.Product, translations []dataset.CategoryTranslation, top bool) []CategoryCount {
	inRange := orderIDSet(orders)

	perProduct := make(map[string]int)
	for _, item := range items {
		if _, ok := inRange[item.OrderID]; !ok {
			continue
		}
		perProduct[item.ProductID]++
	}

	categoryByProduct := make(map[string]string, len(products))
	for _, p := range products {
		categoryByProduct[p.ID] = p.CategoryCode
	}
	displayByCode := make(map[string]string, len(translations))
	for _, tr := range translations {
		displayByCode[tr.Code] = tr.English
	}

	totals := make(map[string]int)
	for productID, count := range perProduct {
		code, ok := categoryByProduct[productID]
		if !ok {
			continue
		}
		display, ok := displayByCode[code]
		if !ok {
			continue
		}
		totals[display] += count
	}

	ranked := make([]CategoryCount, 0, len(totals))
	for category, count := range totals {
		ranked = append(ranked, CategoryCount{Category: category, Orders: count})
	}
	// Alphabetical base order makes the count sort's tie-breaking stable.
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Category < ranked[j].Category })
	sort.SliceStable(ranked, func(i, j int) bool {
		if top {
			return ranked[i].Orders > ranked[j].Orders
		}
		return ranked[i].Orders < ranked[j].Orders
	})

	if len(ranked) > categoryRankingSize {
		ranked = ranked[:categoryRankingSize]
	}
	return ranked
}
