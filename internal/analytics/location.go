package analytics

import (
	"sort"

	"ecomdash/internal/dataset"
)

type coordinate struct {
	lat float64
	lng float64
}

// OrdersByLocation counts sold items per coordinate for the given party.
// Join contract, per join site:
//   - person → geolocation: inner join on postal-code prefix, resolved to
//     one representative coordinate per prefix (first occurrence wins);
//     persons whose prefix has no geolocation row are silently dropped.
//   - filtered orders → items: inner join on order id.
//   - item rows → person: via the order's customer for PersonCustomer, via
//     the item's seller for PersonSeller.
//
// The result is sorted ascending by count so renderers draw low-density
// points first; coordinate order breaks ties.
func OrdersByLocation(kind PersonKind, orders []dataset.Order, items []dataset.OrderItem, customers []dataset.Customer, sellers []dataset.Seller, geos []dataset.Geolocation) []LocationCount {
	coordByPrefix := make(map[string]coordinate, len(geos))
	for _, g := range geos {
		if _, ok := coordByPrefix[g.ZipPrefix]; ok {
			continue
		}
		coordByPrefix[g.ZipPrefix] = coordinate{lat: g.Lat, lng: g.Lng}
	}

	prefixByPerson := make(map[string]string)
	switch kind {
	case PersonSeller:
		for _, s := range sellers {
			prefixByPerson[s.ID] = s.ZipPrefix
		}
	default:
		for _, c := range customers {
			prefixByPerson[c.ID] = c.ZipPrefix
		}
	}

	customerByOrder := make(map[string]string, len(orders))
	for _, o := range orders {
		customerByOrder[o.ID] = o.CustomerID
	}

	counts := make(map[coordinate]int)
	for _, item := range items {
		customerID, inRange := customerByOrder[item.OrderID]
		if !inRange {
			continue
		}
		personID := customerID
		if kind == PersonSeller {
			personID = item.SellerID
		}
		prefix, ok := prefixByPerson[personID]
		if !ok {
			continue
		}
		coord, ok := coordByPrefix[prefix]
		if !ok {
			continue
		}
		counts[coord]++
	}

	out := make([]LocationCount, 0, len(counts))
	for coord, count := range counts {
		out = append(out, LocationCount{Lat: coord.lat, Lng: coord.lng, Orders: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Lat != out[j].Lat {
			return out[i].Lat < out[j].Lat
		}
		return out[i].Lng < out[j].Lng
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Orders < out[j].Orders })
	return out
}
