package search

import (
	"sort"

	"garagehub/models"
	"garagehub/utils"
)

// Query is one search request from the listing page. Text matches shop
// locations; the remaining fields are the filter panel. Vehicle types
// and service types both intersect the shop's Services list; the
// fixtures keep vehicle types inside that list, so the two filters
// share one namespace.
type Query struct {
	Text         string   `json:"query"`
	VehicleTypes []string `json:"vehicleType"`
	ServiceTypes []string `json:"serviceType"`
	MinRating    float64  `json:"rating"`
	ShopTypes    []string `json:"shopType"`
}

// IsEmpty reports whether the query would pass every shop through.
func (q Query) IsEmpty() bool {
	return q.Text == "" && len(q.VehicleTypes) == 0 && len(q.ServiceTypes) == 0 &&
		q.MinRating <= 0 && len(q.ShopTypes) == 0
}

// Filter returns the shops matching q, ranked. Filters combine with
// AND; the values inside one filter combine with OR. The input slice
// is never mutated.
func Filter(shops []models.Shop, q Query) []models.Shop {
	results := make([]models.Shop, 0, len(shops))
	for _, shop := range shops {
		if matches(shop, q) {
			results = append(results, shop)
		}
	}
	return Rank(results)
}

func matches(shop models.Shop, q Query) bool {
	if q.Text != "" && !matchesLocation(shop, q.Text) {
		return false
	}
	if len(q.VehicleTypes) > 0 && !intersects(shop.Services, q.VehicleTypes) {
		return false
	}
	if len(q.ServiceTypes) > 0 && !intersects(shop.Services, q.ServiceTypes) {
		return false
	}
	if q.MinRating > 0 && shop.Rating < q.MinRating {
		return false
	}
	if len(q.ShopTypes) > 0 && !utils.Contains(q.ShopTypes, shop.Type) {
		return false
	}
	return true
}

// matchesLocation checks the fixed address and every service-area
// entry for a case-insensitive substring hit.
func matchesLocation(shop models.Shop, text string) bool {
	if shop.Address != nil && utils.ContainsIgnoreCase(*shop.Address, text) {
		return true
	}
	for _, area := range shop.ServiceArea {
		if utils.ContainsIgnoreCase(area, text) {
			return true
		}
	}
	return false
}

func intersects(services, wanted []string) bool {
	for _, w := range wanted {
		if utils.Contains(services, w) {
			return true
		}
	}
	return false
}

// Rank orders shops premium-first, then by rating descending. The sort
// is stable so ties keep their incoming order; ranking an already
// ranked slice is a no-op. Returns a new slice.
func Rank(shops []models.Shop) []models.Shop {
	ranked := make([]models.Shop, len(shops))
	copy(ranked, shops)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].IsPremium != ranked[j].IsPremium {
			return ranked[i].IsPremium
		}
		return ranked[i].Rating > ranked[j].Rating
	})
	return ranked
}

// ActiveOnly keeps the shops browsable in the public listing.
func ActiveOnly(shops []models.Shop) []models.Shop {
	out := make([]models.Shop, 0, len(shops))
	for _, s := range shops {
		if s.Status == models.ShopStatusActive {
			out = append(out, s)
		}
	}
	return out
}
