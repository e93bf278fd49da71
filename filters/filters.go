package filters

import (
	"github.com/imamnura/mini-ecommerce-api/models"
)

// All disables a criterion.
const All = "all"

// Price bucket identifiers.
const (
	PriceLt100    = "lt100"
	Price100to500 = "100to500"
	PriceGt500    = "gt500"
)

// Locations is the fixed mock-location table. A product's location is
// Locations[id mod len(Locations)]; it is computed, never fetched or stored.
var Locations = []string{"Jakarta", "Bandung", "Surabaya", "Yogyakarta", "Medan"}

// Criteria is one filter selection. "all" (or the zero value) disables a
// predicate; active predicates are conjoined.
type Criteria struct {
	Price     string
	MinRating float64
	Category  string
	Location  string
}

// Location returns the mock location for a product id.
func Location(productID int) string {
	idx := productID % len(Locations)
	if idx < 0 {
		idx += len(Locations)
	}
	return Locations[idx]
}

// Apply returns the subsequence of products satisfying every active
// criterion, preserving input order. With all criteria disabled the output
// equals the input.
func Apply(products []models.Product, c Criteria) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, c) {
			out = append(out, p)
		}
	}
	return out
}

// Matches evaluates every active predicate against a single product.
func Matches(p models.Product, c Criteria) bool {
	switch c.Price {
	case PriceLt100:
		if p.Price >= 100 {
			return false
		}
	case Price100to500:
		if p.Price < 100 || p.Price > 500 {
			return false
		}
	case PriceGt500:
		if p.Price <= 500 {
			return false
		}
	}
	if c.MinRating > 0 && p.Rating < c.MinRating {
		return false
	}
	if c.Category != "" && c.Category != All && p.Category != c.Category {
		return false
	}
	if c.Location != "" && c.Location != All && Location(p.ID) != c.Location {
		return false
	}
	return true
}

// CategoriesOf derives the category option set from an already-loaded
// product batch, in first-seen order. Used when the remote category listing
// is unavailable.
func CategoriesOf(products []models.Product) []string {
	seen := make(map[string]bool, len(products))
	out := make([]string, 0, len(products))
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
