// Package view derives read-only projections of catalog and cart data for
// display: filtering, sorting, price bounds and totals. Everything here is a
// pure function over immutable inputs, recomputed from scratch on each call;
// the data sets are small and correctness is simpler without caching.
package view

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shopkart-io/shopkart/internal/client/models"
)

// SortKey selects the ordering applied after filtering. SortNone keeps the
// filtered order.
type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNameAsc   SortKey = "name_asc"
	SortNameDesc  SortKey = "name_desc"
)

// CategoryAll is the sentinel category selection that matches everything.
const CategoryAll = "All"

// fallbackMaxPrice bounds the price filter when the product set is empty.
var fallbackMaxPrice = decimal.NewFromInt(500)

// taxRate is the fixed display-only tax rate. The server remains the source
// of truth for persisted totals.
var taxRate = decimal.RequireFromString("0.1")

// Filter is transient view state. It never touches server state.
type Filter struct {
	// SearchTerm matches case-insensitively as a substring of the name.
	SearchTerm string
	// Category must equal the product's category, unless empty or CategoryAll.
	Category string
	// MaxPrice caps the price inclusively. A non-positive value means no cap.
	MaxPrice decimal.Decimal
	// Sort picks the ordering of the result.
	Sort SortKey
}

// FilterAndSort returns the products matching f, ordered per f.Sort. The
// input slice is never mutated; re-applying with identical inputs yields an
// identical result. Sorting is stable, so ties keep their filtered order.
func FilterAndSort(products []models.Product, f Filter) []models.Product {
	term := strings.ToLower(f.SearchTerm)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if f.MaxPrice.IsPositive() && p.Price.GreaterThan(f.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.LessThan(out[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].Price.LessThan(out[i].Price)
		})
	case SortNameAsc:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortNameDesc:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[j].Name, out[i].Name) < 0
		})
	}
	return out
}

// MaxPrice returns the ceiling of the highest product price, used as the
// upper bound of the price filter. An empty product set falls back to a
// fixed default.
func MaxPrice(products []models.Product) decimal.Decimal {
	if len(products) == 0 {
		return fallbackMaxPrice
	}
	max := products[0].Price
	for _, p := range products[1:] {
		if p.Price.GreaterThan(max) {
			max = p.Price
		}
	}
	return max.Ceil()
}

// Totals is the display-only order summary. Tax and Total are informational
// recomputations, never submitted back to the server.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// CartTotals sums unit price × quantity over the snapshot's line items and
// applies the fixed 10% tax. A nil cart yields zero totals.
func CartTotals(cart *models.Cart) Totals {
	subtotal := decimal.Zero
	if cart != nil {
		for _, item := range cart.Items {
			subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}
	tax := subtotal.Mul(taxRate)
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}
}

// ItemCount sums the quantities across line items. It tolerates a nil cart
// (anonymous, or not yet fetched).
func ItemCount(cart *models.Cart) int {
	if cart == nil {
		return 0
	}
	count := 0
	for _, item := range cart.Items {
		count += item.Quantity
	}
	return count
}
