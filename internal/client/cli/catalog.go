package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopkart-io/shopkart/internal/client/view"
)

// Products prints the catalog through the current filter. With no products
// loaded (e.g. the backend was down at startup) it retries the initial fetch.
func (a *App) Products(ctx context.Context, args []string) error {
	if len(a.products) == 0 {
		if err := a.loadCatalog(ctx); err != nil {
			a.reportErr(err)
			return err
		}
		a.filter.MaxPrice = view.MaxPrice(a.products)
	}

	listing := view.FilterAndSort(a.products, a.filter)
	if len(listing) == 0 {
		printlnFn("No products match your criteria.")
		return nil
	}

	for _, p := range listing {
		stock := "in stock"
		if !p.InStock {
			stock = "out of stock"
		}
		printlnFn(fmt.Sprintf("#%-4d %-30s %-14s %8s  (rating %s, %s)",
			p.ID, p.Name, p.Category, "$"+p.Price.StringFixed(2), p.Rating.String(), stock))
	}
	return nil
}

// Search sets the name filter. No argument clears it.
func (a *App) Search(ctx context.Context, args []string) error {
	a.filter.SearchTerm = strings.Join(args, " ")
	return a.Products(ctx, nil)
}

// Category sets the category filter. "All" (or no argument) matches everything.
func (a *App) Category(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.filter.Category = view.CategoryAll
	} else {
		a.filter.Category = strings.Join(args, " ")
	}
	return a.Products(ctx, nil)
}

// MaxPrice caps the listed prices. No argument resets the cap to the catalog
// maximum.
func (a *App) MaxPrice(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.filter.MaxPrice = view.MaxPrice(a.products)
		return a.Products(ctx, nil)
	}

	limit, err := decimal.NewFromString(args[0])
	if err != nil {
		printlnFn("Usage: maxprice <amount>")
		return err
	}
	ceiling := view.MaxPrice(a.products)
	if limit.GreaterThan(ceiling) {
		limit = ceiling
	}
	a.filter.MaxPrice = limit
	return a.Products(ctx, nil)
}

// Sort selects the listing order.
func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: sort <price_asc|price_desc|name_asc|name_desc|none>")
		return nil
	}

	switch view.SortKey(args[0]) {
	case view.SortPriceAsc, view.SortPriceDesc, view.SortNameAsc, view.SortNameDesc:
		a.filter.Sort = view.SortKey(args[0])
	default:
		a.filter.Sort = view.SortNone
	}
	return a.Products(ctx, nil)
}
