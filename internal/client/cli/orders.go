package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopkart-io/shopkart/internal/client/view"
)

// Checkout places an order from the current cart after showing the summary
// and asking for confirmation.
func (a *App) Checkout(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	a.refreshCart(ctx)

	if view.ItemCount(a.cart) == 0 {
		printlnFn("Your cart is empty; nothing to check out.")
		return errors.New("empty cart")
	}

	totals := view.CartTotals(a.cart)
	printlnFn(fmt.Sprintf("Order total (incl. 10%% tax): $%s", totals.Total.StringFixed(2)))

	answer, err := getSimpleText(a.reader, "Place order? (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		printlnFn("Checkout cancelled.")
		return nil
	}

	order, err := a.client.PlaceOrder(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}

	if order != nil {
		printlnFn(fmt.Sprintf("Order #%d placed. Thank you!", order.ID))
	} else {
		printlnFn("Order placed. Thank you!")
	}

	// The server starts a fresh cart; replace the local snapshot with it.
	a.cart = nil
	a.refreshCart(ctx)
	return nil
}

// Orders prints the order history, newest first as the server returns it.
func (a *App) Orders(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	orders, err := a.client.Orders(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}

	if len(orders) == 0 {
		printlnFn("You haven't placed any orders yet.")
		return nil
	}

	for _, order := range orders {
		printlnFn(fmt.Sprintf("Order #%d (placed %s): $%s",
			order.ID, order.DateOrdered.Format("Jan 2, 2006"), order.TotalPrice.StringFixed(2)))
		for _, item := range order.Items {
			printlnFn(fmt.Sprintf("   %-30s x%-3d $%s",
				item.Product.Name, item.Quantity, item.TotalPrice.StringFixed(2)))
		}
	}
	return nil
}
