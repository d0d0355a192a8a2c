package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopkart-io/shopkart/internal/client/api"
	"github.com/shopkart-io/shopkart/internal/client/view"
)

var errNotLoggedIn = errors.New("not logged in")

// requireLogin is the navigation-to-login analogue: cart operations while
// anonymous just point the user at the login command.
func (a *App) requireLogin() error {
	if a.isLoggedIn() {
		return nil
	}
	printlnFn("Please 'login' first.")
	return errNotLoggedIn
}

func parseID(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		printlnFn(usage)
		return 0, errors.New("missing id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn(usage)
		return 0, err
	}
	return id, nil
}

// ShowCart prints the current snapshot with the display-only totals.
func (a *App) ShowCart(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	a.refreshCart(ctx)

	if view.ItemCount(a.cart) == 0 {
		printlnFn("Your cart is empty.")
		return nil
	}

	for _, item := range a.cart.Items {
		printlnFn(fmt.Sprintf("item %-4d %-30s x%-3d  $%s",
			item.ID, item.Product.Name, item.Quantity, item.TotalPrice.StringFixed(2)))
	}

	totals := view.CartTotals(a.cart)
	printlnFn(fmt.Sprintf("Subtotal:  $%s", totals.Subtotal.StringFixed(2)))
	printlnFn(fmt.Sprintf("Tax (10%%): $%s", totals.Tax.StringFixed(2)))
	printlnFn(fmt.Sprintf("Total:     $%s", totals.Total.StringFixed(2)))
	return nil
}

// Add puts a product into the cart: "add <product-id> [qty]".
func (a *App) Add(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		printlnFn("Usage: add <product-id> [quantity]")
		return errors.New("missing product id")
	}
	productID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Usage: add <product-id> [quantity]")
		return err
	}
	quantity := 1
	if len(args) > 1 {
		if quantity, err = strconv.Atoi(args[1]); err != nil || quantity < 1 {
			printlnFn("Usage: add <product-id> [quantity]")
			return errors.New("bad quantity")
		}
	}

	cart, err := a.client.AddToCart(ctx, productID, quantity)
	if err != nil {
		a.reportErr(err)
		return err
	}
	a.applySnapshot(cart)
	printlnFn(fmt.Sprintf("Added. Cart now holds %d item(s).", view.ItemCount(a.cart)))
	return nil
}

func (a *App) Increment(ctx context.Context, args []string) error {
	return a.updateItem(ctx, args, api.ActionIncrement, "Usage: inc <item-id>")
}

func (a *App) Decrement(ctx context.Context, args []string) error {
	return a.updateItem(ctx, args, api.ActionRemove, "Usage: dec <item-id>")
}

func (a *App) updateItem(ctx context.Context, args []string, action, usage string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	itemID, err := parseID(args, usage)
	if err != nil {
		return err
	}

	cart, err := a.client.UpdateCartItem(ctx, itemID, action)
	if err != nil {
		a.reportErr(err)
		return err
	}
	a.applySnapshot(cart)
	return a.ShowCart(ctx)
}

// Remove deletes a line item outright, regardless of quantity.
func (a *App) Remove(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	itemID, err := parseID(args, "Usage: remove <item-id>")
	if err != nil {
		return err
	}

	cart, err := a.client.RemoveCartItem(ctx, itemID)
	if err != nil {
		a.reportErr(err)
		return err
	}
	a.applySnapshot(cart)
	return a.ShowCart(ctx)
}

// ClearCart empties the cart server-side.
func (a *App) ClearCart(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	cart, err := a.client.ClearCart(ctx)
	if err != nil {
		a.reportErr(err)
		return err
	}
	a.applySnapshot(cart)
	printlnFn("Cart cleared.")
	return nil
}
