package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Products(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Category(ctx context.Context, args []string) error
	MaxPrice(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	ShowCart(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Increment(ctx context.Context, args []string) error
	Decrement(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context) error
	Orders(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command, and dispatches
// to methods on a. Unknown commands are reported back. The loop exits on
// scanner EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report their
// own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("shopkart [%s] > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Browse: products, search <text>, category <name|All>, maxprice <n>, sort <price_asc|price_desc|name_asc|name_desc|none>")
				printlnFn("Shop:   cart, add <product-id> [qty], inc <item-id>, dec <item-id>, remove <item-id>, clear, checkout, orders")
				printlnFn("Other:  logout, exit")
			} else {
				printlnFn("Available commands: products, search, category, maxprice, sort, register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "p", "products":
			_ = a.Products(ctx, args)

		case "search":
			_ = a.Search(ctx, args)

		case "category":
			_ = a.Category(ctx, args)

		case "maxprice":
			_ = a.MaxPrice(ctx, args)

		case "sort":
			_ = a.Sort(ctx, args)

		case "cart":
			_ = a.ShowCart(ctx)

		case "add":
			_ = a.Add(ctx, args)

		case "inc":
			_ = a.Increment(ctx, args)

		case "dec":
			_ = a.Decrement(ctx, args)

		case "remove":
			_ = a.Remove(ctx, args)

		case "clear":
			_ = a.ClearCart(ctx)

		case "checkout":
			_ = a.Checkout(ctx)

		case "orders":
			_ = a.Orders(ctx)

		case "exit", "quit":
			return

		default:
			printlnFn("Unknown command. Type 'help' for the command list.")
		}
	}
}
