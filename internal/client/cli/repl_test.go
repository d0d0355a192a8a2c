package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingExec records dispatched commands.
type recordingExec struct {
	loggedIn bool
	calls    []string
}

func (r *recordingExec) record(name string) error {
	r.calls = append(r.calls, name)
	return nil
}

func (r *recordingExec) isLoggedIn() bool { return r.loggedIn }

func (r *recordingExec) Register(ctx context.Context) error { return r.record("register") }
func (r *recordingExec) Login(ctx context.Context) error    { return r.record("login") }
func (r *recordingExec) Logout(ctx context.Context) error   { return r.record("logout") }

func (r *recordingExec) Products(ctx context.Context, args []string) error {
	return r.record("products")
}
func (r *recordingExec) Search(ctx context.Context, args []string) error {
	return r.record("search " + strings.Join(args, " "))
}
func (r *recordingExec) Category(ctx context.Context, args []string) error {
	return r.record("category")
}
func (r *recordingExec) MaxPrice(ctx context.Context, args []string) error {
	return r.record("maxprice")
}
func (r *recordingExec) Sort(ctx context.Context, args []string) error { return r.record("sort") }

func (r *recordingExec) ShowCart(ctx context.Context) error { return r.record("cart") }
func (r *recordingExec) Add(ctx context.Context, args []string) error {
	return r.record("add " + strings.Join(args, " "))
}
func (r *recordingExec) Increment(ctx context.Context, args []string) error {
	return r.record("inc")
}
func (r *recordingExec) Decrement(ctx context.Context, args []string) error {
	return r.record("dec")
}
func (r *recordingExec) Remove(ctx context.Context, args []string) error {
	return r.record("remove")
}
func (r *recordingExec) ClearCart(ctx context.Context) error { return r.record("clear") }
func (r *recordingExec) Checkout(ctx context.Context) error  { return r.record("checkout") }
func (r *recordingExec) Orders(ctx context.Context) error    { return r.record("orders") }

func runScript(t *testing.T, exec *recordingExec, script string) {
	t.Helper()
	old := printlnFn
	printlnFn = func(a ...any) (int, error) { return 0, nil }
	defer func() { printlnFn = old }()

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), exec, func() string { return "test" }, scanner)
}

func TestREPL_DispatchesCommands(t *testing.T) {
	exec := &recordingExec{}
	runScript(t, exec, "products\nsearch wireless mouse\nadd 3 2\ncart\ncheckout\nexit\n")

	assert.Equal(t, []string{"products", "search wireless mouse", "add 3 2", "cart", "checkout"}, exec.calls)
}

func TestREPL_IgnoresBlankAndUnknownLines(t *testing.T) {
	exec := &recordingExec{}
	runScript(t, exec, "\n\nfrobnicate\nlogin\nquit\n")

	assert.Equal(t, []string{"login"}, exec.calls)
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	exec := &recordingExec{}
	runScript(t, exec, "orders")

	assert.Equal(t, []string{"orders"}, exec.calls)
}
