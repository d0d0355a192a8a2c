package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkart-io/shopkart/internal/client/api"
	"github.com/shopkart-io/shopkart/internal/client/models"
	"github.com/shopkart-io/shopkart/internal/client/session"
	"github.com/shopkart-io/shopkart/internal/client/view"
)

// fakeClient implements api.Client for command tests.
type fakeClient struct {
	LoginRet *models.TokenPair
	LoginErr error

	RegisterErr error

	ProductsRet   []models.Product
	CategoriesRet []models.Category

	CartRet *models.Cart
	CartErr error

	AddRet *models.Cart
	AddErr error

	OrdersRet []models.Order
	PlacedRet *models.Order
	PlaceErr  error

	LastLoginUser  string
	LastAddProduct int64
	LastAddQty     int
	CartCalls      int
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	f.LastLoginUser = username
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, username, email, password string) error {
	return f.RegisterErr
}

func (f *fakeClient) Products(ctx context.Context) ([]models.Product, error) {
	return f.ProductsRet, nil
}

func (f *fakeClient) Categories(ctx context.Context) ([]models.Category, error) {
	return f.CategoriesRet, nil
}

func (f *fakeClient) Cart(ctx context.Context) (*models.Cart, error) {
	f.CartCalls++
	return f.CartRet, f.CartErr
}

func (f *fakeClient) AddToCart(ctx context.Context, productID int64, quantity int) (*models.Cart, error) {
	f.LastAddProduct, f.LastAddQty = productID, quantity
	return f.AddRet, f.AddErr
}

func (f *fakeClient) UpdateCartItem(ctx context.Context, itemID int64, action string) (*models.Cart, error) {
	return f.CartRet, f.CartErr
}

func (f *fakeClient) RemoveCartItem(ctx context.Context, itemID int64) (*models.Cart, error) {
	return f.CartRet, f.CartErr
}

func (f *fakeClient) ClearCart(ctx context.Context) (*models.Cart, error) {
	return f.CartRet, f.CartErr
}

func (f *fakeClient) PlaceOrder(ctx context.Context) (*models.Order, error) {
	return f.PlacedRet, f.PlaceErr
}

func (f *fakeClient) Orders(ctx context.Context) ([]models.Order, error) {
	return f.OrdersRet, nil
}

func newTestApp(client api.Client, store *session.MemStore) *App {
	return &App{
		client:  client,
		session: session.NewManager(store),
		reader:  bufio.NewReader(strings.NewReader("")),
		filter:  view.Filter{Category: view.CategoryAll},
	}
}

func mintToken(t *testing.T, username string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"exp":      exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test"))
	require.NoError(t, err)
	return signed
}

func stubOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	old := printlnFn
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			if s, ok := v.(string); ok {
				lines = append(lines, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = old })
	return &lines
}

func stubInput(t *testing.T, text, password string) {
	t.Helper()
	oldText, oldPassword := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		return text, nil
	}
	getPassword = func(_ io.Writer) (string, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText, getPassword = oldText, oldPassword
	})
}

func TestAdd_RequiresLogin(t *testing.T) {
	stubOutput(t)
	fc := &fakeClient{}
	app := newTestApp(fc, session.NewMemStore("", ""))

	err := app.Add(context.Background(), []string{"1"})
	assert.ErrorIs(t, err, errNotLoggedIn)
	assert.Zero(t, fc.LastAddProduct, "no network call while anonymous")
}

func TestLogin_EstablishesSessionAndRefreshesCart(t *testing.T) {
	stubOutput(t)
	stubInput(t, "alice", "pw")

	access := mintToken(t, "alice", time.Now().Add(time.Hour))
	fc := &fakeClient{
		LoginRet: &models.TokenPair{Access: access, Refresh: "refresh"},
		CartRet:  &models.Cart{ID: 7, Items: []models.CartItem{{ID: 1, Quantity: 2}}},
	}
	store := session.NewMemStore("", "")
	app := newTestApp(fc, store)

	require.NoError(t, app.Login(context.Background()))

	require.NotNil(t, app.session.Current())
	assert.Equal(t, "alice", app.session.Current().Username)
	assert.Equal(t, access, store.AccessToken())
	assert.Equal(t, 1, fc.CartCalls, "login triggers a cart refresh")
	assert.Equal(t, 2, view.ItemCount(app.cart))
}

func TestLogin_BadPasswordKeepsExistingSession(t *testing.T) {
	stubOutput(t)
	stubInput(t, "alice", "mistyped")

	access := mintToken(t, "alice", time.Now().Add(time.Hour))
	store := session.NewMemStore(access, "refresh")
	fc := &fakeClient{
		LoginErr: &api.Error{Kind: api.KindUnauthorized, Status: 401,
			Message: "No active account found with the given credentials"},
	}
	app := newTestApp(fc, store)
	_, err := app.session.Restore()
	require.NoError(t, err)
	app.cart = &models.Cart{ID: 7}

	err = app.Login(context.Background())
	require.Error(t, err)

	// A handshake 401 is a wrong password, not an expired session: the live
	// session and persisted credential must both survive.
	require.NotNil(t, app.session.Current())
	assert.Equal(t, "alice", app.session.Current().Username)
	assert.Equal(t, access, store.AccessToken())
	assert.Equal(t, "refresh", store.RefreshToken())
	assert.NotNil(t, app.cart)
}

func TestAdd_AppliesServerSnapshot(t *testing.T) {
	stubOutput(t)

	access := mintToken(t, "alice", time.Now().Add(time.Hour))
	store := session.NewMemStore(access, "r")
	fc := &fakeClient{
		AddRet: &models.Cart{ID: 7, Items: []models.CartItem{{ID: 3, Quantity: 4}}},
	}
	app := newTestApp(fc, store)
	_, err := app.session.Restore()
	require.NoError(t, err)

	require.NoError(t, app.Add(context.Background(), []string{"12", "4"}))
	assert.Equal(t, int64(12), fc.LastAddProduct)
	assert.Equal(t, 4, fc.LastAddQty)
	assert.Equal(t, 4, view.ItemCount(app.cart), "snapshot fully replaces local cart")
}

func TestReportErr_UnauthorizedForcesLogout(t *testing.T) {
	stubOutput(t)

	access := mintToken(t, "alice", time.Now().Add(time.Hour))
	store := session.NewMemStore(access, "r")
	app := newTestApp(&fakeClient{}, store)
	_, err := app.session.Restore()
	require.NoError(t, err)
	app.cart = &models.Cart{ID: 1}

	app.reportErr(&api.Error{Kind: api.KindUnauthorized, Status: 401, Message: "token expired"})

	assert.Nil(t, app.session.Current())
	assert.Nil(t, app.cart)
	assert.Empty(t, store.AccessToken())
}

func TestReportErr_ValidationDoesNotLogOut(t *testing.T) {
	stubOutput(t)

	access := mintToken(t, "alice", time.Now().Add(time.Hour))
	app := newTestApp(&fakeClient{}, session.NewMemStore(access, "r"))
	_, err := app.session.Restore()
	require.NoError(t, err)

	app.reportErr(&api.Error{Kind: api.KindValidation, Status: 400, Message: "bad request"})

	assert.NotNil(t, app.session.Current())
}

func TestProducts_UsesViewFilter(t *testing.T) {
	out := stubOutput(t)

	fc := &fakeClient{}
	app := newTestApp(fc, session.NewMemStore("", ""))
	app.products = []models.Product{
		{ID: 1, Name: "Mouse", Category: "Electronics", Price: decimal.NewFromInt(10)},
		{ID: 2, Name: "Chair", Category: "Furniture", Price: decimal.NewFromInt(100)},
	}
	app.filter = view.Filter{Category: "Furniture"}

	require.NoError(t, app.Products(context.Background(), nil))
	require.Len(t, *out, 1)
	assert.Contains(t, (*out)[0], "Chair")
}
