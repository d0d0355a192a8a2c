package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/shopkart-io/shopkart/internal/logging"
	"github.com/shopkart-io/shopkart/internal/server/config"
	"github.com/shopkart-io/shopkart/internal/server/models"
	"github.com/shopkart-io/shopkart/internal/server/repositories/catalog"
	"github.com/shopkart-io/shopkart/internal/server/repositories/orders"
	"github.com/shopkart-io/shopkart/internal/server/repositories/refreshtokens"
	"github.com/shopkart-io/shopkart/internal/server/repositories/users"
	"github.com/shopkart-io/shopkart/internal/server/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Minute,
		RefreshTokenValidityDuration: time.Hour,
	}

	cat := catalog.NewInMemoryRepository()
	cat.Seed(
		[]models.Category{{ID: 1, Name: "Electronics", Slug: "electronics"}},
		[]models.Product{
			{ID: 1, CategoryID: 1, CategoryName: "Electronics", Name: "Headphones",
				Price: decimal.RequireFromString("99.99"), InStock: true, Quantity: 10,
				Rating: decimal.RequireFromString("4.5")},
		},
	)

	userSvc := services.NewUserService(users.NewInMemoryRepository(), refreshtokens.NewInMemoryRepository(), cfg)
	catalogSvc := services.NewCatalogService(cat, cfg)
	orderSvc := services.NewOrderService(orders.NewInMemoryRepository(), cat, catalogSvc)

	srv := NewServer(userSvc, catalogSvc, orderSvc, []byte(cfg.SecretKey), logging.NewJSONLogger(io.Discard))
	return srv.Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader).WithContext(context.Background())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, router *gin.Engine, username string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/register/", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "correcthorse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func login(t *testing.T, router *gin.Engine, username string) (access, refresh string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/token/", "", map[string]string{
		"username": username,
		"password": "correcthorse",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	return gjson.Get(body, "access").String(), gjson.Get(body, "refresh").String()
}

func TestRegisterAndLogin(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "alice")

	access, refresh := login(t, router, "alice")
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
}

func TestRegisterFieldErrors(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/register/", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "correcthorse",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A user with that username already exists.",
		gjson.Get(w.Body.String(), "username.0").String())
}

func TestLoginBadCredentials(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/token/", "", map[string]string{
		"username": "nobody",
		"password": "whatever",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No active account found with the given credentials",
		gjson.Get(w.Body.String(), "detail").String())
}

func TestTokenRefresh(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "alice")
	_, refresh := login(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/token/refresh/", "", map[string]string{"refresh": refresh})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, gjson.Get(w.Body.String(), "access").String())

	w = doJSON(t, router, http.MethodPost, "/api/token/refresh/", "", map[string]string{"refresh": "bogus"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token is invalid or expired", gjson.Get(w.Body.String(), "detail").String())
}

func TestProductsAndCategoriesArePublic(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/products/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, "Headphones", gjson.Get(body, "0.name").String())
	assert.Equal(t, "Electronics", gjson.Get(body, "0.category").String())
	// Money fields serialize as quoted decimal strings.
	assert.Equal(t, gjson.String, gjson.Get(body, "0.price").Type)
	assert.Equal(t, "99.99", gjson.Get(body, "0.price").String())

	w = doJSON(t, router, http.MethodGet, "/api/categories/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "electronics", gjson.Get(w.Body.String(), "0.slug").String())
}

func TestCartRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/cart/", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, gjson.Get(w.Body.String(), "detail").String())

	w = doJSON(t, router, http.MethodGet, "/api/cart/", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartLifecycle(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "alice")
	access, _ := login(t, router, "alice")

	// First access creates an empty cart.
	w := doJSON(t, router, http.MethodGet, "/api/cart/", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), gjson.Get(w.Body.String(), "items.#").Int())
	assert.True(t, gjson.Get(w.Body.String(), "items").IsArray())

	// Add twice, quantities merge.
	w = doJSON(t, router, http.MethodPost, "/api/cart/", access, map[string]any{"product_id": 1, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/cart/", access, map[string]any{"product_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	body := w.Body.String()
	require.Equal(t, int64(1), gjson.Get(body, "items.#").Int())
	assert.Equal(t, int64(3), gjson.Get(body, "items.0.quantity").Int())
	assert.Equal(t, "299.97", gjson.Get(body, "total_price").String())
	itemID := gjson.Get(body, "items.0.id").Int()

	// Decrement, then increment.
	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/cart/item/%d/", itemID), access,
		map[string]string{"action": "remove"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), gjson.Get(w.Body.String(), "items.0.quantity").Int())

	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/cart/item/%d/", itemID), access,
		map[string]string{"action": "add"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), gjson.Get(w.Body.String(), "items.0.quantity").Int())

	// Delete the line, cart is empty again.
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/cart/item/%d/", itemID), access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), gjson.Get(w.Body.String(), "items.#").Int())
}

func TestCartErrors(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "alice")
	access, _ := login(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/cart/", access, map[string]any{"product_id": 999})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", gjson.Get(w.Body.String(), "error").String())

	w = doJSON(t, router, http.MethodPatch, "/api/cart/item/12345/", access, map[string]string{"action": "add"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Item not found in cart", gjson.Get(w.Body.String(), "error").String())

	w = doJSON(t, router, http.MethodPost, "/api/cart/", access, map[string]any{"product_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	itemID := gjson.Get(w.Body.String(), "items.0.id").Int()

	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/cart/item/%d/", itemID), access,
		map[string]string{"action": "bump"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid action", gjson.Get(w.Body.String(), "error").String())
}

func TestClearCart(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "alice")
	access, _ := login(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/cart/", access, map[string]any{"product_id": 1, "quantity": 4})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/cart/clear/", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), gjson.Get(w.Body.String(), "items.#").Int())
}

func TestPlaceOrderAndHistory(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "alice")
	access, _ := login(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/orders/", access, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cart is empty", gjson.Get(w.Body.String(), "error").String())

	w = doJSON(t, router, http.MethodPost, "/api/cart/", access, map[string]any{"product_id": 1, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/orders/", access, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	body := w.Body.String()
	assert.True(t, gjson.Get(body, "is_ordered").Bool())
	assert.Equal(t, "Placed", gjson.Get(body, "status").String())
	assert.Equal(t, "199.98", gjson.Get(body, "total_price").String())

	w = doJSON(t, router, http.MethodGet, "/api/orders/", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), gjson.Get(w.Body.String(), "#").Int())
}

func TestCartIsolationBetweenCustomers(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "alice")
	register(t, router, "bob")
	aliceToken, _ := login(t, router, "alice")
	bobToken, _ := login(t, router, "bob")

	w := doJSON(t, router, http.MethodPost, "/api/cart/", aliceToken, map[string]any{"product_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	itemID := gjson.Get(w.Body.String(), "items.0.id").Int()

	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/cart/item/%d/", itemID), bobToken,
		map[string]string{"action": "add"})
	require.Equal(t, http.StatusNotFound, w.Code)
}
