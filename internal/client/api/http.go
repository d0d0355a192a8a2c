package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/shopkart-io/shopkart/internal/client/models"
)

// Backend paths. The contract is externally defined and treated as fixed.
const (
	pathToken        = "/api/token/"
	pathTokenRefresh = "/api/token/refresh/"
	pathRegister     = "/api/register/"
	pathProducts     = "/api/products/"
	pathCategories   = "/api/categories/"
	pathCart         = "/api/cart/"
	pathCartClear    = "/api/cart/clear/"
	pathOrders       = "/api/orders/"
)

const genericErrMessage = "An unknown API error occurred."

// HTTPClient is the concrete gateway over the storefront REST API.
type HTTPClient struct {
	baseURL string
	creds   CredentialStore
	httpc   *http.Client

	// Concurrent 401s share a single in-flight refresh, keyed by the refresh
	// token they observed. A second 401 after a completed refresh starts a
	// new flight with the same key, which is fine: it either succeeds again
	// or the caller surfaces its original failure.
	refreshGroup singleflight.Group
}

// NewHTTPClient builds a gateway for the backend at baseURL. The credential
// store is read before every call; the gateway only ever writes the access
// token, and only after a successful refresh.
func NewHTTPClient(baseURL string, creds CredentialStore) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Client = (*HTTPClient)(nil)

// roundTrip performs one HTTP exchange and returns the status and raw body.
// The body and content marker are omitted when payload is nil; the bearer
// header is omitted when token is empty.
func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, payload []byte, token string) (int, []byte, error) {
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}

// do runs an API call end to end: serialize, authenticate, detect a 401,
// refresh-and-retry exactly once, and decode the response into out.
// It reports whether a body was decoded; a 204 yields (false, nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, authed bool) (bool, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("encode request: %w", err)
		}
	}

	token := ""
	if authed {
		token = c.creds.AccessToken()
	}

	status, data, err := c.roundTrip(ctx, method, path, payload, token)
	if err != nil {
		return false, transportError(err)
	}

	if status == http.StatusUnauthorized && authed {
		original := errorFrom(status, data)
		newToken, refreshErr := c.refreshAccessToken(ctx)
		if refreshErr != nil {
			// The refresh path is exhausted: surface the original failure
			// unchanged and leave the logout decision to the caller.
			return false, original
		}
		status, data, err = c.roundTrip(ctx, method, path, payload, newToken)
		if err != nil {
			return false, transportError(err)
		}
	}

	switch {
	case status == http.StatusNoContent:
		return false, nil
	case status >= 200 && status < 300:
		if out == nil || len(data) == 0 {
			return false, nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return false, &Error{Kind: KindServer, Status: status, Message: "malformed response body", cause: err}
		}
		return true, nil
	default:
		return false, errorFrom(status, data)
	}
}

// refreshAccessToken exchanges the persisted refresh token for a new access
// token and rewrites the stored credential. Concurrent callers observing the
// same refresh token share one exchange.
func (c *HTTPClient) refreshAccessToken(ctx context.Context) (string, error) {
	refresh := c.creds.RefreshToken()
	if refresh == "" {
		return "", errors.New("no refresh token held")
	}

	v, err, _ := c.refreshGroup.Do(refresh, func() (any, error) {
		payload, err := json.Marshal(map[string]string{"refresh": refresh})
		if err != nil {
			return nil, err
		}
		status, data, err := c.roundTrip(ctx, http.MethodPost, pathTokenRefresh, payload, "")
		if err != nil {
			return nil, transportError(err)
		}
		if status != http.StatusOK {
			return nil, errorFrom(status, data)
		}
		var pair models.TokenPair
		if err := json.Unmarshal(data, &pair); err != nil {
			return nil, fmt.Errorf("malformed refresh response: %w", err)
		}
		if pair.Access == "" {
			return nil, errors.New("refresh response missing access token")
		}
		if err := c.creds.SetAccessToken(pair.Access); err != nil {
			return nil, fmt.Errorf("persist access token: %w", err)
		}
		return pair.Access, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// errorFrom builds the typed failure for a non-success response. The message
// comes from the structured error body (`detail`, or the first field-keyed
// validation message); an unparseable body falls back to a generic message so
// error reporting itself never fails.
func errorFrom(status int, data []byte) *Error {
	kind := KindServer
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status >= 400 && status < 500:
		kind = KindValidation
	}

	msg := extractMessage(data)
	if msg == "" {
		msg = genericErrMessage
	}
	return &Error{Kind: kind, Status: status, Message: msg}
}

func extractMessage(data []byte) string {
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return ""
	}
	v := gjson.ParseBytes(data)
	if d := v.Get("detail"); d.Exists() {
		return d.String()
	}
	if !v.IsObject() {
		return ""
	}
	// Field-keyed validation errors: take the first field's first message.
	var msg string
	v.ForEach(func(key, value gjson.Result) bool {
		if value.IsArray() {
			if arr := value.Array(); len(arr) > 0 {
				msg = arr[0].String()
			}
		} else {
			msg = value.String()
		}
		return false
	})
	return msg
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	var pair models.TokenPair
	body := map[string]string{"username": username, "password": password}
	if _, err := c.do(ctx, http.MethodPost, pathToken, body, &pair, false); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	_, err := c.do(ctx, http.MethodPost, pathRegister, body, nil, false)
	return err
}

func (c *HTTPClient) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if _, err := c.do(ctx, http.MethodGet, pathProducts, nil, &products, false); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *HTTPClient) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if _, err := c.do(ctx, http.MethodGet, pathCategories, nil, &categories, false); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *HTTPClient) Cart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if _, err := c.do(ctx, http.MethodGet, pathCart, nil, &cart, true); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *HTTPClient) AddToCart(ctx context.Context, productID int64, quantity int) (*models.Cart, error) {
	var cart models.Cart
	body := map[string]any{"product_id": productID, "quantity": quantity}
	if _, err := c.do(ctx, http.MethodPost, pathCart, body, &cart, true); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *HTTPClient) UpdateCartItem(ctx context.Context, itemID int64, action string) (*models.Cart, error) {
	var cart models.Cart
	path := fmt.Sprintf("%sitem/%d/", pathCart, itemID)
	body := map[string]string{"action": action}
	if _, err := c.do(ctx, http.MethodPatch, path, body, &cart, true); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *HTTPClient) RemoveCartItem(ctx context.Context, itemID int64) (*models.Cart, error) {
	var cart models.Cart
	path := fmt.Sprintf("%sitem/%d/", pathCart, itemID)
	if _, err := c.do(ctx, http.MethodDelete, path, nil, &cart, true); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *HTTPClient) ClearCart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if _, err := c.do(ctx, http.MethodPost, pathCartClear, nil, &cart, true); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *HTTPClient) PlaceOrder(ctx context.Context) (*models.Order, error) {
	var order models.Order
	decoded, err := c.do(ctx, http.MethodPost, pathOrders, nil, &order, true)
	if err != nil {
		return nil, err
	}
	if !decoded {
		return nil, nil
	}
	return &order, nil
}

func (c *HTTPClient) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if _, err := c.do(ctx, http.MethodGet, pathOrders, nil, &orders, true); err != nil {
		return nil, err
	}
	return orders, nil
}
