package routes

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/configs"
	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/renderer"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/sessions"
	EventBus "github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *App) {
	t.Helper()
	keys := configs.EphemeralSessionKeys()
	notifier := services.NewNotifier(services.NewMailer(services.Config{}), "", "Mens Club")
	app := NewApp(
		docstore.NewMemoryStore(),
		EventBus.New(),
		renderer.New(false),
		sessions.NewCookieSessionStore(false, keys.KeyPairs()...),
		notifier,
	)
	srv := httptest.NewServer(Handler(app))
	t.Cleanup(func() {
		srv.Close()
		app.Registry.Close()
		_ = app.Store.Close(context.Background())
	})
	return srv, app
}

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T, srv *httptest.Server) *client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: srv.URL, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := jsoniter.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)
	out := map[string]any{}
	_ = jsoniter.Unmarshal(raw, &out)
	return res.StatusCode, out
}

func seedProduct(t *testing.T, app *App) *models.Product {
	stock := 5
	p, err := app.Products.CreateProduct(context.Background(), &models.Product{
		Name:     "Linen Shirt",
		Price:    decimal.NewFromInt(1200),
		Category: "shirts",
		Sizes:    []string{"M", "L"},
		Stock:    &stock,
	})
	require.NoError(t, err)
	return p
}

var address = map[string]any{
	"fullName":     "Ravi Kumar",
	"phone":        "9876543210",
	"addressLine1": "Main Road",
	"city":         "Keshavapatnam",
	"state":        "Telangana",
	"postalCode":   "505451",
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	status, body := newClient(t, srv).do("GET", "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["message"])
}

func TestAnonymousCartIsUnauthorized(t *testing.T) {
	srv, _ := newTestServer(t)
	status, _ := newClient(t, srv).do("GET", "/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProductsArePublic(t *testing.T) {
	srv, app := newTestServer(t)
	p := seedProduct(t, app)
	c := newClient(t, srv)

	status, body := c.do("GET", "/products/"+p.ID, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Linen Shirt", body["name"])

	status, _ = c.do("GET", "/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSignUpValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	status, body := newClient(t, srv).do("POST", "/auth/signup", map[string]any{
		"name": "R", "email": "not-an-email", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestCheckoutFlow(t *testing.T) {
	srv, app := newTestServer(t)
	p := seedProduct(t, app)
	c := newClient(t, srv)

	status, body := c.do("POST", "/auth/signup", map[string]any{
		"name": "Ravi Kumar", "email": "ravi@example.com", "password": "s3cretpass",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.NotContains(t, body, "passwordHash")

	status, _ = c.do("GET", "/auth/me", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = c.do("POST", "/cart/items", map[string]any{
		"productId": p.ID, "selectedSize": "M", "quantity": 2,
	})
	require.Equal(t, http.StatusOK, status)

	assert.Eventually(t, func() bool {
		_, cart := c.do("GET", "/cart", nil)
		count, _ := cart["count"].(float64)
		return count == 2
	}, 2*time.Second, 20*time.Millisecond)

	status, body = c.do("POST", "/checkout", map[string]any{
		"shippingAddress": address,
		"paymentMethod":   "cod",
		"idempotencyKey":  "checkout-1",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["cartCleared"])
	order, ok := body["order"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Pending", order["status"])
	orderID, _ := order["id"].(string)
	require.NotEmpty(t, orderID)

	status, _ = c.do("GET", "/orders/"+orderID, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = c.do("POST", "/orders/"+orderID+"/cancel", map[string]any{"reason": "Ordered by mistake"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Cancelled", body["status"])
}

func TestCheckoutEmptyCart(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(t, srv)
	status, _ := c.do("POST", "/auth/signup", map[string]any{
		"name": "Ravi Kumar", "email": "ravi@example.com", "password": "s3cretpass",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = c.do("POST", "/checkout", map[string]any{
		"shippingAddress": address,
		"paymentMethod":   "cod",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestAdminRoutes(t *testing.T) {
	srv, app := newTestServer(t)
	p := seedProduct(t, app)

	customer := newClient(t, srv)
	status, _ := customer.do("POST", "/auth/signup", map[string]any{
		"name": "Ravi Kumar", "email": "ravi@example.com", "password": "s3cretpass",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = customer.do("GET", "/admin/orders", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = newClient(t, srv).do("GET", "/admin/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	_, err := app.Auth.EnsureAdmin(context.Background(), "Store Owner", "owner@example.com", "0wnerpass")
	require.NoError(t, err)
	owner := newClient(t, srv)
	status, _ = owner.do("POST", "/auth/signin", map[string]any{"email": "owner@example.com", "password": "0wnerpass"})
	require.Equal(t, http.StatusOK, status)

	status, _ = customer.do("POST", "/cart/items", map[string]any{"productId": p.ID, "selectedSize": "L"})
	require.Equal(t, http.StatusOK, status)
	assert.Eventually(t, func() bool {
		_, cart := customer.do("GET", "/cart", nil)
		count, _ := cart["count"].(float64)
		return count == 1
	}, 2*time.Second, 20*time.Millisecond)

	_, body := customer.do("POST", "/checkout", map[string]any{"shippingAddress": address, "paymentMethod": "upi"})
	order, ok := body["order"].(map[string]any)
	require.True(t, ok)
	orderID := order["id"].(string)

	status, body = owner.do("PATCH", "/admin/orders/"+orderID+"/status", map[string]any{"status": "Shipped"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Shipped", body["status"])

	status, body = customer.do("POST", "/orders/"+orderID+"/cancel", map[string]any{"reason": "Too late"})
	assert.Equal(t, http.StatusConflict, status)
	assert.NotNil(t, body["support"])

	status, body = owner.do("PATCH", "/admin/orders/"+orderID+"/status", map[string]any{"status": "Bogus"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMethodOverride(t *testing.T) {
	srv, app := newTestServer(t)
	p := seedProduct(t, app)
	c := newClient(t, srv)
	status, _ := c.do("POST", "/auth/signup", map[string]any{
		"name": "Ravi Kumar", "email": "ravi@example.com", "password": "s3cretpass",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = c.do("POST", "/wishlist/"+p.ID, nil)
	require.Equal(t, http.StatusOK, status)

	req, err := http.NewRequest("POST", srv.URL+"/wishlist/"+p.ID, nil)
	require.NoError(t, err)
	req.Header.Set("X-HTTP-Method-Override", "DELETE")
	res, err := c.http.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
