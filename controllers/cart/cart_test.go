package cartControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamnura/mini-ecommerce-api/cart"
	"github.com/imamnura/mini-ecommerce-api/mail"
	"github.com/imamnura/mini-ecommerce-api/middleware"
	"github.com/imamnura/mini-ecommerce-api/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memorySnapshotStore struct {
	mu    sync.Mutex
	saved map[string]*models.CartSnapshot
}

func newMemorySnapshotStore() *memorySnapshotStore {
	return &memorySnapshotStore{saved: make(map[string]*models.CartSnapshot)}
}

func (m *memorySnapshotStore) Save(name string, snap *models.CartSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := &models.CartSnapshot{Lines: append([]models.CartLine(nil), snap.Lines...)}
	m.saved[name] = cp
	return nil
}

func (m *memorySnapshotStore) Load(name string) (*models.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.saved[name]
	if !ok {
		return nil, nil
	}
	return snap, nil
}

type fakeMailer struct {
	mu    sync.Mutex
	err   error
	sent  []string
	items []mail.OrderItem
	total float64
}

func (f *fakeMailer) SendOrderConfirmation(to, customer string, items []mail.OrderItem, total float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	f.items = items
	f.total = total
	return nil
}

type cartResponse struct {
	Items         []models.CartLine `json:"items"`
	TotalQuantity int               `json:"totalQuantity"`
	TotalPrice    float64           `json:"totalPrice"`
	Hydration     string            `json:"hydration"`
}

func cartRouter(carts *cart.Registry, mailer ConfirmationMailer) *gin.Engine {
	r := gin.New()
	g := r.Group("/api/cart", middleware.RequireSession())
	g.GET("", GetCart(carts))
	g.DELETE("", ClearCart(carts))
	g.POST("/items", AddItem(carts))
	g.GET("/items/:product_id", ContainsItem(carts))
	g.PUT("/items/:product_id", UpdateItemQuantity(carts))
	g.DELETE("/items/:product_id", DeleteItem(carts))
	g.POST("/checkout", Checkout(carts, mailer))
	return r
}

func asUser(req *http.Request, userID int) *http.Request {
	req.AddCookie(&http.Cookie{Name: "token", Value: "tok"})
	req.AddCookie(&http.Cookie{Name: "userId", Value: fmt.Sprintf("%d", userID)})
	return req
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, userID int) (*httptest.ResponseRecorder, cartResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, asUser(req, userID))

	var parsed cartResponse
	if w.Code == http.StatusOK {
		_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	}
	return w, parsed
}

func waitHydrated(t *testing.T, carts *cart.Registry, userID int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return carts.For(userID).Hydrated()
	}, time.Second, time.Millisecond)
}

func TestCartRequiresSession(t *testing.T) {
	carts := cart.NewRegistry(newMemorySnapshotStore())
	r := cartRouter(carts, &fakeMailer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartLifecycle(t *testing.T) {
	carts := cart.NewRegistry(newMemorySnapshotStore())
	r := cartRouter(carts, &fakeMailer{})
	waitHydrated(t, carts, 1)

	// Empty to start.
	w, resp := doJSON(t, r, http.MethodGet, "/api/cart", "", 1)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Items)
	assert.Equal(t, "ready", resp.Hydration)

	// Add two units of one product and one of another.
	w, _ = doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":1,"title":"Phone","price":500,"thumbnail":"p.jpg"}`, 1)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":1,"title":"Phone (changed)","price":999}`, 1)
	require.Equal(t, http.StatusOK, w.Code)
	w, resp = doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":2,"title":"Case","price":20}`, 1)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, "Phone", resp.Items[0].Title, "re-adding keeps the first snapshot")
	assert.Equal(t, 500.0, resp.Items[0].Price)
	assert.Equal(t, 3, resp.TotalQuantity)
	assert.Equal(t, 1020.0, resp.TotalPrice)

	// Membership.
	w, _ = doJSON(t, r, http.MethodGet, "/api/cart/items/1", "", 1)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"inCart":true}`, w.Body.String())
	w, _ = doJSON(t, r, http.MethodGet, "/api/cart/items/99", "", 1)
	assert.JSONEq(t, `{"inCart":false}`, w.Body.String())

	// Replace a quantity.
	w, resp = doJSON(t, r, http.MethodPut, "/api/cart/items/1", `{"quantity":5}`, 1)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 6, resp.TotalQuantity)
	assert.Equal(t, 2520.0, resp.TotalPrice)

	// Quantity zero removes the line.
	w, resp = doJSON(t, r, http.MethodPut, "/api/cart/items/1", `{"quantity":0}`, 1)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].ProductID)

	// Delete the remaining line.
	w, resp = doJSON(t, r, http.MethodDelete, "/api/cart/items/2", "", 1)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Items)
}

func TestCartValidation(t *testing.T) {
	carts := cart.NewRegistry(newMemorySnapshotStore())
	r := cartRouter(carts, &fakeMailer{})
	waitHydrated(t, carts, 1)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "add without product id", method: http.MethodPost, path: "/api/cart/items", body: `{"title":"Phone","price":10}`},
		{name: "add without title", method: http.MethodPost, path: "/api/cart/items", body: `{"productId":1,"price":10}`},
		{name: "add with negative price", method: http.MethodPost, path: "/api/cart/items", body: `{"productId":1,"title":"Phone","price":-1}`},
		{name: "update with bad product id", method: http.MethodPut, path: "/api/cart/items/abc", body: `{"quantity":1}`},
		{name: "contains with bad product id", method: http.MethodGet, path: "/api/cart/items/abc", body: ""},
		{name: "delete with bad product id", method: http.MethodDelete, path: "/api/cart/items/abc", body: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := doJSON(t, r, tt.method, tt.path, tt.body, 1)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	carts := cart.NewRegistry(newMemorySnapshotStore())
	r := cartRouter(carts, &fakeMailer{})
	waitHydrated(t, carts, 1)
	waitHydrated(t, carts, 2)

	w, _ := doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":1,"title":"Phone","price":500}`, 1)
	require.Equal(t, http.StatusOK, w.Code)

	_, other := doJSON(t, r, http.MethodGet, "/api/cart", "", 2)
	assert.Empty(t, other.Items)
}

func TestClearCart(t *testing.T) {
	carts := cart.NewRegistry(newMemorySnapshotStore())
	r := cartRouter(carts, &fakeMailer{})
	waitHydrated(t, carts, 1)

	doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":1,"title":"Phone","price":500}`, 1)
	w, _ := doJSON(t, r, http.MethodDelete, "/api/cart", "", 1)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cart cleared")

	_, resp := doJSON(t, r, http.MethodGet, "/api/cart", "", 1)
	assert.Empty(t, resp.Items)
}

func TestCheckout(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		carts := cart.NewRegistry(newMemorySnapshotStore())
		r := cartRouter(carts, &fakeMailer{})
		waitHydrated(t, carts, 1)

		w, _ := doJSON(t, r, http.MethodPost, "/api/cart/checkout", `{"email":"a@b.co"}`, 1)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Cart is empty")
	})

	t.Run("invalid email", func(t *testing.T) {
		carts := cart.NewRegistry(newMemorySnapshotStore())
		r := cartRouter(carts, &fakeMailer{})
		waitHydrated(t, carts, 1)

		w, _ := doJSON(t, r, http.MethodPost, "/api/cart/checkout", `{"email":"not-an-email"}`, 1)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("confirms and clears", func(t *testing.T) {
		carts := cart.NewRegistry(newMemorySnapshotStore())
		mailer := &fakeMailer{}
		r := cartRouter(carts, mailer)
		waitHydrated(t, carts, 1)

		doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":1,"title":"Phone","price":500}`, 1)
		doJSON(t, r, http.MethodPut, "/api/cart/items/1", `{"quantity":2}`, 1)

		w, _ := doJSON(t, r, http.MethodPost, "/api/cart/checkout", `{"email":"a@b.co","name":"Ana"}`, 1)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Order confirmed")

		mailer.mu.Lock()
		assert.Equal(t, []string{"a@b.co"}, mailer.sent)
		require.Len(t, mailer.items, 1)
		assert.Equal(t, mail.OrderItem{Name: "Phone", Quantity: 2, Price: 500}, mailer.items[0])
		assert.Equal(t, 1000.0, mailer.total)
		mailer.mu.Unlock()

		_, resp := doJSON(t, r, http.MethodGet, "/api/cart", "", 1)
		assert.Empty(t, resp.Items, "checkout empties the cart")
	})

	t.Run("mail failure keeps the cart", func(t *testing.T) {
		carts := cart.NewRegistry(newMemorySnapshotStore())
		mailer := &fakeMailer{err: errors.New("smtp down")}
		r := cartRouter(carts, mailer)
		waitHydrated(t, carts, 1)

		doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":1,"title":"Phone","price":500}`, 1)
		w, _ := doJSON(t, r, http.MethodPost, "/api/cart/checkout", `{"email":"a@b.co"}`, 1)
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		_, resp := doJSON(t, r, http.MethodGet, "/api/cart", "", 1)
		assert.Len(t, resp.Items, 1, "a failed checkout must not lose the cart")
	})
}
