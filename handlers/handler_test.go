package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"gallery-store/internal/auth"
	"gallery-store/internal/cart"
	"gallery-store/internal/events"
	"gallery-store/internal/orders"
	"gallery-store/internal/products"
	"gallery-store/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prefix = "/api"

type testAPI struct {
	r      *gin.Engine
	keys   *auth.Keys
	stores Stores
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	bus := events.NewBus()

	p, err := products.NewConf(bus, products.SeedProducts(now))
	require.NoError(t, err)
	u, err := users.NewConf(bus, users.SeedUsers(now))
	require.NoError(t, err)
	c, err := cart.NewConf(p, bus)
	require.NoError(t, err)
	o, err := orders.NewConf(c, bus)
	require.NoError(t, err)
	k, err := auth.NewKeys([]byte("handler-test-secret"))
	require.NoError(t, err)

	s := Stores{Products: p, Users: u, Carts: c, Orders: o}
	h, err := NewHandler(s, k, time.Hour)
	require.NoError(t, err)
	r, err := API(prefix, gin.TestMode, h)
	require.NoError(t, err)
	return &testAPI{r: r, keys: k, stores: s}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func (a *testAPI) token(t *testing.T, userID int, roles ...string) string {
	t.Helper()
	tok, err := a.keys.GenerateToken(userID, roles, time.Hour)
	require.NoError(t, err)
	return tok
}

type cartBody struct {
	UserID int `json:"user_id"`
	Items  []struct {
		ID        int `json:"id"`
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	} `json:"items"`
	IsEmpty    bool            `json:"is_empty"`
	TotalItems int             `json:"total_items"`
	Total      decimal.Decimal `json:"total"`
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestNewHandler_NilDeps(t *testing.T) {
	_, err := NewHandler(Stores{}, nil, time.Hour)
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodGet, "/ping", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCartScenario(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodGet, prefix+"/carts/7", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[cartBody](t, w)
	assert.True(t, got.IsEmpty)
	assert.True(t, got.Total.IsZero())

	w = a.do(t, http.MethodPost, prefix+"/carts/7/items", gin.H{"product_id": 1, "quantity": 1}, "")
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[cartBody](t, w)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].Quantity)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(15000)))

	w = a.do(t, http.MethodPost, prefix+"/carts/7/items", gin.H{"product_id": 1, "quantity": 2}, "")
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[cartBody](t, w)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)
	assert.Equal(t, 3, got.TotalItems)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(45000)))

	itemPath := prefix + "/carts/7/items/" + strconv.Itoa(got.Items[0].ID)
	w = a.do(t, http.MethodPatch, itemPath, gin.H{"quantity": 0}, "")
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[cartBody](t, w)
	assert.True(t, got.IsEmpty)
	assert.True(t, got.Total.IsZero())
}

func TestAddToCart_DefaultsQuantity(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodPost, prefix+"/carts/3/items", gin.H{"product_id": 2}, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[cartBody](t, w)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].Quantity)
}

func TestCartErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		kind   string
	}{
		{"out of stock", http.MethodPost, "/carts/7/items", gin.H{"product_id": 6, "quantity": 1}, http.StatusConflict, "OUT_OF_STOCK"},
		{"unknown product", http.MethodPost, "/carts/7/items", gin.H{"product_id": 99, "quantity": 1}, http.StatusNotFound, "NOT_FOUND"},
		{"zero quantity", http.MethodPost, "/carts/7/items", gin.H{"product_id": 1, "quantity": 0}, http.StatusBadRequest, "INVALID_INPUT"},
		{"missing product", http.MethodPost, "/carts/7/items", gin.H{"quantity": 1}, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad user id", http.MethodGet, "/carts/abc", nil, http.StatusBadRequest, "INVALID_INPUT"},
		{"update unknown item", http.MethodPatch, "/carts/7/items/5", gin.H{"quantity": 2}, http.StatusNotFound, "NOT_FOUND"},
		{"update without quantity", http.MethodPatch, "/carts/7/items/5", gin.H{}, http.StatusBadRequest, "INVALID_INPUT"},
		{"remove unknown item", http.MethodDelete, "/carts/7/items/5", nil, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAPI(t)

			w := a.do(t, tt.method, prefix+tt.path, tt.body, "")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.kind, decode[errorBody](t, w).Kind)

			if tt.method == http.MethodPost {
				assert.True(t, a.stores.Carts.GetCart(context.Background(), 7).IsEmpty())
			}
		})
	}
}

func TestAddToCart_QuantityOverflow(t *testing.T) {
	a := newTestAPI(t)
	body := gin.H{"product_id": 1, "quantity": math.MaxInt}

	w := a.do(t, http.MethodPost, prefix+"/carts/7/items", body, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodPost, prefix+"/carts/7/items", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decode[errorBody](t, w).Kind)

	got := a.stores.Carts.GetCart(context.Background(), 7)
	require.Len(t, got.Items, 1)
	assert.Equal(t, math.MaxInt, got.Items[0].Quantity)
}

func TestRemoveAndClear(t *testing.T) {
	a := newTestAPI(t)
	a.do(t, http.MethodPost, prefix+"/carts/4/items", gin.H{"product_id": 1}, "")
	a.do(t, http.MethodPost, prefix+"/carts/4/items", gin.H{"product_id": 2}, "")

	w := a.do(t, http.MethodDelete, prefix+"/carts/4/items/1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[cartBody](t, w)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].ProductID)

	w = a.do(t, http.MethodDelete, prefix+"/carts/4/items", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[cartBody](t, w).IsEmpty)
}
