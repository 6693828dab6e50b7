package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoly/backend/internal/entity"
	"github.com/scoly/backend/internal/messaging"
	"github.com/scoly/backend/internal/repository/memory"
	"github.com/scoly/backend/internal/service"
)

func newTestServer(t *testing.T) *http.ServeMux {
	t.Helper()

	products := memory.NewProductRepository()
	require.NoError(t, products.Seed(context.Background(), []entity.Product{
		{ID: "sku-1", Name: "Notebook", Price: 12.5, Stock: 10},
		{ID: "sku-2", Name: "Gel Pens", Price: 8, Stock: 10},
	}))
	carts := memory.NewCartRepository(products)
	guest := memory.NewGuestCartStore()
	orders := memory.NewOrderRepository()
	publisher := messaging.NewNopPublisher()

	cartSvc := service.NewCartService(guest, carts, products, publisher)
	orderSvc := service.NewOrderService(orders, carts, products, publisher)

	mux := http.NewServeMux()
	NewHandler(cartSvc, orderSvc).RegisterRoutes(mux)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path string, headers map[string]string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

var guestHeaders = map[string]string{"X-Guest-ID": "g-1"}
var userHeaders = map[string]string{"X-User-ID": "u-1"}

func TestGetProducts(t *testing.T) {
	mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []entity.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 2)
}

func TestCart_GuestAddAndGet(t *testing.T) {
	mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/cart/items", guestHeaders,
		addToCartRequest{ProductID: "sku-1", Quantity: 2})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/api/cart", guestHeaders, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, rec)
	assert.Equal(t, 2, resp.ItemCount)
	assert.Equal(t, 25.0, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, entity.GuestItem, resp.Items[0].ID.Kind)
}

func TestCart_MissingIdentityRejected(t *testing.T) {
	mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/cart/items", nil,
		addToCartRequest{ProductID: "sku-1", Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCart_GuestRemoveByProductID(t *testing.T) {
	mux := newTestServer(t)

	doRequest(t, mux, http.MethodPost, "/api/cart/items", guestHeaders,
		addToCartRequest{ProductID: "sku-1", Quantity: 1})

	rec := doRequest(t, mux, http.MethodDelete, "/api/cart/items/sku-1", guestHeaders, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Removing again is still a 204, not an error.
	rec = doRequest(t, mux, http.MethodDelete, "/api/cart/items/sku-1", guestHeaders, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	resp := decodeCart(t, doRequest(t, mux, http.MethodGet, "/api/cart", guestHeaders, nil))
	assert.Equal(t, 0, resp.ItemCount)
}

func TestCart_SetQuantityFloorRemoves(t *testing.T) {
	mux := newTestServer(t)

	doRequest(t, mux, http.MethodPost, "/api/cart/items", guestHeaders,
		addToCartRequest{ProductID: "sku-1", Quantity: 3})

	rec := doRequest(t, mux, http.MethodPatch, "/api/cart/items/sku-1", guestHeaders,
		setQuantityRequest{Quantity: 0})
	require.Equal(t, http.StatusNoContent, rec.Code)

	resp := decodeCart(t, doRequest(t, mux, http.MethodGet, "/api/cart", guestHeaders, nil))
	assert.Empty(t, resp.Items)
}

func TestCart_SignInMigrationFlow(t *testing.T) {
	mux := newTestServer(t)

	doRequest(t, mux, http.MethodPost, "/api/cart/items", guestHeaders,
		addToCartRequest{ProductID: "sku-1", Quantity: 2})
	doRequest(t, mux, http.MethodPost, "/api/cart/items", guestHeaders,
		addToCartRequest{ProductID: "sku-2", Quantity: 1})

	// Sign-in: the client sends both identities once.
	both := map[string]string{"X-Guest-ID": "g-1", "X-User-ID": "u-1"}
	rec := doRequest(t, mux, http.MethodPost, "/api/cart/migrate", both, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// The authenticated cart holds the merged lines.
	resp := decodeCart(t, doRequest(t, mux, http.MethodGet, "/api/cart", userHeaders, nil))
	assert.Equal(t, 3, resp.ItemCount)
	for _, item := range resp.Items {
		assert.Equal(t, entity.RemoteItem, item.ID.Kind)
	}

	// The guest cart is gone.
	resp = decodeCart(t, doRequest(t, mux, http.MethodGet, "/api/cart", guestHeaders, nil))
	assert.Equal(t, 0, resp.ItemCount)
}

func TestCart_MigrateWithoutUserRejected(t *testing.T) {
	mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/cart/migrate", guestHeaders, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckout_FromAuthenticatedCart(t *testing.T) {
	mux := newTestServer(t)

	doRequest(t, mux, http.MethodPost, "/api/cart/items", userHeaders,
		addToCartRequest{ProductID: "sku-1", Quantity: 2})

	rec := doRequest(t, mux, http.MethodPost, "/api/orders", userHeaders, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order entity.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, 25.0, order.TotalPrice)

	// Cart is drained by the checkout.
	resp := decodeCart(t, doRequest(t, mux, http.MethodGet, "/api/cart", userHeaders, nil))
	assert.Equal(t, 0, resp.ItemCount)

	rec = doRequest(t, mux, http.MethodGet, "/api/orders", userHeaders, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []entity.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)
}

func TestCheckout_GuestRejected(t *testing.T) {
	mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/orders", guestHeaders, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	mux := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/orders", userHeaders, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
