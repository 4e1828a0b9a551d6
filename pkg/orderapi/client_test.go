package orderapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDecodesOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		w.Write([]byte(`[{"id":1,"customerName":"Alice","product":"Pen","quantity":3,"price":2}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	orders, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Alice", orders[0].CustomerName)
	assert.Equal(t, 3, orders[0].Quantity)
}

func TestCreateSendsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Alice", req.CustomerName)
		require.NotNil(t, req.Quantity)
		assert.Equal(t, 3, *req.Quantity)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"customerName":"Alice","product":"Pen","quantity":3,"price":2}`))
	}))
	defer srv.Close()

	quantity := 3
	price := 2.0
	client := NewClient(srv.URL)
	order, err := client.Create(context.Background(), &CreateOrderRequest{
		CustomerName: "Alice",
		Product:      "Pen",
		Quantity:     &quantity,
		Price:        &price,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), order.ID)
}

func TestUpdateOmitsUnsetFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/orders/7", r.URL.Path)

		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Contains(t, raw, "price")
		assert.NotContains(t, raw, "quantity")
		assert.NotContains(t, raw, "customerName")

		w.Write([]byte(`{"id":7,"customerName":"Alice","product":"Pen","quantity":3,"price":5}`))
	}))
	defer srv.Close()

	price := 5.0
	client := NewClient(srv.URL)
	order, err := client.Update(context.Background(), 7, &UpdateOrderRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 5.0, order.Price)
	assert.Equal(t, 3, order.Quantity)
}

func TestDeleteDecodesEcho(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Write([]byte(`{"message":"Order deleted","order":{"id":7,"customerName":"Alice","product":"Pen","quantity":3,"price":2}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Delete(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Order deleted", resp.Message)
	assert.Equal(t, uint(7), resp.Order.ID)
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Order not found"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServerErrorCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Quantity must be at least 1"}`))
	}))
	defer srv.Close()

	quantity := 0
	price := 2.0
	client := NewClient(srv.URL)
	_, err := client.Create(context.Background(), &CreateOrderRequest{
		CustomerName: "Alice",
		Product:      "Pen",
		Quantity:     &quantity,
		Price:        &price,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Quantity must be at least 1")
}
