package orderapi

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kleanly/internal/domain"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestCreateOrder(t *testing.T) {
	var gotReq CreateOrderRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]string{"order_id": "ord-123"})
	}))
	defer srv.Close()

	client := New(srv.URL, "secret-token", testLogger())
	id, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		Category:   "wash-fold",
		Items:      []string{"Shirt (x2)"},
		Total:      300,
		Address:    "123 Riverside Drive",
		PickupTime: "Tomorrow, 9:00 AM - 5:00 PM",
		Status:     "pending",
		UserID:     "u1",
	})

	require.NoError(t, err)
	assert.Equal(t, "ord-123", id)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, []string{"Shirt (x2)"}, gotReq.Items)
	assert.Equal(t, int64(300), gotReq.Total)
}

func TestCreateOrderMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	client := New(srv.URL, "", testLogger())
	_, err := client.CreateOrder(context.Background(), CreateOrderRequest{})
	require.Error(t, err)
}

func TestCreateOrderUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "database unavailable", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, "", testLogger())
	_, err := client.CreateOrder(context.Background(), CreateOrderRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestListUserOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/orders/user/u1", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":"ord-1","user_id":"u1","category":"dry-cleaning","status":"confirmed",
			 "createdAt":"2025-03-10T09:00:00Z","items":["Suit (x1)"],"total":800,
			 "address":"123 Riverside Drive","pickupTime":"Tomorrow, 9:00 AM - 5:00 PM"}
		]`))
	}))
	defer srv.Close()

	client := New(srv.URL, "", testLogger())
	orders, err := client.ListUserOrders(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ord-1", orders[0].ID)
	assert.Equal(t, domain.CategoryDryCleaning, orders[0].Category)
	assert.Equal(t, domain.StatusConfirmed, orders[0].Status)
	assert.Equal(t, int64(800), orders[0].Total)
	assert.Equal(t, 2025, orders[0].CreatedAt.Year())
}

func TestUpdateStatus(t *testing.T) {
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/orders/ord-1/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, "", testLogger())
	require.NoError(t, client.UpdateStatus(context.Background(), "ord-1", domain.StatusConfirmed))
	assert.Equal(t, "confirmed", gotBody["status"])
}
