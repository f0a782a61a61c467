package payment

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRazorpayClient_CreateOrder(t *testing.T) {
	t.Run("successful order", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/orders", r.URL.Path)

			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "rzp_test_key", user)
			assert.Equal(t, "secret", pass)

			var req OrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, int64(50050), req.Amount)
			assert.Equal(t, "INR", req.Currency)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(Order{ID: "order_abc", Amount: req.Amount, Currency: req.Currency, Status: "created"})
		}))
		defer srv.Close()

		c := NewRazorpayClient("rzp_test_key", "secret", srv.URL+"/v1/", time.Second)
		order, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 50050, Currency: "INR", Receipt: "r1"})
		require.NoError(t, err)
		assert.Equal(t, "order_abc", order.ID)
		assert.Equal(t, "rzp_test_key", c.KeyID())
	})

	t.Run("provider error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"The amount must be atleast INR 1.00"}}`))
		}))
		defer srv.Close()

		c := NewRazorpayClient("k", "s", srv.URL, time.Second)
		_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 1, Currency: "INR"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BAD_REQUEST_ERROR")
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		c := NewRazorpayClient("k", "s", srv.URL, 20*time.Millisecond)
		_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR"})
		assert.Error(t, err)
	})

	t.Run("missing order id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"entity":"order"}`))
		}))
		defer srv.Close()

		c := NewRazorpayClient("k", "s", srv.URL, time.Second)
		_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR"})
		assert.Error(t, err)
	})
}

func TestToPaise(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"500", 50000},
		{"500.50", 50050},
		{"10.005", 1001},
		{"0", 0},
		{"-1.5", -150},
		{"92233720368547758.07", math.MaxInt64},
	}
	for _, tt := range tests {
		got, err := ToPaise(decimal.RequireFromString(tt.amount))
		require.NoError(t, err, tt.amount)
		assert.Equal(t, tt.want, got, tt.amount)
	}
}

func TestToPaise_OutOfRange(t *testing.T) {
	// these used to wrap around int64 to 1 and MinInt64
	for _, raw := range []string{"184467440737095516.17", "92233720368547758.08", "-92233720368547758.09", "1e30"} {
		_, err := ToPaise(decimal.RequireFromString(raw))
		assert.ErrorIs(t, err, ErrAmountOutOfRange, raw)
	}
}

func TestReceipt(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	assert.Equal(t, "receipt_order_1700000000123", Receipt(at))
}
