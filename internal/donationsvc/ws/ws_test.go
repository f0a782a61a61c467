package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/satsangkankpul/donation-services/internal/comm"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_BroadcastsDonations(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 10*time.Millisecond)

	hub.DonationCreated(&models.Donation{
		ID:            "d1",
		FullName:      "Asha Devi",
		AmountINR:     decimal.RequireFromString("501"),
		PaymentMethod: models.PaymentOnline,
		PaymentID:     "pay_123",
	})

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		msg := &comm.WSMessage{}
		require.NoError(t, conn.ReadJSON(msg))
		assert.Equal(t, comm.TypeDonationCreated, msg.Type)
		assert.NotEmpty(t, msg.SocketId)
		assert.Contains(t, string(msg.Data), `"amount_inr":"501.00"`)
		assert.Contains(t, string(msg.Data), `"payment_id":"pay_123"`)
	}
}

func TestHub_ForgetsClosedSockets(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 10*time.Millisecond)

	// broadcasting with nobody listening is a no-op
	hub.DonationCreated(&models.Donation{ID: "d2"})
}

func TestHub_Close(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	dial(t, srv)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Equal(t, 0, hub.Count())
}

func TestHub_StalledClientDoesNotBlockBroadcast(t *testing.T) {
	hub := NewHub()

	// the stalled socket has no writer draining its queue
	stalled := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := hub.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := newClient("stalled", conn, 0)
		hub.connMap.Store(c.id, c)
	}))
	defer stalled.Close()
	healthy := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer healthy.Close()

	dial(t, stalled)
	conn := dial(t, healthy)
	require.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 10*time.Millisecond)

	start := time.Now()
	hub.DonationCreated(&models.Donation{ID: "d3", AmountINR: decimal.NewFromInt(10)})
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	_, ok := hub.connMap.Load("stalled")
	assert.False(t, ok)
	assert.Equal(t, 1, hub.Count())

	conn.SetReadDeadline(time.Now().Add(time.Second))
	msg := &comm.WSMessage{}
	require.NoError(t, conn.ReadJSON(msg))
	assert.Contains(t, string(msg.Data), `"id":"d3"`)
}
