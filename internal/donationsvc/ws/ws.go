package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/satsangkankpul/donation-services/internal/comm"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

// Hub keeps the admin feed sockets and pushes every new donation to them.
// Broadcast never waits on a socket: each client has its own queue and
// writer goroutine, and a client whose queue is full is dropped.
type Hub struct {
	upgrader websocket.Upgrader
	connMap  sync.Map // socketId -> *client
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan *comm.WSMessage
	done chan struct{}
	once sync.Once
}

func newClient(id string, conn *websocket.Conn, buffer int) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan *comm.WSMessage, buffer),
		done: make(chan struct{}),
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// writePump is the only goroutine writing data frames to conn.
func (c *client) writePump() {
	for {
		select {
		case m := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(m); err != nil {
				log.Warnf("admin feed %s write failed: %v", c.id, err)
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades the admin feed request. The route is already
// behind the session gate, so same-origin checks are left to the upgrader.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		log.Errorf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	c := newClient(uuid.New().String(), conn, sendBuffer)
	h.connMap.Store(c.id, c)
	log.Infof("admin feed connected: %s", c.id)

	go c.writePump()
	go h.handleConnection(c)
}

func (h *Hub) handleConnection(c *client) {
	defer func() {
		h.remove(c)
		log.Infof("admin feed closed: %s", c.id)
	}()

	// the feed is one way; reads only detect the close
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Errorf("WebSocket unexpected close error for socket %s: %v", c.id, err)
			}
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.connMap.CompareAndDelete(c.id, c)
	c.close()
}

// Broadcast queues m for every connected socket without blocking.
func (h *Hub) Broadcast(m *comm.WSMessage) {
	h.connMap.Range(func(key, value any) bool {
		c := value.(*client)

		out := *m
		out.SocketId = c.id
		select {
		case c.send <- &out:
		case <-c.done:
		default:
			log.Warnf("dropping slow admin feed %s", c.id)
			h.remove(c)
		}
		return true
	})
}

// DonationCreated implements service.Notifier.
func (h *Hub) DonationCreated(d *models.Donation) {
	msg, err := comm.DonationCreatedMessage(d)
	if err != nil {
		log.Errorf("marshal donation event: %v", err)
		return
	}
	h.Broadcast(msg)
}

func (h *Hub) Count() int {
	n := 0
	h.connMap.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Close disconnects every socket, used on shutdown.
func (h *Hub) Close() {
	h.connMap.Range(func(key, value any) bool {
		c := value.(*client)
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		h.remove(c)
		return true
	})
}
