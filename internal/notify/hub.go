package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lawnchairsociety/undercroft/internal/config"
	"github.com/lawnchairsociety/undercroft/internal/logger"
	"github.com/lawnchairsociety/undercroft/internal/portal"
)

const (
	sendBuffer      = 32
	broadcastBuffer = 64
	writeWait       = 10 * time.Second
)

// Message is the JSON envelope written to websocket clients.
type Message struct {
	Type    string              `json:"type"`
	Payload portal.Notification `json:"payload"`
	Sender  string              `json:"sender"`
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts notifications to every connected websocket client. Run
// owns the client set; Notify and ServeHTTP only talk to it over channels.
type Hub struct {
	cfg        config.NotifyConfig
	upgrader   websocket.Upgrader
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	count      atomic.Int64
}

var _ portal.NotificationSink = (*Hub)(nil)

// NewHub creates a hub. Call Run before serving connections.
func NewHub(cfg config.NotifyConfig) *Hub {
	h := &Hub{
		cfg:        cfg,
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := h.cfg.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("notification connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}
	return h
}

// Run serves register, unregister and broadcast requests until ctx is done,
// then disconnects every client. Run must only be called once.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for c := range h.clients {
			h.drop(c)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.clients[c] = true
			h.count.Store(int64(len(h.clients)))
			logger.Debug("notification client connected", "remote_addr", c.conn.RemoteAddr().String())

		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow client
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Store(int64(len(h.clients)))
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Notify queues n for every client. It never blocks; when the queue is full
// the notification is dropped.
func (h *Hub) Notify(n portal.Notification) {
	data, err := json.Marshal(Message{Type: string(n.Kind), Payload: n, Sender: "undercroft"})
	if err != nil {
		logger.Error("failed to marshal notification", "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warning("notification queue full, dropping", "kind", string(n.Kind))
	}
}

// ServeHTTP upgrades the request to a websocket and registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump discards incoming messages and unregisters the client when the
// connection closes.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Debug("notification client read error", "error", err)
			}
			return
		}
	}
}

// writePump writes queued messages until the hub closes the send channel.
func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
