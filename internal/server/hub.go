package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/detect"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

const (
	// sendBufferSize bounds the per-client outbound queue. A client that
	// falls this far behind is dropped rather than allowed to stall the
	// broadcaster.
	sendBufferSize = 8

	writeTimeout = 10 * time.Second
)

// wsMessage is the payload pushed to every connected client when the live
// feed changes.
type wsMessage struct {
	Type      string             `json:"type"`
	Snapshot  *snapshot.Snapshot `json:"snapshot"`
	Detection detect.Result      `json:"detection"`
}

// upgrader accepts any origin: cross-origin policy is enforced by the CORS
// middleware in front of the handler, not by the websocket handshake.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// hub fans detection updates out to websocket clients. Clients are
// write-only recipients: inbound frames are read and discarded, serving only
// to detect disconnects.
//
// Sends to a client channel and the close of that channel are both performed
// under mu, and only while the client is still registered. That ordering is
// what makes broadcast safe against concurrent disconnects.
type hub struct {
	logger *log.Logger

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

type wsClient struct {
	conn *websocket.Conn
	send chan wsMessage
}

func newHub(logger *log.Logger) *hub {
	return &hub{
		logger:  logger,
		clients: make(map[*wsClient]struct{}),
	}
}

// register adopts an upgraded connection and starts its pump goroutines.
// If last is non-nil it is queued as the first message, so new clients see
// the current state without waiting for the next change.
func (h *hub) register(conn *websocket.Conn, last *wsMessage) {
	c := &wsClient{
		conn: conn,
		send: make(chan wsMessage, sendBufferSize),
	}
	if last != nil {
		c.send <- *last
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	wsClients.Set(float64(n))
	h.logger.Debug("websocket client connected", "clients", n)

	go h.writePump(c)
	go h.readPump(c)
}

// broadcast queues msg for every client. Clients whose buffer is full are
// disconnected instead of blocking the caller.
func (h *hub) broadcast(msg wsMessage) {
	var slow []*wsClient

	h.mu.Lock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.Unlock()

	for _, c := range slow {
		h.logger.Warn("websocket client too slow, dropping")
		h.remove(c)
	}
}

// count returns the number of connected clients.
func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// close disconnects every client.
func (h *hub) close() {
	h.mu.Lock()
	clients := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.remove(c)
	}
}

func (h *hub) remove(c *wsClient) {
	h.mu.Lock()
	_, present := h.clients[c]
	if present {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if !present {
		return
	}
	wsClients.Set(float64(n))
	_ = c.conn.Close()
}

// writePump drains the client's send channel onto the connection. It exits
// when remove closes the channel or when a write fails.
func (h *hub) writePump(c *wsClient) {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(msg); err != nil {
			h.remove(c)
			return
		}
	}
}

// readPump discards inbound frames. Reading is still required: it is how
// close frames and dead connections are noticed.
func (h *hub) readPump(c *wsClient) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}
