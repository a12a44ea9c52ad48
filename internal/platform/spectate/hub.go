// Package spectate streams engine snapshots to websocket spectators.
package spectate

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

const (
	// DefaultEvery sends every 4th tick, 15 frames per second at 60 ticks.
	DefaultEvery = 4

	sendBuffer   = 16
	writeTimeout = 2 * time.Second
	pingInterval = 15 * time.Second
)

// Message types sent to spectators.
const (
	TypeSnapshot = "snapshot"
	TypeGameOver = "game_over"
	TypeCleared  = "cleared"
)

// Message is one JSON frame on the spectator stream.
type Message struct {
	Type     string               `json:"type"`
	Snapshot *platformer.Snapshot `json:"snapshot,omitempty"`
	Score    int                  `json:"score,omitempty"`
	NewBest  bool                 `json:"new_best,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
	// wmu serializes writes between the pump and close frames.
	wmu sync.Mutex
}

func (c *client) write(messageType int, data []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// Hub is a platformer.Adapter that fans snapshots out to connected spectators.
// Render and the On* callbacks never block the tick; slow clients drop frames.
type Hub struct {
	platformer.NopAdapter

	upgrader websocket.Upgrader
	logger   *log.Logger
	every    int

	mu        sync.Mutex
	clients   map[*client]struct{}
	lastState platformer.RunState
	dropped   uint64
}

// Option configures a Hub.
type Option func(*Hub)

// WithEvery sends one snapshot per n ticks. Values below 1 send every tick.
func WithEvery(n int) Option {
	return func(h *Hub) {
		if n < 1 {
			n = 1
		}
		h.every = n
	}
}

// WithLogger sets the hub logger.
func WithLogger(logger *log.Logger) Option {
	return func(h *Hub) {
		h.logger = logger
	}
}

// NewHub creates a hub with no clients.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger:  log.WithPrefix("spectate"),
		every:   DefaultEvery,
		clients: make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP upgrades the request and registers the connection as a spectator.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("spectator connected", "remote", r.RemoteAddr, "clients", count)

	go h.writePump(c)
	go h.readPump(c, r.RemoteAddr)
}

// readPump discards client input and unregisters the client when the
// connection fails.
func (h *Hub) readPump(c *client, remote string) {
	defer func() {
		h.remove(c)
		c.conn.Close()
		h.logger.Info("spectator disconnected", "remote", remote, "clients", h.Clients())
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				//nolint:errcheck // Connection is closing anyway
				c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.write(websocket.TextMessage, data); err != nil {
				h.logger.Debug("write failed", "error", err)
				h.remove(c)
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				h.remove(c)
				return
			}
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.close()
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped returns the number of frames skipped because a client was too slow.
func (h *Hub) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Close disconnects every spectator.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}

// Render sends every Nth snapshot, and always sends state changes.
func (h *Hub) Render(snap platformer.Snapshot) {
	h.mu.Lock()
	changed := snap.State != h.lastState
	h.lastState = snap.State
	h.mu.Unlock()

	if !changed && snap.Tick%h.every != 0 {
		return
	}
	h.broadcast(Message{Type: TypeSnapshot, Snapshot: &snap})
}

// OnGameOver announces a failed run.
func (h *Hub) OnGameOver(score int, newBest bool) {
	h.broadcast(Message{Type: TypeGameOver, Score: score, NewBest: newBest})
}

// OnCleared announces a cleared course.
func (h *Hub) OnCleared(score int, newBest bool) {
	h.broadcast(Message{Type: TypeCleared, Score: score, NewBest: newBest})
}

func (h *Hub) broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.clients) == 0 {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("cannot encode message", "type", msg.Type, "error", err)
		return
	}

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropped++
		}
	}
}
