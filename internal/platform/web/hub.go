// Package web serves the spectator stream and the read-only scores API.
package web

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/kuzushi/internal/games/kuzushi"
)

// Websocket keepalive timings.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 16
)

// Envelope is the msgpack message sent to spectators for every frame.
type Envelope struct {
	Player string        `msgpack:"player"`
	Frame  kuzushi.Frame `msgpack:"frame"`
}

// client is one connected spectator.
type client struct {
	conn   *websocket.Conn
	send   chan []byte
	player string // Only frames from this player; empty means all
}

// Hub fans frames out to every connected spectator.
// Slow spectators drop frames instead of stalling the game.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
	logger  *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

// Publisher returns a frame publisher that tags frames with player.
func (h *Hub) Publisher(player string) *Publisher {
	return &Publisher{hub: h, player: player}
}

// Broadcast sends a frame to every spectator watching player.
func (h *Hub) Broadcast(player string, f kuzushi.Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed || len(h.clients) == 0 {
		return
	}

	data, err := msgpack.Marshal(Envelope{Player: player, Frame: f})
	if err != nil {
		h.logger.Error("could not encode frame", "error", err)
		return
	}

	for c := range h.clients {
		if c.player != "" && c.player != player {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Spectator is behind; drop this frame.
		}
	}
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every spectator. Later registrations are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump discards spectator messages and detects disconnects.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	//nolint:errcheck // Deadline errors surface on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("spectator read error", "error", err)
			}
			return
		}
	}
}

// writePump sends queued frames and keepalive pings.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			//nolint:errcheck // Deadline errors surface on the next write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				//nolint:errcheck // Best-effort close frame
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				h.logger.Debug("spectator write error", "error", err)
				return
			}

		case <-ticker.C:
			//nolint:errcheck // Deadline errors surface on the next write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Publisher forwards one player's frames to a Hub.
type Publisher struct {
	hub    *Hub
	player string
}

// Publish broadcasts f without blocking.
func (p *Publisher) Publish(f kuzushi.Frame) {
	p.hub.Broadcast(p.player, f)
}
