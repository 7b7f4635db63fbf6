package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"path"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/udisondev/arcana/internal/game/combat"
	"github.com/udisondev/arcana/internal/metrics"
)

const (
	maxHubClients = 500
	writeWait     = 5 * time.Second
)

// Hub streams effect intents to render clients over WebSocket.
// Only the Run goroutine touches the client set and writes to connections.
type Hub struct {
	clients    map[*websocket.Conn]struct{}
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	count      atomic.Int64
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewHub creates a hub accepting connections from the given origin patterns
// (path.Match syntax, e.g. "http://localhost:*"). Nil means localhost only.
func NewHub(origins []string, logger *slog.Logger) *Hub {
	if origins == nil {
		origins = defaultOrigins
	}
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hub{
		clients:    make(map[*websocket.Conn]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		logger:     logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowedOrigin(origins, origin)
		},
	}
	return h
}

func allowedOrigin(patterns []string, origin string) bool {
	for _, p := range patterns {
		if p == "*" {
			return true
		}
		if ok, _ := path.Match(p, origin); ok {
			return true
		}
	}
	return false
}

// Run owns the client set until ctx is cancelled, then closes every connection.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for conn := range h.clients {
				h.drop(conn)
			}
			return nil

		case conn := <-h.register:
			h.clients[conn] = struct{}{}
			h.count.Store(int64(len(h.clients)))
			metrics.SetWSClients(len(h.clients))
			h.logger.Debug("stream client connected", "remote", conn.RemoteAddr().String(), "clients", len(h.clients))

		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				h.drop(conn)
			}

		case msg := <-h.broadcast:
			for conn := range h.clients {
				conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					h.drop(conn)
				}
			}
			metrics.IncWSMessages()
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	delete(h.clients, conn)
	conn.Close()
	h.count.Store(int64(len(h.clients)))
	metrics.SetWSClients(len(h.clients))
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Broadcast queues an {event, data} message for every client.
// Messages are dropped when the queue is full.
func (h *Hub) Broadcast(event string, data any) {
	msg, err := json.Marshal(map[string]any{"event": event, "data": data})
	if err != nil {
		h.logger.Warn("encoding stream message", "event", event, "error", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
	}
}

// PublishCast broadcasts every intent of a successful cast.
// Its signature matches session.Listener.
func (h *Hub) PublishCast(playerID int64, res combat.CastResult) {
	for _, in := range res.Intents {
		h.Broadcast("effect", effectEvent{Player: playerID, Intent: toIntentDTO(in)})
	}
}

// HandleWebSocket upgrades the request and registers the connection.
// Incoming messages are read and discarded so close frames are processed.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.ClientCount() >= maxHubClients {
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}

	go func() {
		defer func() {
			select {
			case h.unregister <- conn:
			case <-h.done:
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
