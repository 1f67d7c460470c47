package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/linesmerrill/police-records-api/registration"
)

// EventArrestRegistered is broadcast once an arrest registration committed
const EventArrestRegistered = "arrest_registered"

const writeWait = 5 * time.Second

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is the message written to every connected client
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// EventHub keeps the connected websocket clients
type EventHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]*sync.Mutex
}

// NewEventHub returns a hub with no clients
func NewEventHub() *EventHub {
	return &EventHub{clients: map[*websocket.Conn]*sync.Mutex{}}
}

// EventsHandler upgrades the connection and keeps it registered until it closes
func (h *EventHub) EventsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	n := len(h.clients)
	h.mu.Unlock()
	zap.S().Debugw("events client connected", "remote", conn.RemoteAddr().String(), "clients", n)

	// clients never send anything meaningful; reading surfaces the close
	for {
		if _, _, err := conn.NextReader(); err != nil {
			h.drop(conn)
			return
		}
	}
}

// Clients returns the number of connected clients
func (h *EventHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast writes the event to every client, dropping those that fail
func (h *EventHub) Broadcast(event string, data interface{}) {
	h.mu.Lock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for c, l := range h.clients {
		conns[c] = l
	}
	h.mu.Unlock()

	msg := Event{Event: event, Data: data}
	for conn, writeMu := range conns {
		writeMu.Lock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := conn.WriteJSON(msg)
		writeMu.Unlock()
		if err != nil {
			zap.S().Warnw("dropping events client", "error", err)
			h.drop(conn)
		}
	}
}

// ArrestRegistered is the registration hook that announces a committed arrest
func (h *EventHub) ArrestRegistered(res registration.Result) {
	h.Broadcast(EventArrestRegistered, res)
}

// Close disconnects every client
func (h *EventHub) Close() {
	h.mu.Lock()
	conns := h.clients
	h.clients = map[*websocket.Conn]*sync.Mutex{}
	h.mu.Unlock()
	for conn := range conns {
		_ = conn.Close()
	}
}

func (h *EventHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		_ = conn.Close()
	}
}
