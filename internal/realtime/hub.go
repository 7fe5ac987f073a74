// Package realtime provides the best-effort notification fan-out. Connected
// dashboard clients receive mutation events over a WebSocket; events are
// at-most-once, unordered across clients, and never replayed, so dashboards
// poll the REST API as their durability backstop.
package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"
)

// Event is a server-to-client notification of a mutation.
type Event struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ClientMessage represents an inbound message from a WebSocket client.
// Clients join rooms named after their role (e.g. "doctor", "government").
type ClientMessage struct {
	Action string `json:"action"`
	Room   string `json:"room"`
}

// Broadcaster is the interface mutation handlers use to emit events, so
// tests can substitute a fake for the hub.
type Broadcaster interface {
	// Emit sends an event to every connected client.
	Emit(event string, data interface{})
	// EmitTo sends an event to clients that joined the named room.
	EmitTo(room, event string, data interface{})
}

// Client represents a single WebSocket connection.
type Client struct {
	ID    string
	Rooms []string
	Send  chan []byte
}

// Hub is the central connection manager that tracks clients and their room
// memberships. All operations are thread-safe via sync.RWMutex.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{} // room -> set of clients
	all   map[*Client]struct{}            // all connected clients
}

// NewHub creates a new Hub ready to manage WebSocket clients.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		all:   make(map[*Client]struct{}),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.all[client] = struct{}{}

	for _, room := range client.Rooms {
		if h.rooms[room] == nil {
			h.rooms[room] = make(map[*Client]struct{})
		}
		h.rooms[room][client] = struct{}{}
	}
}

// Unregister removes a client from the hub and all rooms, and closes the
// client's Send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}

	for _, room := range client.Rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}

	delete(h.all, client)
	close(client.Send)
}

// Join adds an already-registered client to a room.
func (h *Hub) Join(client *Client, room string) {
	if room == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][client] = struct{}{}

	for _, r := range client.Rooms {
		if r == room {
			return
		}
	}
	client.Rooms = append(client.Rooms, room)
}

// Leave removes a client from a room.
func (h *Hub) Leave(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}

	remaining := make([]string, 0, len(client.Rooms))
	for _, r := range client.Rooms {
		if r != room {
			remaining = append(remaining, r)
		}
	}
	client.Rooms = remaining
}

// ProcessMessage handles an inbound ClientMessage, dispatching to Join or
// Leave as appropriate. Unknown actions are ignored.
func (h *Hub) ProcessMessage(client *Client, msg ClientMessage) {
	switch msg.Action {
	case "joinRoom":
		h.Join(client, msg.Room)
	case "leaveRoom":
		h.Leave(client, msg.Room)
	}
}

// Emit sends an event to every connected client regardless of room.
func (h *Hub) Emit(event string, data interface{}) {
	payload, ok := marshalEvent(event, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.all {
		select {
		case client.Send <- payload:
		default:
			// Client buffer full; skip to avoid blocking.
		}
	}
}

// EmitTo sends an event to all clients that joined the given room.
func (h *Hub) EmitTo(room, event string, data interface{}) {
	payload, ok := marshalEvent(event, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	members, exists := h.rooms[room]
	if !exists {
		return
	}

	for client := range members {
		select {
		case client.Send <- payload:
		default:
			// Client buffer full; skip to avoid blocking.
		}
	}
}

func marshalEvent(event string, data interface{}) ([]byte, bool) {
	payload, err := json.Marshal(Event{Event: event, Data: data, Timestamp: time.Now()})
	if err != nil {
		log.Printf("realtime: failed to marshal %s event: %v", event, err)
		return nil, false
	}
	return payload, true
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

// RoomCount returns the number of clients that joined a specific room.
func (h *Hub) RoomCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

var upgrader = gorillawebsocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced on the REST surface; the socket carries no commands.
	},
}

// HandleConnect upgrades an HTTP connection to WebSocket, registers the
// client with the hub, and starts read/write pumps.
func (h *Hub) HandleConnect(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("realtime: upgrade failed: %v", err)
		return
	}

	client := &Client{
		ID:   uuid.New().String(),
		Send: make(chan []byte, 256),
	}

	h.Register(client)

	go h.writePump(client, ws)
	go h.readPump(client, ws)
}

// readPump reads messages from the WebSocket connection and processes them.
func (h *Hub) readPump(client *Client, ws *gorillawebsocket.Conn) {
	defer func() {
		h.Unregister(client)
		ws.Close()
	}()

	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue // Ignore malformed messages.
		}

		h.ProcessMessage(client, msg)
	}
}

// writePump writes messages from the Send channel to the WebSocket connection.
func (h *Hub) writePump(client *Client, ws *gorillawebsocket.Conn) {
	defer ws.Close()

	for message := range client.Send {
		if err := ws.WriteMessage(gorillawebsocket.TextMessage, message); err != nil {
			break
		}
	}
}
