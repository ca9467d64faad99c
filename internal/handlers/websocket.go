package handlers

import (
	"net/http"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/gorilla/websocket"

	"github.com/AulaWare/aula-backend/config"
	models "github.com/AulaWare/aula-backend/pkg/db"
	"github.com/AulaWare/aula-backend/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// WebsocketHandler keeps one connection set per room and fans messages
// out to the subscribers of that room
type WebsocketHandler struct {
	config *config.Config

	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]bool
}

// NewWebsocketHandler creates a new WebsocketHandler
func NewWebsocketHandler(cfg *config.Config) *WebsocketHandler {
	return &WebsocketHandler{
		config: cfg,
		rooms:  make(map[string]map[*websocket.Conn]bool),
	}
}

// StreamRoom handles GET /api/chat/ws?room_id= requests. The connection
// is upgraded to a websocket and receives every message sent to the room
// until the client disconnects.
func (h *WebsocketHandler) StreamRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		gecho.BadRequest(w).WithMessage("Missing 'room_id' query parameter").Send()
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Err("Failed to upgrade connection:", err)
		return
	}

	h.register(roomID, conn)
	defer h.unregister(roomID, conn)

	// Incoming frames are discarded; the stream is read-only for clients.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// BroadcastMessage sends a stored message to every connection subscribed
// to its room. Write failures drop the connection.
func (h *WebsocketHandler) BroadcastMessage(roomID string, message models.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.rooms[roomID] {
		if err := conn.WriteJSON(message); err != nil {
			logger.Err("Failed to write message to websocket:", err)
			conn.Close()
			delete(h.rooms[roomID], conn)
		}
	}
}

func (h *WebsocketHandler) register(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[roomID][conn] = true
}

func (h *WebsocketHandler) unregister(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[roomID], conn)
	if len(h.rooms[roomID]) == 0 {
		delete(h.rooms, roomID)
	}
	conn.Close()
}
