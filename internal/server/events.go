package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Hub pushes workflow events (suggestion found, analysis ready, image or
// profile completed) to connected SPA clients. It implements core.Notifier.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The REST layer already handles origins via CORS config.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Notify broadcasts an event to every connected client. Dead connections
// are dropped on write failure.
func (h *Hub) Notify(eventType string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg := event{Type: eventType, Payload: payload}
	for conn := range h.conns {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("Dropping websocket client: %v", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *Hub) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	// Clients never send meaningful messages; the read loop only notices
	// disconnects.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.mu.Lock()
				delete(h.conns, conn)
				h.mu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}
