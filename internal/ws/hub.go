package ws

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Conn is the part of a websocket connection the hub writes to
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one authenticated socket
type Client struct {
	Conn   Conn
	UserID string
}

type targeted struct {
	userIDs []string
	message []byte
}

type Hub struct {
	clients    map[Conn]string // conn -> user id
	Register   chan *Client
	Unregister chan Conn
	broadcast  chan []byte
	direct     chan targeted
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[Conn]string),
		Register:   make(chan *Client),
		Unregister: make(chan Conn),
		broadcast:  make(chan []byte, 64),
		direct:     make(chan targeted, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mutex.Lock()
			h.clients[client.Conn] = client.UserID
			h.mutex.Unlock()
			log.Printf("WS client connected (user %s)", client.UserID)

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.writeWhere(message, func(string) bool { return true })

		case t := <-h.direct:
			wanted := make(map[string]bool, len(t.userIDs))
			for _, id := range t.userIDs {
				wanted[id] = true
			}
			h.writeWhere(t.message, func(userID string) bool { return wanted[userID] })
		}
	}
}

// writeWhere sends message to every client whose user matches; failed connections are dropped.
func (h *Hub) writeWhere(message []byte, match func(userID string) bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn, userID := range h.clients {
		if !match(userID) {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Broadcast queues message for every connected client.
func (h *Hub) Broadcast(message []byte) {
	h.broadcast <- message
}

// SendToUsers queues message for the connections of the given users only.
func (h *Hub) SendToUsers(userIDs []string, message []byte) {
	if len(userIDs) == 0 {
		return
	}
	h.direct <- targeted{userIDs: userIDs, message: message}
}

// ConnectedUsers returns the number of distinct users with an open socket
func (h *Hub) ConnectedUsers() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	seen := make(map[string]struct{})
	for _, userID := range h.clients {
		seen[userID] = struct{}{}
	}
	return len(seen)
}
