package handler

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/homeserve/backend/internal/broker"
	"github.com/homeserve/backend/internal/utils"
)

const (
	writeWait  = 10 * time.Second // Time allowed to write a message to the peer
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10 // 54 seconds
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // add origin check in production
	},
}

type streamClient struct {
	conn        *websocket.Conn
	userID      uint
	connectedAt time.Time
	send        chan broker.Event
}

// StreamHandler pushes a user's notification events over a websocket as they
// are published. One broker subscription feeds all connected clients.
type StreamHandler struct {
	eventBroker broker.EventBroker
	clients     map[*websocket.Conn]*streamClient
	mu          sync.RWMutex
}

func NewStreamHandler(eventBroker broker.EventBroker) *StreamHandler {
	return &StreamHandler{
		eventBroker: eventBroker,
		clients:     make(map[*websocket.Conn]*streamClient),
	}
}

// Run consumes the broker subscription and dispatches events to the clients
// they are addressed to. Call once, in its own goroutine.
func (h *StreamHandler) Run() {
	events, err := h.eventBroker.Subscribe()
	if err != nil {
		log.Printf("Failed to subscribe to notification events: %v", err)
		return
	}

	for event := range events {
		h.mu.RLock()
		for _, client := range h.clients {
			if client.userID != event.UserID {
				continue
			}
			select {
			case client.send <- event:
			default:
				// Slow consumer, drop the event rather than block the dispatcher
			}
		}
		h.mu.RUnlock()
	}
}

// HandleStream upgrades the connection. Requires AuthMiddleware upstream.
func (h *StreamHandler) HandleStream(c *gin.Context) {
	claimsInterface, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "authentication required",
		})
		return
	}

	claims, ok := claimsInterface.(*utils.Claims)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "invalid claims format",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &streamClient{
		conn:        conn,
		userID:      claims.UserID,
		connectedAt: time.Now(),
		send:        make(chan broker.Event, 16),
	}

	h.mu.Lock()
	h.clients[conn] = client
	h.mu.Unlock()

	log.Printf("Stream client connected: user %d (total: %d)", client.userID, len(h.clients))

	go h.writeLoop(client)

	defer h.removeClient(conn)
	h.readLoop(client)
}

// readLoop only watches for close frames and pongs; clients never send data
func (h *StreamHandler) readLoop(client *streamClient) {
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetReadLimit(512)

	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Stream error: %v", err)
			}
			return
		}
	}
}

func (h *StreamHandler) writeLoop(client *streamClient) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-client.send:
			if !ok {
				return
			}

			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteJSON(event); err != nil {
				log.Printf("Failed to push event to user %d: %v", client.userID, err)
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *StreamHandler) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, exists := h.clients[conn]
	if exists {
		delete(h.clients, conn)
		close(client.send)
		conn.Close()

		duration := time.Since(client.connectedAt)
		log.Printf("Stream client disconnected: user %d (session duration: %v, remaining: %d)",
			client.userID, duration.Round(time.Second), len(h.clients))
	}
}
