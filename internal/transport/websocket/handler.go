package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
)

const maxMessageSize = 512

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager *ConnectionManager
	GameService *game.Service
	Upgrader    websocket.Upgrader
}

type stateMessage struct {
	Type string    `json:"type"`
	Game game.View `json:"game"`
}

// NewHandler creates a new WebSocket handler with dependencies
func NewHandler(cm *ConnectionManager, gs *game.Service, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager: cm,
		GameService: gs,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// originChecker accepts same-host pages, listed origins and clients that
// send no Origin header at all.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == origin {
				return true
			}
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if u.Host != r.Host {
			log.Printf("[WS] Rejected origin %s", origin)
			return false
		}
		return true
	}
}

// HandleWebSocket upgrades GET /ws/games/:id and streams that game's events.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	gameID := c.Param("id")
	session, err := h.GameService.Get(gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	// registered under the session lock so the state goes out before any
	// event that follows it
	var sub *subscriber
	session.Watch(func(view game.View) {
		sub = h.ConnManager.AddConnection(gameID, conn)
		h.ConnManager.SendMessage(sub, stateMessage{Type: "state", Game: view})
	})
	go h.ConnManager.writePump(sub)

	log.Printf("[WS] Watching game %s (%d connections)", gameID, h.ConnManager.Count(gameID))
	h.readLoop(sub)
}

// readLoop manages the lifecycle of a single WebSocket connection
func (h *Handler) readLoop(sub *subscriber) {
	defer func() {
		h.ConnManager.RemoveConnection(sub)
		log.Printf("[WS] Connection closed for game %s", sub.gameID)
	}()

	conn := sub.conn
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Client disconnected unexpectedly: %v", err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.ConnManager.SendMessage(sub, domain.ErrorMessage{Type: domain.EventError, Message: "invalid message"})
			continue
		}
		h.processMessage(sub, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(sub *subscriber, msg domain.ClientMessage) {
	switch msg.Type {
	case "make_move":
		// the outcome reaches every watcher through the session notifier
		if _, _, err := h.GameService.Move(sub.gameID, msg.Column); err != nil {
			h.ConnManager.SendMessage(sub, domain.ErrorMessage{Type: domain.EventError, Message: err.Error()})
		}

	case "sync":
		session, err := h.GameService.Get(sub.gameID)
		if err != nil {
			h.ConnManager.SendMessage(sub, domain.ErrorMessage{Type: domain.EventError, Message: err.Error()})
			return
		}
		h.ConnManager.SendMessage(sub, stateMessage{Type: "state", Game: session.Snapshot()})

	default:
		h.ConnManager.SendMessage(sub, domain.ErrorMessage{Type: domain.EventError, Message: "unknown message type " + msg.Type})
	}
}
