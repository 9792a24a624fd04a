package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 64
)

// subscriber is one socket watching one game. Everything written to the
// socket goes through send so events keep their order.
type subscriber struct {
	gameID string
	conn   *websocket.Conn
	send   chan []byte
	once   sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() {
		close(s.send)
	})
}

// ConnectionManager tracks the sockets watching each game.
type ConnectionManager struct {
	games map[string]map[*subscriber]struct{}
	mu    sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		games: make(map[string]map[*subscriber]struct{}),
	}
}

func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) *subscriber {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	sub := &subscriber{gameID: gameID, conn: conn, send: make(chan []byte, sendBuffer)}
	if cm.games[gameID] == nil {
		cm.games[gameID] = make(map[*subscriber]struct{})
	}
	cm.games[gameID][sub] = struct{}{}
	return sub
}

func (cm *ConnectionManager) RemoveConnection(sub *subscriber) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.removeLocked(sub)
}

func (cm *ConnectionManager) removeLocked(sub *subscriber) {
	subs, exists := cm.games[sub.gameID]
	if !exists {
		return
	}
	if _, ok := subs[sub]; ok {
		delete(subs, sub)
		sub.close()
	}
	if len(subs) == 0 {
		delete(cm.games, sub.gameID)
	}
}

func (cm *ConnectionManager) Count(gameID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.games[gameID])
}

// SendMessage queues one JSON message for a single socket.
func (cm *ConnectionManager) SendMessage(sub *subscriber, message any) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Failed to encode message: %v", err)
		return
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.enqueueLocked(sub, data)
}

// Publish broadcasts a game event to everyone watching that game.
func (cm *ConnectionManager) Publish(evt domain.GameEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("[WS] Failed to encode %s event: %v", evt.Type, err)
		return
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	for sub := range cm.games[evt.GameID] {
		cm.enqueueLocked(sub, data)
	}
}

func (cm *ConnectionManager) enqueueLocked(sub *subscriber, data []byte) {
	if _, ok := cm.games[sub.gameID][sub]; !ok {
		return
	}
	select {
	case sub.send <- data:
	default:
		// a reader this far behind is dropped
		log.Printf("[WS] Send buffer full for game %s, dropping connection", sub.gameID)
		cm.removeLocked(sub)
	}
}

// writePump owns all writes to the socket.
func (cm *ConnectionManager) writePump(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()

	for {
		select {
		case data, ok := <-sub.send:
			sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
