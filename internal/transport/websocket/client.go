package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-classic/internal/service/game"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 16
)

// Client is one socket attached to a match. Only clients that presented a
// valid match token may change the match.
type Client struct {
	conn    *websocket.Conn
	matchID string
	send    chan ServerMessage

	mu         sync.Mutex
	closed     bool
	controller bool
}

// Queue hands message to the writer goroutine. A client whose buffer is full
// is too slow to keep up and gets dropped.
func (c *Client) Queue(message ServerMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) setController() {
	c.mu.Lock()
	c.controller = true
	c.mu.Unlock()
}

func (c *Client) isController() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

// writePump is the only goroutine writing to the socket
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				log.Printf("[WS] Write to match %s failed: %v", c.matchID, err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ConnectionManager tracks the sockets of every match thread-safely
type ConnectionManager struct {
	matches map[string]map[*Client]struct{} // matchID → clients
	mu      sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		matches: make(map[string]map[*Client]struct{}),
	}
}

// AddClient registers conn for matchID and starts its writer
func (cm *ConnectionManager) AddClient(matchID string, conn *websocket.Conn) *Client {
	client := &Client{
		conn:    conn,
		matchID: matchID,
		send:    make(chan ServerMessage, sendBuffer),
	}

	cm.mu.Lock()
	clients, exists := cm.matches[matchID]
	if !exists {
		clients = make(map[*Client]struct{})
		cm.matches[matchID] = clients
	}
	clients[client] = struct{}{}
	cm.mu.Unlock()

	go client.writePump()
	return client
}

// RemoveClient unregisters the client and stops its writer, which closes the socket
func (cm *ConnectionManager) RemoveClient(client *Client) {
	cm.mu.Lock()
	if clients, exists := cm.matches[client.matchID]; exists {
		delete(clients, client)
		if len(clients) == 0 {
			delete(cm.matches, client.matchID)
		}
	}
	cm.mu.Unlock()

	client.close()
}

// ClientCount returns how many sockets watch matchID
func (cm *ConnectionManager) ClientCount(matchID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.matches[matchID])
}

// BroadcastMatch sends the new state to everyone watching the match
func (cm *ConnectionManager) BroadcastMatch(view game.MatchView) {
	cm.mu.RLock()
	clients := make([]*Client, 0, len(cm.matches[view.MatchID]))
	for client := range cm.matches[view.MatchID] {
		clients = append(clients, client)
	}
	cm.mu.RUnlock()

	message := ServerMessage{Type: "state", Match: &view}
	for _, client := range clients {
		if !client.Queue(message) {
			log.Printf("[WS] Dropping slow client on match %s", view.MatchID)
			cm.RemoveClient(client)
		}
	}
}

// CloseMatch tells every socket on a removed match that it ended, then
// disconnects them
func (cm *ConnectionManager) CloseMatch(matchID string) {
	cm.mu.Lock()
	clients := cm.matches[matchID]
	delete(cm.matches, matchID)
	cm.mu.Unlock()

	for client := range clients {
		client.Queue(ServerMessage{Type: "match_ended", Message: "match not found"})
		client.close()
	}
	if len(clients) > 0 {
		log.Printf("[WS] Closed %d sockets of ended match %s", len(clients), matchID)
	}
}
