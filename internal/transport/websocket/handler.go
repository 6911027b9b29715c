package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-classic/internal/service/game"
	"github.com/iamasit07/connect4-classic/pkg/auth"
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Signer         *auth.Signer
	Upgrader       websocket.Upgrader
}

// NewHandler creates a WebSocket handler. Browsers must come from one of
// allowedOrigins; requests without an Origin header are accepted.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, signer *auth.Signer, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Signer:         signer,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades GET /ws/matches/:id and streams the match
func (h *Handler) HandleWebSocket(c *gin.Context) {
	match, err := h.SessionManager.GetMatch(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn, match)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn, match *game.Match) {
	client := h.ConnManager.AddClient(match.ID, conn)
	if match.Ended() {
		// removed between the lookup and the upgrade
		h.ConnManager.RemoveClient(client)
		return
	}
	log.Printf("[WS] Client joined match %s (%d connected)", match.ID, h.ConnManager.ClientCount(match.ID))

	defer func() {
		h.ConnManager.RemoveClient(client)
		log.Printf("[WS] Client left match %s", match.ID)
	}()

	// Set read deadline to detect stale connections
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	view := match.View()
	client.Queue(ServerMessage{Type: "state", Match: &view})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Client disconnected unexpectedly: %v", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			client.Queue(ServerMessage{Type: "error", Message: "invalid message format"})
			continue
		}

		h.processMessage(client, match, msg)
	}
}

func (h *Handler) processMessage(client *Client, match *game.Match, msg ClientMessage) {
	switch msg.Type {
	case "init":
		if err := h.Signer.Authorize(msg.Token, match.ID); err != nil {
			log.Printf("[WS] Invalid token for match %s: %v", match.ID, err)
			client.Queue(ServerMessage{Type: "error", Message: "invalid token"})
			return
		}
		client.setController()
		client.Queue(ServerMessage{Type: "authorized"})

	case "make_move":
		if !h.requireController(client) {
			return
		}
		if msg.Column == nil {
			client.Queue(ServerMessage{Type: "error", Message: "column is required"})
			return
		}
		// the new state reaches this client through the broadcast
		if _, err := match.Move(*msg.Column); err != nil {
			client.Queue(ServerMessage{Type: "error", Message: err.Error()})
		}

	case "reset":
		if !h.requireController(client) {
			return
		}
		if _, err := match.Reset(); err != nil {
			client.Queue(ServerMessage{Type: "error", Message: err.Error()})
		}

	default:
		client.Queue(ServerMessage{Type: "error", Message: "unknown message type " + msg.Type})
	}
}

func (h *Handler) requireController(client *Client) bool {
	if client.isController() {
		return true
	}
	client.Queue(ServerMessage{Type: "error", Message: "send init with the match token first"})
	return false
}
