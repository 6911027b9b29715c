package websocket

import "github.com/iamasit07/connect4-classic/internal/service/game"

// ClientMessage is what a browser sends over the socket
type ClientMessage struct {
	Type   string `json:"type"` // "init", "make_move", "reset"
	Token  string `json:"token,omitempty"`
	Column *int   `json:"column,omitempty"`
}

// ServerMessage is pushed to every socket watching a match
type ServerMessage struct {
	Type    string          `json:"type"` // "state", "authorized", "error"
	Match   *game.MatchView `json:"match,omitempty"`
	Message string          `json:"message,omitempty"`
}
