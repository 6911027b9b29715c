package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-classic/internal/service/game"
)

type WatchHandler struct {
	SessionManager *game.SessionManager
}

func NewWatchHandler(sm *game.SessionManager) *WatchHandler {
	return &WatchHandler{SessionManager: sm}
}

// GetLiveGames returns every live match available for spectating
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.SessionManager.ActiveMatches())
}
