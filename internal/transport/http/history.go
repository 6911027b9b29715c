package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-classic/internal/domain"
	"github.com/iamasit07/connect4-classic/internal/service/history"
)

type HistoryHandler struct {
	History *history.Service
}

func NewHistoryHandler(svc *history.Service) *HistoryHandler {
	return &HistoryHandler{History: svc}
}

type submitGameRequest struct {
	Winner string     `json:"winner" binding:"required"`
	Moves  *int       `json:"moves" binding:"required"`
	Date   *time.Time `json:"date"`
}

// ListGames returns every saved game, most recent first
func (h *HistoryHandler) ListGames(c *gin.Context) {
	games, err := h.History.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *HistoryHandler) GetGame(c *gin.Context) {
	game, err := h.History.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// SubmitGame stores a finished game reported by a client
func (h *HistoryHandler) SubmitGame(c *gin.Context) {
	var req submitGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	rec := domain.GameRecord{Winner: req.Winner, Moves: *req.Moves}
	if req.Date != nil {
		rec.Date = *req.Date
	}

	saved, err := h.History.Submit(c.Request.Context(), rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}
