package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-classic/internal/service/bot"
	"github.com/iamasit07/connect4-classic/internal/service/game"
	"github.com/iamasit07/connect4-classic/pkg/auth"
	"github.com/iamasit07/connect4-classic/pkg/httputil"
)

type MatchHandler struct {
	SessionManager *game.SessionManager
	Signer         *auth.Signer
	TokenTTL       time.Duration
	IsProduction   bool
}

func NewMatchHandler(sm *game.SessionManager, signer *auth.Signer, tokenTTL time.Duration, isProduction bool) *MatchHandler {
	return &MatchHandler{
		SessionManager: sm,
		Signer:         signer,
		TokenTTL:       tokenTTL,
		IsProduction:   isProduction,
	}
}

type createMatchRequest struct {
	BotDifficulty string `json:"botDifficulty"`
}

type createMatchResponse struct {
	Match game.MatchView `json:"match"`
	Token string         `json:"token"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

// CreateMatch starts a hot-seat match, or a bot match when botDifficulty is set.
// The returned token is needed to play; it is also set as a cookie.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var difficulty bot.Difficulty
	if req.BotDifficulty != "" {
		d, err := bot.ParseDifficulty(req.BotDifficulty)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		difficulty = d
	}

	match, err := h.SessionManager.CreateMatch(difficulty)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.Signer.GenerateMatchToken(match.ID)
	if err != nil {
		_ = h.SessionManager.RemoveMatch(match.ID)
		respondError(c, err)
		return
	}

	httputil.SetMatchCookie(c.Writer, match.ID, token, h.TokenTTL, h.IsProduction)
	c.JSON(http.StatusCreated, createMatchResponse{Match: match.View(), Token: token})
}

func (h *MatchHandler) GetMatch(c *gin.Context) {
	match, err := h.SessionManager.GetMatch(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, match.View())
}

func (h *MatchHandler) MakeMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	match, err := h.SessionManager.GetMatch(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := match.Move(*req.Column)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *MatchHandler) ResetMatch(c *gin.Context) {
	match, err := h.SessionManager.GetMatch(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := match.Reset()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SaveMatch submits the finished game to the history, once
func (h *MatchHandler) SaveMatch(c *gin.Context) {
	match, err := h.SessionManager.GetMatch(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	rec, err := match.Save(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// EndMatch drops the match and clears its cookie
func (h *MatchHandler) EndMatch(c *gin.Context) {
	matchID := c.Param("id")
	if err := h.SessionManager.RemoveMatch(matchID); err != nil {
		respondError(c, err)
		return
	}
	httputil.ClearMatchCookie(c.Writer, matchID)
	c.Status(http.StatusNoContent)
}
