package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-classic/internal/domain"
	"github.com/iamasit07/connect4-classic/internal/service/game"
	"github.com/iamasit07/connect4-classic/internal/service/history"
)

// respondError maps service errors onto status codes. Rule violations are
// 409 and leave the match playable.
func respondError(c *gin.Context, err error) {
	var sinkErr *history.SinkError
	var domainErr domain.Error

	switch {
	case errors.As(err, &sinkErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to save game"})
	case errors.Is(err, game.ErrMatchNotFound), errors.Is(err, history.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRecord):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &domainErr),
		errors.Is(err, game.ErrAlreadySaved),
		errors.Is(err, game.ErrSaveInProgress),
		errors.Is(err, game.ErrNotYourTurn):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrNoHistoryService):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
