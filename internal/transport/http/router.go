package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-classic/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-classic/pkg/auth"
)

type RouterConfig struct {
	AllowedOrigins []string
	Signer         *auth.Signer
	History        *HistoryHandler
	Matches        *MatchHandler
	Watch          *WatchHandler
	WebSocket      gin.HandlerFunc
}

// NewRouter registers every route on a fresh gin engine
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Game history
	router.GET("/api/games", cfg.History.ListGames)
	router.POST("/api/games", cfg.History.SubmitGame)
	router.GET("/api/games/:id", cfg.History.GetGame)

	// Matches
	router.POST("/api/matches", cfg.Matches.CreateMatch)
	router.GET("/api/matches/:id", cfg.Matches.GetMatch)

	protected := router.Group("/api/matches/:id")
	protected.Use(middleware.MatchAuthMiddleware(cfg.Signer))
	{
		protected.POST("/moves", cfg.Matches.MakeMove)
		protected.POST("/reset", cfg.Matches.ResetMatch)
		protected.POST("/save", cfg.Matches.SaveMatch)
		protected.DELETE("", cfg.Matches.EndMatch)
	}

	// Watch / Spectator Routes
	router.GET("/api/watch", cfg.Watch.GetLiveGames)

	// WebSocket Route (auth handled inside the WS handler itself)
	if cfg.WebSocket != nil {
		router.GET("/ws/matches/:id", cfg.WebSocket)
	}

	return router
}
