package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-classic/internal/config"
	"github.com/iamasit07/connect4-classic/internal/repository/memory"
	"github.com/iamasit07/connect4-classic/internal/repository/mongo"
	"github.com/iamasit07/connect4-classic/internal/repository/postgres"
	"github.com/iamasit07/connect4-classic/internal/repository/redis"
	"github.com/iamasit07/connect4-classic/internal/repository/sqlite"
	"github.com/iamasit07/connect4-classic/internal/service/cleanup"
	"github.com/iamasit07/connect4-classic/internal/service/game"
	"github.com/iamasit07/connect4-classic/internal/service/history"
	transportHttp "github.com/iamasit07/connect4-classic/internal/transport/http"
	"github.com/iamasit07/connect4-classic/internal/transport/websocket"
	"github.com/iamasit07/connect4-classic/pkg/auth"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 1. History store (Persistence Layer)
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	store, closeStore, err := openHistoryStore(startCtx, cfg)
	cancelStart()
	if err != nil {
		log.Fatalf("Failed to open %s history store: %v", cfg.HistoryBackend, err)
	}
	defer closeStore()
	log.Printf("[HISTORY] Using %s backend", cfg.HistoryBackend)

	// 2. Optional Redis cache in front of the history list
	var cache history.CacheRepository
	redisClient, enabled := redis.InitRedis(context.Background(), cfg.RedisURL, cfg.RedisPassword)
	if enabled {
		cache = redis.NewRedisCache(redisClient)
		defer redisClient.Close()
	}

	// 3. Services (Business Logic Layer)
	historyService := history.NewService(store, cache, cfg.HistoryCacheTTL)
	sessionManager := game.NewSessionManager(historyService, game.Options{AutoSave: cfg.AutoSaveGames})
	connManager := websocket.NewConnectionManager()
	sessionManager.SetBroadcaster(connManager)
	signer := auth.NewSigner(cfg.JWTSecret, cfg.MatchTokenTTL)

	// 4. Background workers
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.CleanupInterval, cfg.FinishedMatchTTL, cfg.StaleMatchTTL)
	if err := cleanupWorker.Start(); err != nil {
		log.Fatalf("Failed to start cleanup worker: %v", err)
	}

	// 5. HTTP + WebSocket (API Layer)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	wsHandler := websocket.NewHandler(connManager, sessionManager, signer, cfg.AllowedOrigins)
	router := transportHttp.NewRouter(transportHttp.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Signer:         signer,
		History:        transportHttp.NewHistoryHandler(historyService),
		Matches:        transportHttp.NewMatchHandler(sessionManager, signer, cfg.MatchTokenTTL, cfg.IsProduction()),
		Watch:          transportHttp.NewWatchHandler(sessionManager),
		WebSocket:      wsHandler.HandleWebSocket,
	})
	serveFrontend(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if err := cleanupWorker.Stop(); err != nil {
		log.Printf("[CLEANUP] Error stopping worker: %v", err)
	}
	sessionManager.Wait()

	log.Println("Server exited gracefully")
}

// openHistoryStore connects the configured backend. The returned func releases it.
func openHistoryStore(ctx context.Context, cfg *config.Config) (history.Store, func(), error) {
	switch cfg.HistoryBackend {
	case config.BackendMemory:
		return memory.NewHistoryStore(), func() {}, nil

	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				log.Printf("[DB] Error closing sqlite: %v", err)
			}
		}, nil

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.PoolConfig{
			MaxOpenConns:       cfg.DBMaxOpenConns,
			MaxIdleConns:       cfg.DBMaxIdleConns,
			ConnMaxLifetimeMin: cfg.DBConnMaxLifetimeMin,
		})
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewGameRepo(db), func() {
			if err := db.Close(); err != nil {
				log.Printf("[DB] Error closing postgres: %v", err)
			}
		}, nil

	case config.BackendMongo:
		store, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.Close(ctx); err != nil {
				log.Printf("[MONGO] Error disconnecting: %v", err)
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown history backend %q", cfg.HistoryBackend)
}

// serveFrontend serves the built SPA from ./static when it is present
func serveFrontend(router *gin.Engine) {
	if _, err := os.Stat("./static"); err != nil {
		return
	}

	router.Static("/assets", "./static/assets")
	router.GET("/", func(c *gin.Context) {
		c.File("./static/index.html")
	})

	// SPA fallback: serve index.html for all unmatched routes
	router.NoRoute(func(c *gin.Context) {
		path := "./static" + c.Request.URL.Path

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, "/api/") || strings.HasPrefix(c.Request.URL.Path, "/assets/") ||
			strings.HasSuffix(c.Request.URL.Path, ".css") || strings.HasSuffix(c.Request.URL.Path, ".js") {
			c.Status(http.StatusNotFound)
			return
		}

		c.File("./static/index.html")
	})
}
