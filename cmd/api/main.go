package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/broker/redis"
	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/internal/service/cleanup"
	"github.com/iamasit07/connect-four/internal/service/game"
	transportHttp "github.com/iamasit07/connect-four/internal/transport/http"
	"github.com/iamasit07/connect-four/internal/transport/http/middleware"
	"github.com/iamasit07/connect-four/internal/transport/websocket"
	"github.com/iamasit07/connect-four/web"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Computer player
	picker, err := bot.NewPicker(cfg.ComputerPolicy, nil)
	if err != nil {
		log.Fatalf("Invalid COMPUTER_POLICY: %v", err)
	}

	// 2. Event fan-out: browsers always, Redis when configured
	connManager := websocket.NewConnectionManager()
	notifiers := game.Notifiers{connManager}

	if cfg.RedisURL != "" {
		client, err := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			log.Printf("Redis unavailable, continuing without it: %v", err)
		} else {
			publisher := redis.NewPublisher(client)
			defer publisher.Close()
			notifiers = append(notifiers, publisher)
		}
	} else {
		log.Println("[REDIS] REDIS_URL not set, event mirroring disabled")
	}

	// 3. Game services
	sessionManager := game.NewSessionManager(notifiers, picker, cfg.ComputerMoveDelay)
	gameService := game.NewService(sessionManager, cfg.BoardWidth, cfg.BoardHeight, cfg.MaxPlayersPerGame)

	// 4. Handlers
	gamesHandler := transportHttp.NewGamesHandler(gameService)
	wsHandler := websocket.NewHandler(connManager, gameService, cfg.AllowedOrigins)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	gamesHandler.Register(router)
	router.GET("/ws/games/:id", wsHandler.HandleWebSocket)
	web.Register(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("Server is shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.CleanupInterval, cfg.FinishedGameTTL, cfg.StaleGameTTL)
	g.Go(func() error {
		return cleanupWorker.Start(ctx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server exited gracefully")
}
