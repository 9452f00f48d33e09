package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/subosito/gotenv"

	"github.com/satriahrh/mistral-web/adapters/history"
	httpadapter "github.com/satriahrh/mistral-web/adapters/http"
	"github.com/satriahrh/mistral-web/adapters/llm"
	"github.com/satriahrh/mistral-web/adapters/message_broker"
	"github.com/satriahrh/mistral-web/adapters/websocket"
	"github.com/satriahrh/mistral-web/usecase"
	"github.com/satriahrh/mistral-web/utils/config"
)

func main() {
	gotenv.Load()

	// Contradictory token limits abort before serving.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	log.Printf("Token limits - Context Window: %d, System Reserve: %d, Response Reserve: %d, Min Tokens: %d, Max Tokens: %d",
		cfg.MaxContextWindow, cfg.SystemMessageReserve, cfg.ResponseReserve, cfg.MinTokens, cfg.MaxTokens)

	provider, err := llm.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("initializing llm provider: %v", err)
	}
	log.Printf("Using %s generation server at: %s", cfg.Provider, cfg.ServerURL)

	broker := message_broker.NewChannelMessageBroker()
	store := history.New()
	svc := usecase.NewChatService(cfg, provider, store, broker)

	wsServer := websocket.NewServer(svc, broker, cfg.MaxTokens)
	go wsServer.RunWebsocketHub()

	renderer, err := httpadapter.NewTemplateRenderer("templates/*.html")
	if err != nil {
		log.Fatalf("parsing templates: %v", err)
	}

	handler := httpadapter.NewChatHandler(cfg, svc)

	e := echo.New()
	e.Renderer = renderer

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.BodyLimit("1MB"))
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20))) // 20 requests per minute
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			"X-API-Secret",
		},
	}))

	e.GET("/", handler.Index)
	e.GET("/health", handler.Health)
	e.Static("/static", "static")

	api := e.Group("/api")
	ws := e.Group("/ws")
	if cfg.AuthSecret != "" {
		// Opt-in bearer auth; the default deployment keeps the API open.
		e.POST("/api/auth/token", handler.GenerateJWT)
		api.Use(handler.JWTMiddleware)
		ws.Use(handler.JWTMiddleware)
	}
	api.POST("/chat", handler.Chat)
	ws.GET("/chat", wsServer.Handler)

	log.Printf("Starting server on %s", cfg.ListenAddr)
	log.Println("Available endpoints:")
	log.Println("  GET  /          - Chat page")
	log.Println("  GET  /health    - Health check")
	log.Println("  POST /api/chat  - Chat API")
	log.Println("  GET  /ws/chat   - Chat over WebSocket")
	log.Fatal(e.Start(cfg.ListenAddr))
}
