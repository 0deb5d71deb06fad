package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/ywatanabe-dev/line-support-relay/internal/config"
	"github.com/ywatanabe-dev/line-support-relay/internal/handlers"
	"github.com/ywatanabe-dev/line-support-relay/internal/logger"
	"github.com/ywatanabe-dev/line-support-relay/internal/routes"
	"github.com/ywatanabe-dev/line-support-relay/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(cfg.Server.LogLevel, cfg.Server.LogPretty)

	// Wire up services: directory lookup, AI suggestions, Slack
	// notifications, LINE replies, and the inquiry orchestrator on top.
	customerService := services.NewCustomerService(cfg.Server.MockServerURL)
	aiService := services.NewOpenAIService(cfg.OpenAI)
	slackService := services.NewSlackService(cfg.Slack, aiService)
	lineService := services.NewLineService(cfg.Line)
	supportService := services.NewCustomerSupportService(customerService, slackService, lineService)

	lineHandler := handlers.NewLineHandler(supportService)
	slackHandler := handlers.NewSlackHandler(supportService, slackService)
	mockHandler := handlers.NewMockHandler()

	app := fiber.New(fiber.Config{
		AppName: "LINE Support Relay v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	routes.SetupRoutes(app, cfg, lineHandler, slackHandler, mockHandler)

	// Handle graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		log.Info().Msg("shutting down server")
		_ = app.Shutdown()
	}()

	log.Info().
		Str("port", cfg.Server.Port).
		Str("environment", cfg.Server.Environment).
		Msg("line support relay starting")

	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
