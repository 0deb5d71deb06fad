package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ywatanabe-dev/line-support-relay/internal/config"
	"github.com/ywatanabe-dev/line-support-relay/internal/handlers"
	"github.com/ywatanabe-dev/line-support-relay/internal/middleware"
)

// SetupRoutes configures all HTTP routes.
func SetupRoutes(app *fiber.App, cfg *config.Config, line *handlers.LineHandler, slack *handlers.SlackHandler, mock *handlers.MockHandler) {

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "LINE Support Relay",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"health":             "/health",
				"line_webhook":       "/webhook/line",
				"slack_interactions": "/slack/interactions",
				"mock_mcp":           "/mock-mcp",
			},
		})
	})

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ========== LINE WEBHOOK ==========
	webhooks := app.Group("/webhook")
	if cfg.IsDevelopment() {
		// Development: skip validation for tunnelled traffic
		webhooks.Post("/line", line.HandleWebhook)
	} else {
		webhooks.Post("/line", middleware.ValidateLineSignature(cfg.Line.ChannelSecret), line.HandleWebhook)
	}

	// ========== SLACK INTERACTIONS ==========
	slackGroup := app.Group("/slack")
	if cfg.IsDevelopment() {
		slackGroup.Post("/interactions", slack.HandleInteractions)
	} else {
		slackGroup.Post("/interactions", middleware.ValidateSlackSignature(cfg.Slack.SigningSecret), slack.HandleInteractions)
	}

	// ========== MOCK MCP (demo data) ==========
	mockGroup := app.Group("/mock-mcp")
	mockGroup.Get("/customer/:userId", mock.GetCustomer)
	mockGroup.Get("/orders/:userId", mock.GetOrders)
	mockGroup.Get("/health", mock.Health)
}
