package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"whatsapp-bot/config"
	"whatsapp-bot/handlers"
	"whatsapp-bot/services"
	"whatsapp-bot/webhooks"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}

	// Initialize structured logger
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(logHandler))

	// Load configuration and static tables
	cfg := config.LoadConfig()
	catalog := config.LoadCatalog(cfg.CatalogFile)

	// Initialize collaborators
	var orders services.OrderLookup
	if cfg.ShopifyStoreURL != "" && cfg.ShopifyAPIToken != "" {
		orders = services.NewShopifyClient(cfg.ShopifyStoreURL, cfg.ShopifyAPIToken, cfg.RequestTimeout)
	} else {
		slog.Warn("Shopify not configured, order lookups will apologize")
	}

	var ai services.ReplyGenerator
	gemini, err := services.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		slog.Error("Gemini client not available, AI replies will apologize", "error", err)
	} else {
		ai = gemini
	}

	// Wire the resolution pipeline
	sessions := services.NewSessionStore()
	unanswered := services.NewUnansweredLog(500, 30)
	router := services.NewRouter(
		catalog,
		services.NewQuiz(config.DefaultQuizScript()),
		sessions,
		orders,
		ai,
		unanswered,
		config.DefaultReplyTexts(),
		config.GeminiSystemInstruction,
	)

	sender := services.NewWhatsAppSender(cfg.AccessToken, cfg.PhoneNumberID)
	processor := handlers.NewMessageProcessor(router, sender, cfg.RequestTimeout)

	// Start session cleanup
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	services.StartSessionCleanup(cleanupCtx, sessions)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("Request error", "error", err, "status", code)
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path}\n",
	}))

	// Register webhook routes
	webhooks.RegisterRoutes(app, cfg, processor)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "whatsapp-bot",
		})
	})

	// Start server
	slog.Info("Server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}
