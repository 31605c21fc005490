package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"whatsapp-bot/config"
	"whatsapp-bot/handlers"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, processor *handlers.MessageProcessor) {
	webhook := app.Group("/webhook")

	// Webhook verification endpoint
	webhook.Get("/", verifyWebhook(cfg))

	// Webhook event handler
	webhook.Post("/", handleWebhookEvent(cfg, processor))
}

// verifyWebhook handles the Cloud API webhook verification handshake
func verifyWebhook(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mode := c.Query("hub.mode")
		token := c.Query("hub.verify_token")
		challenge := c.Query("hub.challenge")

		if mode == "subscribe" && token == cfg.VerifyToken {
			slog.Info("Webhook verified successfully")
			return c.SendString(challenge)
		}

		slog.Warn("Webhook verification failed", "mode", mode, "token", token)
		return c.SendStatus(fiber.StatusForbidden)
	}
}

// handleWebhookEvent processes incoming webhook events
func handleWebhookEvent(cfg *config.Config, processor *handlers.MessageProcessor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.AppSecret != "" && !validSignature(c.Body(), c.Get("X-Hub-Signature-256"), cfg.AppSecret) {
			slog.Warn("Webhook signature mismatch")
			return c.SendStatus(fiber.StatusForbidden)
		}

		var body WebhookEvent
		if err := c.BodyParser(&body); err != nil {
			slog.Error("Failed to parse webhook body", "error", err)
			return c.SendStatus(fiber.StatusBadRequest)
		}

		// Only process WhatsApp business account events
		if body.Object != "whatsapp_business_account" {
			return c.SendStatus(fiber.StatusNotFound)
		}

		// Process webhook asynchronously
		go processWebhookEvent(body, processor)

		// Return immediately to Meta
		return c.SendString("EVENT_RECEIVED")
	}
}

// validSignature checks the X-Hub-Signature-256 header against the payload.
func validSignature(payload []byte, header, appSecret string) bool {
	signature, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

// processWebhookEvent handles the webhook processing in a separate goroutine
func processWebhookEvent(body WebhookEvent, processor *handlers.MessageProcessor) {
	for _, entry := range body.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}

			for _, message := range change.Value.Messages {
				eventID := uuid.NewString()

				// Non-text events produce no reply
				if message.Type != "text" || message.Text == nil {
					slog.Info("Ignoring non-text message",
						"eventID", eventID,
						"from", message.From,
						"type", message.Type,
					)
					continue
				}

				slog.Info("Processing inbound message",
					"eventID", eventID,
					"from", message.From,
					"messageID", message.ID,
				)

				// Process synchronously within this goroutine
				processor.HandleMessage(handlers.InboundMessage{
					EventID: eventID,
					From:    message.From,
					Text:    message.Text.Body,
				})
			}
		}
	}
}
