package handlers

import (
	"context"
	"log/slog"
	"time"

	"whatsapp-bot/services"
)

// InboundMessage is one text message from a WhatsApp user (moved here from
// webhooks to avoid an import cycle).
type InboundMessage struct {
	EventID string
	From    string
	Text    string
}

// ReplySender delivers one outbound reply to a WhatsApp user.
type ReplySender interface {
	SendText(ctx context.Context, to, message string) error
}

// MessageProcessor resolves inbound messages through the router and sends
// the reply back through the WhatsApp sender.
type MessageProcessor struct {
	router  *services.Router
	sender  ReplySender
	timeout time.Duration
}

func NewMessageProcessor(router *services.Router, sender ReplySender, timeout time.Duration) *MessageProcessor {
	return &MessageProcessor{
		router:  router,
		sender:  sender,
		timeout: timeout,
	}
}

// HandleMessage resolves one inbound message to one reply and delivers it.
// Delivery failures are logged, never surfaced back into routing.
func (p *MessageProcessor) HandleMessage(msg InboundMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	resolution := p.router.Resolve(ctx, msg.From, msg.Text)

	slog.Info("Message resolved",
		"eventID", msg.EventID,
		"from", msg.From,
		"stage", resolution.Stage,
		"quizActive", resolution.QuizActive,
		"replyLength", len(resolution.Reply),
	)

	if err := p.sender.SendText(ctx, msg.From, resolution.Reply); err != nil {
		slog.Error("Failed to send WhatsApp reply", "error", err, "eventID", msg.EventID, "to", msg.From)
	}
}
