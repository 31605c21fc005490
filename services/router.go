package services

import (
	"context"
	"errors"
	"log/slog"

	"whatsapp-bot/config"
	"whatsapp-bot/models"
)

// ReplyGenerator produces a free-form answer to a customer message. It may
// fail; the router treats any failure as "no answer available".
type ReplyGenerator interface {
	Generate(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// UnansweredRecorder receives messages that fell through to the AI fallback.
// Implementations must not block.
type UnansweredRecorder interface {
	Record(userID, text string)
}

// Router resolves one inbound message to exactly one reply. Matchers run in
// a fixed priority order, first match wins, and at most one AI call is made
// per message. The router never returns an error to its caller: collaborator
// failures degrade to fixed apology texts.
type Router struct {
	abuse      *AbuseFilter
	faq        *FAQStore
	topics     *KeywordIndex
	quiz       *Quiz
	sessions   *SessionStore
	orders     OrderLookup
	ai         ReplyGenerator
	unanswered UnansweredRecorder
	replies    config.ReplyTexts

	// topicInstruction restricts AI answers to the brand's domain when a
	// topic keyword matched. The plain fallback runs unrestricted.
	topicInstruction string
}

// NewRouter wires the resolution pipeline. orders, ai and unanswered may be
// nil; the corresponding stages then degrade the same way a failed
// collaborator call would.
func NewRouter(
	catalog *models.Catalog,
	quiz *Quiz,
	sessions *SessionStore,
	orders OrderLookup,
	ai ReplyGenerator,
	unanswered UnansweredRecorder,
	replies config.ReplyTexts,
	topicInstruction string,
) *Router {
	return &Router{
		abuse:            NewAbuseFilter(catalog.AbuseTerms),
		faq:              NewFAQStore(catalog.FAQ),
		topics:           NewKeywordIndex(catalog.Topics),
		quiz:             quiz,
		sessions:         sessions,
		orders:           orders,
		ai:               ai,
		unanswered:       unanswered,
		replies:          replies,
		topicInstruction: topicInstruction,
	}
}

// Resolve converts one inbound text message into one reply. The user's
// session is locked for the whole resolution, so concurrent messages from
// the same sender cannot corrupt the quiz stage.
func (r *Router) Resolve(ctx context.Context, userID, text string) models.Resolution {
	var resolution models.Resolution
	r.sessions.Update(userID, func(session *models.Session) {
		resolution = r.resolve(ctx, session, userID, text)
		session.Stage = resolution.Stage
	})
	return resolution
}

func (r *Router) resolve(ctx context.Context, session *models.Session, userID, text string) models.Resolution {
	// 1. Abuse check: terminal, nothing else runs.
	if r.abuse.Match(text) {
		slog.Info("Abusive message filtered", "userID", userID)
		return r.terminal(r.replies.Deescalation, session.Stage)
	}

	// 2. Phone or order reference: straight to order lookup.
	if ref, ok := ExtractOrderRef(text); ok {
		return r.terminal(r.lookupOrders(ctx, userID, ref), session.Stage)
	}
	if phone, ok := ExtractPhone(text); ok {
		return r.terminal(r.lookupOrders(ctx, userID, phone), session.Stage)
	}

	// 3. FAQ match: canned response, no AI.
	if response, ok := r.faq.Match(text); ok {
		slog.Info("FAQ matched", "userID", userID)
		return r.terminal(response, session.Stage)
	}

	normalized := Normalize(text)

	// 4. Active quiz step.
	if session.Stage != models.StageNone {
		nextStage, reply := r.quiz.Step(session.Stage, normalized)
		slog.Info("Quiz step", "userID", userID, "from", session.Stage, "to", nextStage)
		return r.terminal(reply, nextStage)
	}

	// 5. Quiz start phrase.
	if r.quiz.IsStartPhrase(normalized) {
		slog.Info("Quiz started", "userID", userID)
		return r.terminal(r.quiz.Intro(), models.StageQuizStarted)
	}

	// 6. Topic match: domain-restricted AI answer plus product suggestion.
	if topic, ok := r.topics.Match(text); ok {
		slog.Info("Topic matched", "userID", userID, "topic", topic.Name)
		reply, err := r.generate(ctx, text, r.topicInstruction)
		if err != nil {
			slog.Error("AI reply failed for topic", "error", err, "userID", userID, "topic", topic.Name)
			return r.terminal(r.replies.ExpertFollowUp, session.Stage)
		}
		if topic.Product != nil {
			reply += "\n\n🛍️ You might like " + topic.Product.Name + ": " + topic.Product.URL
		}
		return r.terminal(reply, session.Stage)
	}

	// 7. Unrestricted AI fallback.
	if r.unanswered != nil {
		r.unanswered.Record(userID, text)
	}
	reply, err := r.generate(ctx, text, "")
	if err != nil {
		slog.Error("AI fallback failed", "error", err, "userID", userID)
		return r.terminal(r.replies.CatchAllApology, session.Stage)
	}
	return r.terminal(reply, session.Stage)
}

func (r *Router) lookupOrders(ctx context.Context, userID, phoneOrRef string) string {
	if r.orders == nil {
		return r.replies.OrderLookupApology
	}

	orders, err := r.orders.Lookup(ctx, phoneOrRef)
	if err != nil {
		slog.Error("Order lookup failed", "error", err, "userID", userID)
		return r.replies.OrderLookupApology
	}
	if len(orders) == 0 {
		slog.Info("No orders found", "userID", userID)
		return r.replies.NoOrdersFound
	}

	slog.Info("Order lookup succeeded", "userID", userID, "orders", len(orders))
	return FormatOrderReply(orders)
}

var errNoGenerator = errors.New("no reply generator configured")

func (r *Router) generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	if r.ai == nil {
		return "", errNoGenerator
	}
	return r.ai.Generate(ctx, prompt, systemInstruction)
}

func (r *Router) terminal(reply string, stage models.QuizStage) models.Resolution {
	return models.Resolution{
		Reply:      reply,
		Stage:      stage,
		QuizActive: stage != models.StageNone,
	}
}
