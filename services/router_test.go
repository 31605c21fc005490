package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whatsapp-bot/config"
	"whatsapp-bot/models"
)

type fakeOrders struct {
	calls     int
	lastQuery string
	orders    []models.OrderSummary
	err       error
}

func (f *fakeOrders) Lookup(ctx context.Context, phoneOrRef string) ([]models.OrderSummary, error) {
	f.calls++
	f.lastQuery = phoneOrRef
	return f.orders, f.err
}

type fakeAI struct {
	calls           int
	lastPrompt      string
	lastInstruction string
	reply           string
	err             error
}

func (f *fakeAI) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastInstruction = systemInstruction
	return f.reply, f.err
}

type fakeRecorder struct {
	records []string
}

func (f *fakeRecorder) Record(userID, text string) {
	f.records = append(f.records, text)
}

const testInstruction = "answer only about ayurveda"

func testCatalog() *models.Catalog {
	return &models.Catalog{
		FAQ: []models.FaqEntry{
			{Category: "shipping", Keywords: []string{"order status", "delivery"}, Response: "Orders ship in 2-3 days."},
		},
		Topics: []models.Topic{
			{Name: "skin", Keywords: []string{"skin"}, Product: &models.Product{Name: "Kumkumadi Oil", URL: "https://example.com/k"}},
			{Name: "hair", Keywords: []string{"hair fall"}},
		},
		AbuseTerms: []string{"idiot"},
	}
}

func newTestRouter(orders *fakeOrders, ai *fakeAI, recorder *fakeRecorder) *Router {
	var ordersIface OrderLookup
	if orders != nil {
		ordersIface = orders
	}
	var aiIface ReplyGenerator
	if ai != nil {
		aiIface = ai
	}
	var recorderIface UnansweredRecorder
	if recorder != nil {
		recorderIface = recorder
	}
	return NewRouter(
		testCatalog(),
		NewQuiz(config.DefaultQuizScript()),
		NewSessionStore(),
		ordersIface,
		aiIface,
		recorderIface,
		config.DefaultReplyTexts(),
		testInstruction,
	)
}

func TestRouterAbuseShortCircuits(t *testing.T) {
	orders := &fakeOrders{}
	ai := &fakeAI{reply: "ai reply"}
	router := newTestRouter(orders, ai, nil)
	replies := config.DefaultReplyTexts()

	// Contains an abuse term, a phone number, an FAQ keyword and a topic
	// keyword: the de-escalation still wins and nothing else runs.
	res := router.Resolve(context.Background(), "u1", "idiot bot, order status for 9876543210, my skin")

	assert.Equal(t, replies.Deescalation, res.Reply)
	assert.Equal(t, 0, orders.calls)
	assert.Equal(t, 0, ai.calls)
}

func TestRouterPhoneLookup(t *testing.T) {
	orders := &fakeOrders{orders: []models.OrderSummary{{
		Name:              "#TAC1042",
		CreatedAt:         "2026-08-01T10:00:00Z",
		FinancialStatus:   "PAID",
		FulfillmentStatus: "FULFILLED",
		LineItems:         []models.LineItem{{Title: "Kumkumadi Oil", Quantity: 1}},
		TotalAmount:       "699.00",
		TotalCurrency:     "INR",
	}}}
	ai := &fakeAI{reply: "ai reply"}
	router := newTestRouter(orders, ai, nil)

	res := router.Resolve(context.Background(), "u1", "my number is 9876543210")

	require.Equal(t, 1, orders.calls)
	assert.Equal(t, "+919876543210", orders.lastQuery)
	assert.Equal(t, FormatOrderReply(orders.orders), res.Reply)
	assert.Contains(t, res.Reply, "#TAC1042")
	assert.Contains(t, res.Reply, "Kumkumadi Oil (Qty: 1)")
	// No FAQ, topic or AI stage executed.
	assert.Equal(t, 0, ai.calls)
}

func TestRouterOrderRefLookup(t *testing.T) {
	orders := &fakeOrders{}
	router := newTestRouter(orders, nil, nil)
	replies := config.DefaultReplyTexts()

	res := router.Resolve(context.Background(), "u1", "where is #TAC1042")

	require.Equal(t, 1, orders.calls)
	assert.Equal(t, "#TAC1042", orders.lastQuery)
	// Zero orders is not an error.
	assert.Equal(t, replies.NoOrdersFound, res.Reply)
}

func TestRouterOrderLookupFailure(t *testing.T) {
	orders := &fakeOrders{err: errors.New("shopify down")}
	router := newTestRouter(orders, nil, nil)
	replies := config.DefaultReplyTexts()

	res := router.Resolve(context.Background(), "u1", "9876543210")

	assert.Equal(t, replies.OrderLookupApology, res.Reply)
}

func TestRouterFAQMatchIsCaseInsensitiveAndIdempotent(t *testing.T) {
	ai := &fakeAI{reply: "ai reply"}
	router := newTestRouter(nil, ai, nil)

	upper := router.Resolve(context.Background(), "u1", "ORDER STATUS")
	lower := router.Resolve(context.Background(), "u1", "order status")
	again := router.Resolve(context.Background(), "u1", "order status")

	assert.Equal(t, "Orders ship in 2-3 days.", upper.Reply)
	assert.Equal(t, upper.Reply, lower.Reply)
	assert.Equal(t, lower.Reply, again.Reply)
	assert.Equal(t, 0, ai.calls)
}

func TestRouterQuizFlow(t *testing.T) {
	ai := &fakeAI{reply: "ai reply"}
	router := newTestRouter(nil, ai, nil)
	script := config.DefaultQuizScript()
	ctx := context.Background()

	res := router.Resolve(ctx, "u1", "start quiz")
	assert.Equal(t, script.Intro, res.Reply)
	assert.Equal(t, models.StageQuizStarted, res.Stage)
	assert.True(t, res.QuizActive)

	res = router.Resolve(ctx, "u1", "1")
	assert.Equal(t, script.SkinPrompt, res.Reply)
	assert.Equal(t, models.StageQuizSkin, res.Stage)
	assert.True(t, res.QuizActive)

	res = router.Resolve(ctx, "u1", "3")
	assert.Equal(t, script.SkinRecommendations[2], res.Reply)
	assert.Equal(t, models.StageNone, res.Stage)
	assert.False(t, res.QuizActive)

	// The quiz never touches the AI.
	assert.Equal(t, 0, ai.calls)
}

func TestRouterQuizHairTrackResets(t *testing.T) {
	router := newTestRouter(nil, nil, nil)
	script := config.DefaultQuizScript()
	ctx := context.Background()

	router.Resolve(ctx, "u1", "quiz")
	res := router.Resolve(ctx, "u1", "2")

	assert.Equal(t, script.HairRecommendation, res.Reply)
	assert.Equal(t, models.StageNone, res.Stage)
}

func TestRouterFAQBeatsActiveQuiz(t *testing.T) {
	router := newTestRouter(nil, nil, nil)
	ctx := context.Background()

	router.Resolve(ctx, "u1", "start quiz")
	res := router.Resolve(ctx, "u1", "what about delivery")

	// FAQ wins over the quiz step, but the quiz stays active.
	assert.Equal(t, "Orders ship in 2-3 days.", res.Reply)
	assert.Equal(t, models.StageQuizStarted, res.Stage)
	assert.True(t, res.QuizActive)
}

func TestRouterQuizStepBeatsTopicAndFallback(t *testing.T) {
	ai := &fakeAI{reply: "ai reply"}
	router := newTestRouter(nil, ai, nil)
	script := config.DefaultQuizScript()
	ctx := context.Background()

	router.Resolve(ctx, "u1", "start quiz")
	res := router.Resolve(ctx, "u1", "nonsense answer")

	assert.Equal(t, script.Intro, res.Reply)
	assert.Equal(t, models.StageQuizStarted, res.Stage)
	assert.Equal(t, 0, ai.calls)
}

func TestRouterTopicMatchAppendsProduct(t *testing.T) {
	ai := &fakeAI{reply: "Dry skin loves oils."}
	router := newTestRouter(nil, ai, nil)

	res := router.Resolve(context.Background(), "u1", "my skin feels rough")

	require.Equal(t, 1, ai.calls)
	assert.Equal(t, testInstruction, ai.lastInstruction)
	assert.Equal(t, "my skin feels rough", ai.lastPrompt)
	assert.Contains(t, res.Reply, "Dry skin loves oils.")
	assert.Contains(t, res.Reply, "Kumkumadi Oil")
	assert.Contains(t, res.Reply, "https://example.com/k")
}

func TestRouterTopicWithoutProduct(t *testing.T) {
	ai := &fakeAI{reply: "Try oiling twice a week."}
	router := newTestRouter(nil, ai, nil)

	res := router.Resolve(context.Background(), "u1", "too much hair fall lately")

	assert.Equal(t, "Try oiling twice a week.", res.Reply)
}

func TestRouterTopicAIFailure(t *testing.T) {
	ai := &fakeAI{err: errors.New("quota exceeded")}
	router := newTestRouter(nil, ai, nil)
	replies := config.DefaultReplyTexts()

	res := router.Resolve(context.Background(), "u1", "skin advice please")

	assert.Equal(t, 1, ai.calls)
	assert.Equal(t, replies.ExpertFollowUp, res.Reply)
}

func TestRouterFallback(t *testing.T) {
	ai := &fakeAI{reply: "Namaste! How can I help?"}
	recorder := &fakeRecorder{}
	router := newTestRouter(nil, ai, recorder)

	res := router.Resolve(context.Background(), "u1", "hi")

	require.Equal(t, 1, ai.calls)
	assert.Empty(t, ai.lastInstruction)
	assert.Equal(t, "Namaste! How can I help?", res.Reply)
	assert.Equal(t, []string{"hi"}, recorder.records)
}

func TestRouterFallbackAIFailure(t *testing.T) {
	ai := &fakeAI{err: errors.New("timeout")}
	router := newTestRouter(nil, ai, nil)
	replies := config.DefaultReplyTexts()

	res := router.Resolve(context.Background(), "u1", "hi")

	assert.Equal(t, 1, ai.calls)
	assert.Equal(t, replies.CatchAllApology, res.Reply)
}

func TestRouterWithoutCollaborators(t *testing.T) {
	// Nothing configured: every degraded path still yields a reply.
	router := newTestRouter(nil, nil, nil)
	replies := config.DefaultReplyTexts()
	ctx := context.Background()

	res := router.Resolve(ctx, "u1", "hi")
	assert.Equal(t, replies.CatchAllApology, res.Reply)

	res = router.Resolve(ctx, "u1", "9876543210")
	assert.Equal(t, replies.OrderLookupApology, res.Reply)
}

func TestRouterEmptyCatalog(t *testing.T) {
	ai := &fakeAI{reply: "fallback answer"}
	router := NewRouter(
		&models.Catalog{},
		NewQuiz(config.DefaultQuizScript()),
		NewSessionStore(),
		nil,
		ai,
		nil,
		config.DefaultReplyTexts(),
		testInstruction,
	)

	res := router.Resolve(context.Background(), "u1", "order status for my skin")

	// Empty tables: everything falls through to the AI.
	assert.Equal(t, "fallback answer", res.Reply)
	assert.Equal(t, 1, ai.calls)
}
