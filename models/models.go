package models

import "time"

// Product is an item from the store catalog that can be suggested
// alongside an AI-generated answer.
type Product struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Topic maps trigger keywords to a subject the AI is allowed to answer,
// optionally with a product to suggest.
type Topic struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Product  *Product `json:"product,omitempty"`
}

// FaqEntry maps trigger keywords to a canned response. Unlike a Topic,
// a matched FAQ entry bypasses the AI entirely.
type FaqEntry struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
	Response string   `json:"response"`
}

// Catalog holds the static matching tables. It is loaded once at startup
// and never written afterwards, so it is safe to share across goroutines.
type Catalog struct {
	FAQ        []FaqEntry `json:"faq"`
	Topics     []Topic    `json:"topics"`
	AbuseTerms []string   `json:"abuse_terms"`
}

// QuizStage identifies where a user is in the discovery quiz.
type QuizStage string

const (
	StageNone        QuizStage = "none"
	StageQuizStarted QuizStage = "quiz_started"
	StageQuizSkin    QuizStage = "quiz_skin"
)

// Session is the per-user mutable state for the quiz flow.
type Session struct {
	UserID      string    `json:"user_id"`
	Stage       QuizStage `json:"stage"`
	LastUpdated time.Time `json:"last_updated"`
}

// Resolution is the router's answer for one inbound message.
type Resolution struct {
	Reply string `json:"reply"`
	// Stage is the quiz stage after this message was handled.
	Stage QuizStage `json:"stage"`
	// QuizActive is true when the reply advances or re-prompts a quiz
	// step, i.e. the next message from this user belongs to the quiz.
	QuizActive bool `json:"quiz_active"`
}

// LineItem is one purchased item on an order.
type LineItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}

// OrderSummary is the slice of an order the bot reports back to the
// customer: reference, status and what was bought.
type OrderSummary struct {
	Name              string     `json:"name"`
	CreatedAt         string     `json:"created_at"`
	FinancialStatus   string     `json:"financial_status"`
	FulfillmentStatus string     `json:"fulfillment_status"`
	LineItems         []LineItem `json:"line_items"`
	TotalAmount       string     `json:"total_amount"`
	TotalCurrency     string     `json:"total_currency"`
}
