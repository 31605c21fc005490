package services

import (
	"log/slog"
	"sync"
	"time"
)

// UnansweredQuestion is one message that fell all the way through to the AI
// fallback, kept so operators can grow the FAQ table from real traffic.
type UnansweredQuestion struct {
	UserID     string    `json:"user_id"`
	Text       string    `json:"text"`
	ReceivedAt time.Time `json:"received_at"`
}

// UnansweredLog records fallback questions off the hot matching path. It is
// rate-limited and bounded: when the window budget is spent or the ring is
// full, new questions are dropped rather than slowing down or growing the
// matcher. Nothing here is ever fed back into the live FAQ table.
type UnansweredLog struct {
	mu      sync.Mutex
	limiter *RateLimiter
	ring    []UnansweredQuestion
	next    int
	filled  bool
}

// NewUnansweredLog creates a recorder holding at most capacity questions,
// accepting at most rpm new ones per minute.
func NewUnansweredLog(capacity, rpm int) *UnansweredLog {
	return &UnansweredLog{
		limiter: NewRateLimiter(rpm),
		ring:    make([]UnansweredQuestion, capacity),
	}
}

// Record stores one unanswered question, dropping it when over budget.
func (l *UnansweredLog) Record(userID, text string) {
	if !l.limiter.Allow() {
		slog.Debug("Unanswered question dropped by rate limit", "userID", userID)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.ring) == 0 {
		return
	}
	l.ring[l.next] = UnansweredQuestion{
		UserID:     userID,
		Text:       text,
		ReceivedAt: time.Now(),
	}
	l.next++
	if l.next == len(l.ring) {
		l.next = 0
		l.filled = true
	}
}

// Snapshot returns the recorded questions, oldest first.
func (l *UnansweredLog) Snapshot() []UnansweredQuestion {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.filled {
		out := make([]UnansweredQuestion, l.next)
		copy(out, l.ring[:l.next])
		return out
	}

	out := make([]UnansweredQuestion, 0, len(l.ring))
	out = append(out, l.ring[l.next:]...)
	out = append(out, l.ring[:l.next]...)
	return out
}
