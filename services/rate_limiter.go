package services

import (
	"sync"
	"time"
)

// RateLimiter implements a simple sliding-window rate limiter.
type RateLimiter struct {
	mu                sync.Mutex
	requestsPerMinute int
	lastRequests      []time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(rpm int) *RateLimiter {
	return &RateLimiter{
		requestsPerMinute: rpm,
		lastRequests:      make([]time.Time, 0),
	}
}

// Allow reports whether a request fits in the current window and, if it
// does, records it. It never blocks; callers that are over budget just drop
// the work.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-time.Minute)

	// Remove old requests outside the window
	validRequests := make([]time.Time, 0, len(r.lastRequests))
	for _, t := range r.lastRequests {
		if t.After(windowStart) {
			validRequests = append(validRequests, t)
		}
	}
	r.lastRequests = validRequests

	if len(r.lastRequests) >= r.requestsPerMinute {
		return false
	}

	r.lastRequests = append(r.lastRequests, now)
	return true
}
