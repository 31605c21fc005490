package services

import (
	"context"
	"log/slog"
	"time"
)

// Quiz sessions that are not mid-quiz carry no information, so they can be
// dropped once the sender has been quiet for a day.
const sessionIdleHorizon = 24 * time.Hour

// StartSessionCleanup starts a background goroutine that periodically prunes
// idle sessions from the store.
func StartSessionCleanup(ctx context.Context, store *SessionStore) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("Session cleanup stopped")
				return
			case <-ticker.C:
				count := store.Prune(sessionIdleHorizon)
				if count > 0 {
					slog.Info("Cleaned up idle sessions", "count", count, "remaining", store.Len())
				}
			}
		}
	}()

	slog.Info("Session cleanup started")
}
