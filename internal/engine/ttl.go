package engine

import (
	"context"
	"log/slog"
	"time"
)

// sweepInterval is how often the TTL worker scans for idle sessions.
const sweepInterval = 5 * time.Minute

// StartTTLWorker periodically deletes sessions idle longer than ttl. It
// returns immediately when ttl is zero and stops when ctx is cancelled.
// Drivers with native expiry report no expired ids, making the sweep a
// no-op there.
func (e *Engine) StartTTLWorker(ctx context.Context, ttl time.Duration) {
	if ttl <= 0 {
		slog.Info("session TTL disabled, sweep worker not started")
		return
	}

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		slog.Info("session TTL sweep worker started", "ttl", ttl, "interval", sweepInterval)
		for {
			select {
			case <-ctx.Done():
				slog.Info("session TTL sweep worker stopped")
				return
			case <-ticker.C:
				e.sweepExpired(ctx, ttl)
			}
		}
	}()
}

// sweepExpired removes every session idle longer than ttl. Deletes go
// through the engine so per-session lock entries are released with the
// session.
func (e *Engine) sweepExpired(ctx context.Context, ttl time.Duration) {
	ids, err := e.repo.ExpiredSessionIDs(ctx, ttl)
	if err != nil {
		slog.Error("TTL sweep failed to list expired sessions", "error", err)
		return
	}
	if len(ids) == 0 {
		return
	}

	removed := 0
	for _, id := range ids {
		if err := e.DeleteSession(ctx, id); err != nil {
			slog.Error("TTL sweep failed to delete session", "session_id", id, "error", err)
			continue
		}
		removed++
	}
	slog.Info("TTL sweep removed expired sessions", "count", removed)
}
