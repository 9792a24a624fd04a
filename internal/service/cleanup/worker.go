package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/iamasit07/connect-four/internal/service/game"
)

type Worker struct {
	SessionManager *game.SessionManager
	Interval       time.Duration
	FinishedTTL    time.Duration
	StaleTTL       time.Duration
}

func NewWorker(sm *game.SessionManager, interval, finishedTTL, staleTTL time.Duration) *Worker {
	return &Worker{
		SessionManager: sm,
		Interval:       interval,
		FinishedTTL:    finishedTTL,
		StaleTTL:       staleTTL,
	}
}

// Start runs a cleanup pass right away and then every Interval until ctx
// is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	interval := w.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Println("[CLEANUP] Background worker started")
	w.runCleanup()

	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return nil
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup() int {
	removed := w.SessionManager.CleanupOldSessions(w.FinishedTTL, w.StaleTTL)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d sessions, %d still tracked", removed, w.SessionManager.Count())
	}
	return removed
}
