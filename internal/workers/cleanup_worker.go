package workers

import (
	"context"
	"time"

	"feedback_backend/internal/logger"
	"feedback_backend/internal/services"
)

// CleanupWorker triggers the low-rating product sweep on the first of each
// month. The cadence lives here, not in the sweep itself, so a deployment
// can replace this with an external scheduler calling RunSweep directly.
type CleanupWorker struct {
	cleanup services.CleanupService
}

func NewCleanupWorker(cleanup services.CleanupService) *CleanupWorker {
	return &CleanupWorker{cleanup: cleanup}
}

// Start launches the monthly trigger loop.
func (w *CleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *CleanupWorker) run(ctx context.Context) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("cleanup worker stopped")
			return
		case <-timer.C:
		}

		purged, err := w.cleanup.RunSweep(ctx)
		logger.WorkerLog("cleanup", "sweep", err)
		if err == nil && purged > 0 {
			logger.Info("cleanup sweep removed products", "count", purged)
		}
	}
}
