package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Job is one pass of a periodic worker. It reports how many items it handled.
type Job func(ctx context.Context) (int, error)

// StartReminderWorker runs job every interval until ctx is cancelled. Each pass
// gets its own timeout so a slow store cannot stall the ticker forever. The
// returned channel is closed when the worker has stopped.
func StartReminderWorker(ctx context.Context, interval time.Duration, log *zap.Logger, job Job) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		close(done)
		return done
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce(ctx, interval, log, job)
			}
		}
	}()
	return done
}

func runOnce(ctx context.Context, interval time.Duration, log *zap.Logger, job Job) {
	ctx, cancel := context.WithTimeout(ctx, min(interval, 5*time.Minute))
	defer cancel()

	log.Debug("checking for missed habits")
	n, err := job(ctx)
	if err != nil {
		log.Error("reminder pass failed", zap.Int("reminded", n), zap.Error(err))
		return
	}
	log.Info("reminder pass finished", zap.Int("reminded", n))
}
