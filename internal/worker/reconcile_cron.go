package worker

// reconcile_cron.go
// Background goroutine that periodically enqueues a full debt-ledger sweep
// so the worker pool audits every customer's recorded balance against the
// credit rows.

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReconcileCronConfig holds the reconciliation schedule.
type ReconcileCronConfig struct {
	RDB      *redis.Client
	Interval time.Duration
	AutoFix  bool
}

// StartReconcileCron launches a goroutine that enqueues a full sweep on each
// tick. It respects the context for graceful shutdown.
func StartReconcileCron(ctx context.Context, cfg ReconcileCronConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	dispatcher := NewDispatcher(cfg.RDB)

	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Bool("autofix", cfg.AutoFix).Msg("reconcile_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reconcile_cron: shutting down")
				return
			case <-ticker.C:
				payload := ReconcileJobPayload{Fix: cfg.AutoFix}
				if err := dispatcher.EnqueueReconcile(ctx, payload); err != nil {
					log.Error().Err(err).Msg("reconcile_cron: failed to enqueue sweep")
				}
			}
		}
	}()
}
