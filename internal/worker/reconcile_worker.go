package worker

// reconcile_worker.go
// Processes debt-ledger reconciliation jobs from QueueReconcile. Jobs are
// enqueued by the cron (full sweep) or on demand for a single customer.

import (
	"context"
	"encoding/json"

	"github.com/Pessima-byte/Estommy-sub002/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReconcileJobPayload targets either one customer or, with an empty
// CustomerID, every active customer.
type ReconcileJobPayload struct {
	CustomerID string `json:"customer_id,omitempty"`
	Fix        bool   `json:"fix"`
}

// Reconciler audits recorded customer debt against the credit rows.
// Satisfied by the ledger service; declared here to keep the dependency
// pointing from service to worker, not both ways.
type Reconciler interface {
	Reconcile(ctx context.Context, customerID uuid.UUID, fix bool) (*dto.ReconcileResult, error)
	ReconcileAll(ctx context.Context, fix bool) ([]dto.ReconcileResult, error)
}

type ReconcileWorker struct {
	ledger Reconciler
}

func NewReconcileWorker(ledger Reconciler) *ReconcileWorker {
	return &ReconcileWorker{ledger: ledger}
}

func (w *ReconcileWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload ReconcileJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reconcile_worker: invalid payload")
		return
	}

	if payload.CustomerID != "" {
		id, err := uuid.Parse(payload.CustomerID)
		if err != nil {
			log.Error().Err(err).Str("customer_id", payload.CustomerID).Msg("reconcile_worker: bad customer id")
			return
		}
		result, err := w.ledger.Reconcile(ctx, id, payload.Fix)
		if err != nil {
			log.Error().Err(err).Str("customer_id", payload.CustomerID).Msg("reconcile_worker: reconcile failed")
			SendToDLQ(ctx, rdb, QueueReconcile, "reconcile", raw, err.Error(), 1)
			return
		}
		logResult(*result)
		return
	}

	results, err := w.ledger.ReconcileAll(ctx, payload.Fix)
	if err != nil {
		log.Error().Err(err).Msg("reconcile_worker: full sweep failed")
		SendToDLQ(ctx, rdb, QueueReconcile, "reconcile", raw, err.Error(), 1)
		return
	}

	drifted := 0
	for _, r := range results {
		if !r.Drift.IsZero() {
			drifted++
			logResult(r)
		}
	}
	log.Info().
		Int("customers", len(results)).
		Int("drifted", drifted).
		Bool("fix", payload.Fix).
		Msg("reconcile_worker: sweep complete")
}

func logResult(r dto.ReconcileResult) {
	if r.Drift.IsZero() {
		return
	}
	log.Warn().
		Str("customer_id", r.CustomerID).
		Str("recorded", r.Recorded.String()).
		Str("computed", r.Computed.String()).
		Str("drift", r.Drift.String()).
		Bool("corrected", r.Corrected).
		Msg("reconcile_worker: ledger drift")
}
