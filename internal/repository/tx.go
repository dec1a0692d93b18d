package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const txMaxAttempts = 3

// RunTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode).
//
// Serialization conflicts and deadlocks abort the whole transaction; RunTx
// retries the closure from scratch — never resumes mid-way — up to
// txMaxAttempts times with a short backoff.
func RunTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}

	var err error
	for attempt := 1; ; attempt++ {
		err = db.WithContext(ctx).Transaction(fn)
		if err == nil || !retryableTxError(err) || attempt >= txMaxAttempts {
			return err
		}
		log.Warn().
			Int("attempt", attempt).
			Err(err).
			Msg("transaction conflict, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 25 * time.Millisecond):
		}
	}
}

// retryableTxError reports whether err is a Postgres serialization failure
// (SQLSTATE 40001) or deadlock (40P01) — the only errors worth a retry.
func retryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
