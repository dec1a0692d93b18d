package service

import (
	"context"
	"errors"

	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerService maintains the customer debt ledger.
//
// The balance is adjusted incrementally with signed deltas on every credit
// mutation (write-cheap), and audited against the credit rows by Reconcile
// (spec'd as an offline check, never a transactional dual-write).
type LedgerService interface {
	// AdjustDebtTx applies a signed delta to the customer's running balance
	// inside the caller's transaction via an atomic increment.
	AdjustDebtTx(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, delta decimal.Decimal) error

	// Reconcile recomputes Σ outstanding over non-cleared credits and
	// compares it to the stored balance. With fix, the stored balance is
	// overwritten when it drifts.
	Reconcile(ctx context.Context, customerID uuid.UUID, fix bool) (*dto.ReconcileResult, error)

	// ReconcileAll audits all active customers; the cron calls this.
	ReconcileAll(ctx context.Context, fix bool) ([]dto.ReconcileResult, error)
}

type ledgerService struct {
	customers repository.CustomerRepository
	credits   repository.CreditRepository
}

func NewLedgerService(customers repository.CustomerRepository, credits repository.CreditRepository) LedgerService {
	return &ledgerService{customers: customers, credits: credits}
}

func (s *ledgerService) AdjustDebtTx(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	if err := s.customers.IncrementDebtTx(tx, customerID, delta); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	return nil
}

func (s *ledgerService) Reconcile(ctx context.Context, customerID uuid.UUID, fix bool) (*dto.ReconcileResult, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	computed, err := s.credits.SumOutstanding(ctx, customerID)
	if err != nil {
		return nil, err
	}

	result := &dto.ReconcileResult{
		CustomerID: customerID.String(),
		Recorded:   customer.TotalDebt,
		Computed:   computed,
		Drift:      customer.TotalDebt.Sub(computed),
	}

	if !result.Drift.IsZero() {
		log.Warn().
			Str("customer_id", customerID.String()).
			Str("recorded", result.Recorded.String()).
			Str("computed", result.Computed.String()).
			Msg("debt ledger drift detected")
		if fix {
			if err := s.customers.SetDebt(ctx, customerID, computed); err != nil {
				return nil, err
			}
			result.Corrected = true
		}
	}
	return result, nil
}

func (s *ledgerService) ReconcileAll(ctx context.Context, fix bool) ([]dto.ReconcileResult, error) {
	ids, err := s.customers.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.ReconcileResult, 0, len(ids))
	for _, id := range ids {
		r, err := s.Reconcile(ctx, id, fix)
		if err != nil {
			log.Error().Err(err).Str("customer_id", id.String()).Msg("reconcile failed")
			continue
		}
		results = append(results, *r)
	}
	return results, nil
}
