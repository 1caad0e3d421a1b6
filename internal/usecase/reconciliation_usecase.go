package usecase

import (
	"context"
	"time"

	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/infrastructure/metrics"
)

// ReconciliationUseCase cross-checks balance aggregates against the entry
// log. Because balances start at zero and every mutation writes an entry
// in the same transaction, the signed sum of a user's entries must equal
// both the net worth and the lifetime net.
type ReconciliationUseCase struct {
	balanceRepo BalanceRepository
	entryRepo   EntryRepository
	metrics     *metrics.Metrics
}

func NewReconciliationUseCase(
	balanceRepo BalanceRepository,
	entryRepo EntryRepository,
	metrics *metrics.Metrics,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		balanceRepo: balanceRepo,
		entryRepo:   entryRepo,
		metrics:     metrics,
	}
}

// ReconciliationResult is the outcome of reconciling one user.
type ReconciliationResult struct {
	UserID      string
	Current     int64
	Escrow      int64
	NetWorth    int64
	LedgerSum   int64
	LifetimeNet int64
	Reconciled  bool
	CheckedAt   time.Time
}

// ReconcileUser checks one user's balance aggregate against the ledger.
func (uc *ReconciliationUseCase) ReconcileUser(ctx context.Context, userID string) (*ReconciliationResult, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	balance, err := uc.balanceRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sum, err := uc.entryRepo.SignedSumByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &ReconciliationResult{
		UserID:      userID,
		Current:     balance.Current,
		Escrow:      balance.Escrow,
		NetWorth:    balance.Current + balance.Escrow,
		LedgerSum:   sum,
		LifetimeNet: balance.LifetimeEarned - balance.LifetimeSpent,
		CheckedAt:   time.Now().UTC(),
	}
	result.Reconciled = result.LedgerSum == result.NetWorth && result.LedgerSum == result.LifetimeNet

	if !result.Reconciled && uc.metrics != nil {
		uc.metrics.ReconciliationFailures.Inc()
	}

	return result, nil
}

// ReconcileAll checks every balance and returns the results that failed.
// A clean run returns an empty slice.
func (uc *ReconciliationUseCase) ReconcileAll(ctx context.Context) ([]*ReconciliationResult, error) {
	const pageSize = 500

	var mismatches []*ReconciliationResult
	for offset := 0; ; offset += pageSize {
		balances, err := uc.balanceRepo.List(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, b := range balances {
			result, err := uc.ReconcileUser(ctx, b.UserID)
			if err != nil {
				return nil, err
			}
			if !result.Reconciled {
				mismatches = append(mismatches, result)
			}
		}
		if len(balances) < pageSize {
			return mismatches, nil
		}
	}
}
