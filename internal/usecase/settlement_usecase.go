package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/infrastructure/metrics"
)

// SettlementUseCase resolves closed wagers. Settlement is a single
// transaction: it locks the wager, derives the payout for every
// participant, releases all escrowed stakes and records the outcome. If
// anything fails the wager stays closed and untouched.
type SettlementUseCase struct {
	txManager       TransactionManager
	wagerRepo       WagerRepository
	participantRepo ParticipantRepository
	balanceRepo     BalanceRepository
	outboxRepo      OutboxRepository
	escrow          *EscrowUseCase
	idGen           IDGenerator
	retrier         Retrier
	metrics         *metrics.Metrics
}

func NewSettlementUseCase(
	txManager TransactionManager,
	wagerRepo WagerRepository,
	participantRepo ParticipantRepository,
	balanceRepo BalanceRepository,
	outboxRepo OutboxRepository,
	escrow *EscrowUseCase,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *SettlementUseCase {
	return &SettlementUseCase{
		txManager:       txManager,
		wagerRepo:       wagerRepo,
		participantRepo: participantRepo,
		balanceRepo:     balanceRepo,
		outboxRepo:      outboxRepo,
		escrow:          escrow,
		idGen:           idGen,
		retrier:         retrier,
		metrics:         metrics,
	}
}

// SettlementResult reports what a settlement did.
type SettlementResult struct {
	Wager   *domain.Wager
	Payouts []domain.Payout
}

// Settle resolves a closed wager with the given outcome. A void outcome
// refunds every stake and marks the wager void; a for/against outcome
// pays the winning side from the losing pool and forfeits the losers.
//
// Settling an already-settled or void wager fails with AlreadySettled;
// settling an open wager fails with WagerNotClosed. Settlement never
// partially applies: either every participant's escrow is released or
// none is.
func (uc *SettlementUseCase) Settle(ctx context.Context, wagerID string, outcome domain.Outcome) (*SettlementResult, error) {
	if !outcome.IsValid() {
		return nil, domain.ErrInvalidOutcome
	}

	start := time.Now()

	var result *SettlementResult
	err := uc.retrier.Retry(ctx, func() error {
		var err error
		result, err = uc.settle(ctx, wagerID, outcome)
		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SettlementsCompleted.WithLabelValues(string(outcome)).Inc()
		uc.metrics.SettlementDuration.Observe(time.Since(start).Seconds())
	}

	return result, nil
}

func (uc *SettlementUseCase) settle(ctx context.Context, wagerID string, outcome domain.Outcome) (*SettlementResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	wager, err := uc.wagerRepo.GetByIDForUpdate(txCtx, tx, wagerID)
	if err != nil {
		return nil, err
	}
	if err := wager.CanSettle(); err != nil {
		return nil, err
	}

	participants, err := uc.participantRepo.ListByWagerTx(txCtx, tx, wagerID)
	if err != nil {
		return nil, err
	}

	if err := checkPoolTotals(wager, participants); err != nil {
		return nil, err
	}

	payouts := domain.ComputePayouts(wager, participants, outcome)

	balances, err := uc.lockBalances(txCtx, tx, payouts)
	if err != nil {
		return nil, err
	}

	for _, p := range payouts {
		balance, ok := balances[p.UserID]
		if !ok {
			return nil, fmt.Errorf("%w: no balance for participant %s", domain.ErrBalanceNotFound, p.UserID)
		}
		if err := uc.escrow.ReleaseFromEscrow(txCtx, tx, balance, wager.ID, p); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	// A void outcome voids the market; the outcome column stays empty
	// because nothing was decided.
	status := domain.WagerStatusSettled
	var recordedOutcome *domain.Outcome
	eventType := domain.EventTypeWagerSettled
	if outcome == domain.OutcomeVoid {
		status = domain.WagerStatusVoid
		eventType = domain.EventTypeWagerVoided
	} else {
		recordedOutcome = &outcome
	}

	if err := uc.wagerRepo.SettleTx(txCtx, tx, wager.ID, status, recordedOutcome, now); err != nil {
		return nil, err
	}
	wager.Status = status
	wager.Outcome = recordedOutcome
	wager.SettledAt = &now
	wager.UpdatedAt = now

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   wager.ID,
		AggregateType: domain.AggregateTypeWager,
		EventType:     eventType,
		Payload: map[string]any{
			"wager_id":      wager.ID,
			"outcome":       string(outcome),
			"participants":  len(participants),
			"total_for":     wager.TotalFor,
			"total_against": wager.TotalAgainst,
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.CreateTx(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return &SettlementResult{Wager: wager, Payouts: payouts}, nil
}

func (uc *SettlementUseCase) lockBalances(ctx context.Context, tx Transaction, payouts []domain.Payout) (map[string]*domain.Balance, error) {
	ids := make([]string, 0, len(payouts))
	seen := make(map[string]struct{}, len(payouts))
	for _, p := range payouts {
		if _, ok := seen[p.UserID]; ok {
			continue
		}
		seen[p.UserID] = struct{}{}
		ids = append(ids, p.UserID)
	}
	// Balance rows are locked in id order so concurrent settlements that
	// share participants cannot deadlock.
	sort.Strings(ids)

	balances, err := uc.balanceRepo.GetByUserIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if len(balances) != len(ids) {
		return nil, domain.ErrBalanceNotFound
	}

	byUser := make(map[string]*domain.Balance, len(balances))
	for _, b := range balances {
		byUser[b.UserID] = b
	}
	return byUser, nil
}

// checkPoolTotals verifies that the wager's running pool totals match the
// participant stakes before any money moves.
func checkPoolTotals(w *domain.Wager, participants []*domain.Participant) error {
	var totalFor, totalAgainst int64
	for _, p := range participants {
		if p.Side == domain.SideAgainst {
			totalAgainst += p.Amount
		} else {
			totalFor += p.Amount
		}
	}
	if totalFor != w.TotalFor || totalAgainst != w.TotalAgainst {
		return fmt.Errorf("%w: wager %s pool totals (%d, %d) do not match stakes (%d, %d)",
			domain.ErrLedgerMismatch, w.ID, w.TotalFor, w.TotalAgainst, totalFor, totalAgainst)
	}
	return nil
}
