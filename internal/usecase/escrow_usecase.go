package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/infrastructure/metrics"
)

// EscrowUseCase is the only component allowed to mutate balance aggregates
// and append ledger entries. Every mutation writes the entry and the
// aggregate update in the same transaction.
type EscrowUseCase struct {
	txManager   TransactionManager
	balanceRepo BalanceRepository
	entryRepo   EntryRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

func NewEscrowUseCase(
	txManager TransactionManager,
	balanceRepo BalanceRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *EscrowUseCase {
	return &EscrowUseCase{
		txManager:   txManager,
		balanceRepo: balanceRepo,
		entryRepo:   entryRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreditInput carries the parameters for a credit operation.
type CreditInput struct {
	UserID  string
	Amount  int64
	RefType string
	RefID   string
}

// DebitInput carries the parameters for a debit operation.
type DebitInput struct {
	UserID  string
	Amount  int64
	RefType string
	RefID   string
}

// Credit increases the user's spendable balance and lifetime earnings.
// Replaying the same (RefType, RefID) is a no-op returning the current
// balance.
func (uc *EscrowUseCase) Credit(ctx context.Context, input CreditInput) (*domain.Balance, error) {
	if err := validateLedgerOp(input.UserID, input.Amount, input.RefType, input.RefID); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	balance, err := uc.balanceRepo.GetByUserIDForUpdate(txCtx, tx, input.UserID)
	if err != nil {
		return nil, err
	}

	applied, err := uc.entryRepo.ExistsByRefTx(txCtx, tx, input.UserID, input.RefType, input.RefID, domain.EntryTypeEarn)
	if err != nil {
		return nil, err
	}
	if applied {
		return balance, nil
	}

	now := time.Now().UTC()
	if err := uc.writeEntry(txCtx, tx, input.UserID, domain.EntryTypeEarn, input.Amount, input.RefType, input.RefID, now); err != nil {
		return nil, err
	}

	balance.Current += input.Amount
	balance.LifetimeEarned += input.Amount
	if err := uc.balanceRepo.UpdateTx(txCtx, tx, balance, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   input.UserID,
		AggregateType: domain.AggregateTypeBalance,
		EventType:     domain.EventTypeBalanceCredited,
		Payload: map[string]any{
			"user_id":  input.UserID,
			"amount":   input.Amount,
			"ref_type": input.RefType,
			"ref_id":   input.RefID,
			"balance":  balance.Current,
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.CreateTx(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CreditsApplied.Inc()
	}

	return balance, nil
}

// Debit decreases the user's spendable balance. There is no partial debit:
// the whole amount is taken or the operation fails with InsufficientFunds.
func (uc *EscrowUseCase) Debit(ctx context.Context, input DebitInput) (*domain.Balance, error) {
	if err := validateLedgerOp(input.UserID, input.Amount, input.RefType, input.RefID); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	balance, err := uc.balanceRepo.GetByUserIDForUpdate(txCtx, tx, input.UserID)
	if err != nil {
		return nil, err
	}

	applied, err := uc.entryRepo.ExistsByRefTx(txCtx, tx, input.UserID, input.RefType, input.RefID, domain.EntryTypeSpend)
	if err != nil {
		return nil, err
	}
	if applied {
		return balance, nil
	}

	if err := balance.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.writeEntry(txCtx, tx, input.UserID, domain.EntryTypeSpend, input.Amount, input.RefType, input.RefID, now); err != nil {
		return nil, err
	}

	balance.Current -= input.Amount
	balance.LifetimeSpent += input.Amount
	if err := uc.balanceRepo.UpdateTx(txCtx, tx, balance, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   input.UserID,
		AggregateType: domain.AggregateTypeBalance,
		EventType:     domain.EventTypeBalanceDebited,
		Payload: map[string]any{
			"user_id":  input.UserID,
			"amount":   input.Amount,
			"ref_type": input.RefType,
			"ref_id":   input.RefID,
			"balance":  balance.Current,
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.CreateTx(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DebitsApplied.Inc()
	}

	return balance, nil
}

// MoveToEscrow locks amount from the spendable balance into escrow for one
// side of a wager. The caller owns the transaction and must already hold
// the row lock on balance.
func (uc *EscrowUseCase) MoveToEscrow(ctx context.Context, tx Transaction, balance *domain.Balance, wagerID string, side domain.Side, amount int64) error {
	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}
	if err := balance.ValidateDebit(amount); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := uc.writeEntry(ctx, tx, balance.UserID, domain.EntryTypeEscrowIn, amount, domain.RefTypeWager, wagerRef(wagerID, side), now); err != nil {
		return err
	}

	balance.Current -= amount
	balance.Escrow += amount

	if err := uc.balanceRepo.UpdateTx(ctx, tx, balance, now); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.EscrowMoved.Inc()
	}

	return nil
}

// ReleaseFromEscrow releases a settled participant's stake out of escrow
// according to the payout's disposition:
//
//   - refund: the stake returns to the spendable balance.
//   - payout: the stake returns plus winnings; lifetime earnings grow by
//     the winnings. The stake move is recorded as escrow_out, the winnings
//     as payout.
//   - forfeit: the stake leaves escrow without being returned and counts
//     toward lifetime spending.
//
// The caller owns the transaction and the row lock on balance.
func (uc *EscrowUseCase) ReleaseFromEscrow(ctx context.Context, tx Transaction, balance *domain.Balance, wagerID string, p domain.Payout) error {
	if err := domain.ValidateAmount(p.Stake); err != nil {
		return err
	}
	if err := balance.ValidateEscrowRelease(p.Stake); err != nil {
		return err
	}

	now := time.Now().UTC()
	ref := wagerRef(wagerID, p.Side)

	switch p.Disposition {
	case domain.DispositionRefund:
		if err := uc.writeEntry(ctx, tx, balance.UserID, domain.EntryTypeRefund, p.Stake, domain.RefTypeWager, ref, now); err != nil {
			return err
		}
		balance.Escrow -= p.Stake
		balance.Current += p.Stake

	case domain.DispositionPayout:
		if err := uc.writeEntry(ctx, tx, balance.UserID, domain.EntryTypeEscrowOut, p.Stake, domain.RefTypeWager, ref, now); err != nil {
			return err
		}
		if p.Winnings > 0 {
			if err := uc.writeEntry(ctx, tx, balance.UserID, domain.EntryTypePayout, p.Winnings, domain.RefTypeWager, ref, now); err != nil {
				return err
			}
		}
		balance.Escrow -= p.Stake
		balance.Current += p.Stake + p.Winnings
		balance.LifetimeEarned += p.Winnings

	case domain.DispositionForfeit:
		if err := uc.writeEntry(ctx, tx, balance.UserID, domain.EntryTypeVoid, p.Stake, domain.RefTypeWager, ref, now); err != nil {
			return err
		}
		balance.Escrow -= p.Stake
		balance.LifetimeSpent += p.Stake

	default:
		return fmt.Errorf("unknown disposition %q", p.Disposition)
	}

	if err := uc.balanceRepo.UpdateTx(ctx, tx, balance, now); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.EscrowReleased.Inc()
		if p.Disposition == domain.DispositionPayout {
			uc.metrics.PayoutAmount.Observe(float64(p.Stake + p.Winnings))
		}
	}

	return nil
}

func (uc *EscrowUseCase) writeEntry(ctx context.Context, tx Transaction, userID string, entryType domain.EntryType, amount int64, refType, refID string, now time.Time) error {
	return uc.entryRepo.CreateTx(ctx, tx, &domain.Entry{
		ID:        uc.idGen.Generate(),
		UserID:    userID,
		Type:      entryType,
		Amount:    amount,
		RefType:   refType,
		RefID:     refID,
		CreatedAt: now,
	})
}

func validateLedgerOp(userID string, amount int64, refType, refID string) error {
	if err := domain.ValidateUserID(userID); err != nil {
		return err
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}
	if refType == "" || refID == "" {
		return domain.ErrInvalidReference
	}
	return nil
}

// wagerRef builds the ledger reference id for a participant's stake. The
// side is part of the key because a user may back both sides of the same
// wager.
func wagerRef(wagerID string, side domain.Side) string {
	return wagerID + "/" + string(side)
}
