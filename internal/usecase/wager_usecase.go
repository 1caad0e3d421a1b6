package usecase

import (
	"context"
	"iter"
	"time"

	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/infrastructure/metrics"
)

// WagerUseCase manages the wager lifecycle up to (but not including)
// settlement: opening markets, accepting stakes, and closing the join
// window.
type WagerUseCase struct {
	txManager       TransactionManager
	userRepo        UserRepository
	wagerRepo       WagerRepository
	participantRepo ParticipantRepository
	balanceRepo     BalanceRepository
	outboxRepo      OutboxRepository
	escrow          *EscrowUseCase
	idGen           IDGenerator
	retrier         Retrier
	metrics         *metrics.Metrics
}

func NewWagerUseCase(
	txManager TransactionManager,
	userRepo UserRepository,
	wagerRepo WagerRepository,
	participantRepo ParticipantRepository,
	balanceRepo BalanceRepository,
	outboxRepo OutboxRepository,
	escrow *EscrowUseCase,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *WagerUseCase {
	return &WagerUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
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

// OpenWagerInput carries the parameters for opening a wager.
type OpenWagerInput struct {
	OpenerID    string
	Statement   string
	OddsFor     int64
	OddsAgainst int64
	OpensAt     time.Time
	ClosesAt    time.Time
}

// Open creates a new open wager. OpensAt defaults to now when zero.
func (uc *WagerUseCase) Open(ctx context.Context, input OpenWagerInput) (*domain.Wager, error) {
	if err := domain.ValidateUserID(input.OpenerID); err != nil {
		return nil, err
	}
	if err := domain.ValidateStatement(input.Statement); err != nil {
		return nil, err
	}
	if err := domain.ValidateOdds(input.OddsFor); err != nil {
		return nil, err
	}
	if err := domain.ValidateOdds(input.OddsAgainst); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	opensAt := input.OpensAt
	if opensAt.IsZero() {
		opensAt = now
	}
	if err := domain.ValidateWindow(opensAt, input.ClosesAt); err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetByID(ctx, input.OpenerID); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	wager := &domain.Wager{
		ID:          uc.idGen.Generate(),
		OpenerID:    input.OpenerID,
		Statement:   input.Statement,
		OddsFor:     input.OddsFor,
		OddsAgainst: input.OddsAgainst,
		Status:      domain.WagerStatusOpen,
		OpensAt:     opensAt,
		ClosesAt:    input.ClosesAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.wagerRepo.CreateTx(txCtx, tx, wager); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   wager.ID,
		AggregateType: domain.AggregateTypeWager,
		EventType:     domain.EventTypeWagerOpened,
		Payload: map[string]any{
			"wager_id":     wager.ID,
			"opener_id":    wager.OpenerID,
			"statement":    wager.Statement,
			"odds_for":     wager.OddsFor,
			"odds_against": wager.OddsAgainst,
			"closes_at":    wager.ClosesAt,
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
		uc.metrics.WagersOpened.Inc()
	}

	return wager, nil
}

// JoinWagerInput carries the parameters for joining a wager.
type JoinWagerInput struct {
	WagerID string
	UserID  string
	Side    domain.Side
	Amount  int64
}

// Join stakes amount on one side of an open wager. The stake moves from
// the user's spendable balance into escrow atomically with the
// participant row and the pool total update.
//
// A user may join each side at most once, but may back both sides of the
// same wager.
func (uc *WagerUseCase) Join(ctx context.Context, input JoinWagerInput) (*domain.Wager, error) {
	if err := domain.ValidateUserID(input.UserID); err != nil {
		return nil, err
	}
	if !input.Side.IsValid() {
		return nil, domain.ErrInvalidSide
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var wager *domain.Wager

	// Joins on a busy wager contend on the wager row lock; retry on
	// deadlock or serialization failure.
	err := uc.retrier.Retry(ctx, func() error {
		var err error
		wager, err = uc.join(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WagerJoins.Inc()
		uc.metrics.StakeAmount.Observe(float64(input.Amount))
	}

	return wager, nil
}

func (uc *WagerUseCase) join(ctx context.Context, input JoinWagerInput) (*domain.Wager, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock order: wager row first, then balance row. Settlement locks in
	// the same order.
	wager, err := uc.wagerRepo.GetByIDForUpdate(txCtx, tx, input.WagerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := wager.CanJoin(now); err != nil {
		return nil, err
	}

	exists, err := uc.participantRepo.ExistsTx(txCtx, tx, input.WagerID, input.UserID, input.Side)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateParticipation
	}

	balance, err := uc.balanceRepo.GetByUserIDForUpdate(txCtx, tx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := uc.escrow.MoveToEscrow(txCtx, tx, balance, wager.ID, input.Side, input.Amount); err != nil {
		return nil, err
	}

	participant := &domain.Participant{
		WagerID:  wager.ID,
		UserID:   input.UserID,
		Side:     input.Side,
		Amount:   input.Amount,
		JoinedAt: now,
	}
	if err := uc.participantRepo.CreateTx(txCtx, tx, participant); err != nil {
		return nil, err
	}

	if err := uc.wagerRepo.AddStakeTx(txCtx, tx, wager.ID, input.Side, input.Amount, now); err != nil {
		return nil, err
	}
	if input.Side == domain.SideAgainst {
		wager.TotalAgainst += input.Amount
	} else {
		wager.TotalFor += input.Amount
	}
	wager.UpdatedAt = now

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   wager.ID,
		AggregateType: domain.AggregateTypeWager,
		EventType:     domain.EventTypeWagerJoined,
		Payload: map[string]any{
			"wager_id":      wager.ID,
			"user_id":       input.UserID,
			"side":          string(input.Side),
			"amount":        input.Amount,
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

	return wager, nil
}

// Close ends the join window. Closing an already-closed wager is a no-op;
// closing a settled or void wager fails.
func (uc *WagerUseCase) Close(ctx context.Context, wagerID string) (*domain.Wager, error) {
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

	switch wager.Status {
	case domain.WagerStatusClosed:
		return wager, nil
	case domain.WagerStatusSettled, domain.WagerStatusVoid:
		return nil, domain.ErrAlreadySettled
	}

	now := time.Now().UTC()
	if err := uc.wagerRepo.UpdateStatusTx(txCtx, tx, wagerID, domain.WagerStatusClosed, now); err != nil {
		return nil, err
	}
	wager.Status = domain.WagerStatusClosed
	wager.UpdatedAt = now

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   wager.ID,
		AggregateType: domain.AggregateTypeWager,
		EventType:     domain.EventTypeWagerClosed,
		Payload: map[string]any{
			"wager_id":      wager.ID,
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

	if uc.metrics != nil {
		uc.metrics.WagersClosed.Inc()
	}

	return wager, nil
}

// Get retrieves a wager by ID.
func (uc *WagerUseCase) Get(ctx context.Context, wagerID string) (*domain.Wager, error) {
	return uc.wagerRepo.GetByID(ctx, wagerID)
}

// ListByStatus lists wagers in the given lifecycle state.
func (uc *WagerUseCase) ListByStatus(ctx context.Context, status domain.WagerStatus, limit, offset int) ([]*domain.Wager, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.wagerRepo.ListByStatus(ctx, status, limit, offset)
}

// ListParticipants lists the participants of a wager in join order.
func (uc *WagerUseCase) ListParticipants(ctx context.Context, wagerID string) ([]*domain.Participant, error) {
	if _, err := uc.wagerRepo.GetByID(ctx, wagerID); err != nil {
		return nil, err
	}
	return uc.participantRepo.ListByWager(ctx, wagerID)
}

// ListOpenPastClose yields every open wager whose close time has passed,
// in id order. Pages are fetched lazily so a sweep can stop early without
// loading the full set.
func (uc *WagerUseCase) ListOpenPastClose(ctx context.Context, now time.Time) iter.Seq2[*domain.Wager, error] {
	return func(yield func(*domain.Wager, error) bool) {
		var afterID string
		for {
			wagers, err := uc.wagerRepo.ListOpenPastClose(ctx, now, afterID, sweepBatchSize)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, w := range wagers {
				if !yield(w, nil) {
					return
				}
			}
			if len(wagers) < sweepBatchSize {
				return
			}
			afterID = wagers[len(wagers)-1].ID
		}
	}
}

// SweepExpired closes every open wager whose close time has passed and
// reports how many were closed. Wagers that settle or close concurrently
// are skipped.
func (uc *WagerUseCase) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	closed := 0
	for wager, err := range uc.ListOpenPastClose(ctx, now) {
		if err != nil {
			return closed, err
		}
		if _, err := uc.Close(ctx, wager.ID); err != nil {
			return closed, err
		}
		closed++
	}
	return closed, nil
}
