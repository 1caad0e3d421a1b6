package usecase

import (
	"context"
	"time"

	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/infrastructure/metrics"
)

// UserUseCase registers chat users. User ids come from the chat platform;
// the engine never invents them.
type UserUseCase struct {
	txManager       TransactionManager
	userRepo        UserRepository
	balanceRepo     BalanceRepository
	outboxRepo      OutboxRepository
	escrow          *EscrowUseCase
	idGen           IDGenerator
	startingBalance int64
	metrics         *metrics.Metrics
}

func NewUserUseCase(
	txManager TransactionManager,
	userRepo UserRepository,
	balanceRepo BalanceRepository,
	outboxRepo OutboxRepository,
	escrow *EscrowUseCase,
	idGen IDGenerator,
	startingBalance int64,
	metrics *metrics.Metrics,
) *UserUseCase {
	return &UserUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		balanceRepo:     balanceRepo,
		outboxRepo:      outboxRepo,
		escrow:          escrow,
		idGen:           idGen,
		startingBalance: startingBalance,
		metrics:         metrics,
	}
}

// Ensure registers the user if it is not known yet, creating a zero
// balance and granting the starting credit. Calling Ensure again for a
// known user is a no-op that returns the current state.
//
// The starting credit is a signup-referenced ledger entry, so it is
// granted exactly once even if the first call crashes after the user row
// commits.
func (uc *UserUseCase) Ensure(ctx context.Context, userID, username string) (*domain.User, *domain.Balance, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()
	user := &domain.User{
		ID:        userID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := uc.userRepo.UpsertTx(txCtx, tx, user)
	if err != nil {
		return nil, nil, err
	}

	if created {
		balance := &domain.Balance{
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.balanceRepo.CreateTx(txCtx, tx, balance); err != nil {
			return nil, nil, err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   userID,
			AggregateType: domain.AggregateTypeUser,
			EventType:     domain.EventTypeUserCreated,
			Payload: map[string]any{
				"user_id":  userID,
				"username": username,
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.CreateTx(txCtx, tx, event); err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, nil, err
	}

	if created && uc.metrics != nil {
		uc.metrics.UsersCreated.Inc()
	}

	var balance *domain.Balance
	if uc.startingBalance > 0 {
		balance, err = uc.escrow.Credit(ctx, CreditInput{
			UserID:  userID,
			Amount:  uc.startingBalance,
			RefType: domain.RefTypeSignup,
			RefID:   userID,
		})
	} else {
		balance, err = uc.balanceRepo.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, nil, err
	}

	return user, balance, nil
}

// Get retrieves a user by ID.
func (uc *UserUseCase) Get(ctx context.Context, userID string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// List lists registered users.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.userRepo.List(ctx, limit, offset)
}
