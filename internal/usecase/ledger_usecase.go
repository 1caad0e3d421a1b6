package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clankbot/wagerbank/internal/domain"
)

// LedgerUseCase serves read-only views over balances and the entry log.
type LedgerUseCase struct {
	balanceRepo     BalanceRepository
	entryRepo       EntryRepository
	participantRepo ParticipantRepository
	cache           Cache
	cacheTTL        time.Duration
}

// NewLedgerUseCase creates the read side. cache may be nil, in which case
// every leaderboard request hits the database.
func NewLedgerUseCase(
	balanceRepo BalanceRepository,
	entryRepo EntryRepository,
	participantRepo ParticipantRepository,
	cache Cache,
	cacheTTL time.Duration,
) *LedgerUseCase {
	return &LedgerUseCase{
		balanceRepo:     balanceRepo,
		entryRepo:       entryRepo,
		participantRepo: participantRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
	}
}

// GetBalance returns the balance aggregate for a user.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	return uc.balanceRepo.GetByUserID(ctx, userID)
}

// History returns the user's ledger entries, newest first.
func (uc *LedgerUseCase) History(ctx context.Context, userID string, limit, offset int) ([]*domain.Entry, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if _, err := uc.balanceRepo.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.entryRepo.ListByUser(ctx, userID, limit, offset)
}

// Leaderboard returns balances ordered by net worth, richest first. Results
// are cached per page and may lag the ledger by up to the cache TTL.
func (uc *LedgerUseCase) Leaderboard(ctx context.Context, limit, offset int) ([]*domain.Balance, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	key := fmt.Sprintf("leaderboard:%d:%d", limit, offset)
	if uc.cache != nil && uc.cacheTTL > 0 {
		if cached, err := uc.cache.Get(ctx, key); err == nil {
			var balances []*domain.Balance
			if err := json.Unmarshal([]byte(cached), &balances); err == nil {
				return balances, nil
			}
		}
	}

	balances, err := uc.balanceRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && uc.cacheTTL > 0 {
		if encoded, err := json.Marshal(balances); err == nil {
			// Cache failures only cost the next reader a database round trip.
			_ = uc.cache.Set(ctx, key, string(encoded), uc.cacheTTL)
		}
	}

	return balances, nil
}

// ListParticipations returns the wagers a user has staked on.
func (uc *LedgerUseCase) ListParticipations(ctx context.Context, userID string, limit, offset int) ([]*domain.Participant, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.participantRepo.ListByUser(ctx, userID, limit, offset)
}
