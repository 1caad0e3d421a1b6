package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/infrastructure/postgres/generated"
	"github.com/clankbot/wagerbank/internal/usecase"
)

// BalanceRepository implements usecase.BalanceRepository.
type BalanceRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateTx creates a balance row within a transaction.
func (r *BalanceRepository) CreateTx(ctx context.Context, tx usecase.Transaction, balance *domain.Balance) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.CreateBalance(ctx, generated.CreateBalanceParams{
		UserID:         balance.UserID,
		Current:        balance.Current,
		Escrow:         balance.Escrow,
		LifetimeEarned: balance.LifetimeEarned,
		LifetimeSpent:  balance.LifetimeSpent,
		Version:        balance.Version,
		CreatedAt:      timeToPgTimestamptz(balance.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(balance.UpdatedAt),
	})
}

// GetByUserID retrieves a balance by user ID.
func (r *BalanceRepository) GetByUserID(ctx context.Context, userID string) (*domain.Balance, error) {
	row, err := r.queries.GetBalanceByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBalanceNotFound
		}

		return nil, err
	}

	return rowToBalance(row), nil
}

// GetByUserIDForUpdate retrieves a balance with a FOR UPDATE lock.
func (r *BalanceRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Balance, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetBalanceByUserIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBalanceNotFound
		}

		return nil, err
	}

	return rowToBalance(row), nil
}

// GetByUserIDsForUpdate retrieves multiple balances with FOR UPDATE locks,
// ordered by user id.
func (r *BalanceRepository) GetByUserIDsForUpdate(ctx context.Context, tx usecase.Transaction, userIDs []string) ([]*domain.Balance, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	rows, err := queries.GetBalancesByUserIDsForUpdate(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	balances := make([]*domain.Balance, 0, len(rows))
	for _, row := range rows {
		balances = append(balances, rowToBalance(row))
	}

	return balances, nil
}

// UpdateTx writes the mutated balance aggregate within a transaction.
func (r *BalanceRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, balance *domain.Balance, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateBalance(ctx, generated.UpdateBalanceParams{
		UserID:         balance.UserID,
		Current:        balance.Current,
		Escrow:         balance.Escrow,
		LifetimeEarned: balance.LifetimeEarned,
		LifetimeSpent:  balance.LifetimeSpent,
		UpdatedAt:      timeToPgTimestamptz(updatedAt),
	})
}

// List retrieves balances ordered by net worth, richest first.
func (r *BalanceRepository) List(ctx context.Context, limit, offset int) ([]*domain.Balance, error) {
	rows, err := r.queries.ListBalances(ctx, generated.ListBalancesParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	balances := make([]*domain.Balance, 0, len(rows))
	for _, row := range rows {
		balances = append(balances, rowToBalance(row))
	}

	return balances, nil
}

func rowToBalance(row generated.Balance) *domain.Balance {
	return &domain.Balance{
		UserID:         row.UserID,
		Current:        row.Current,
		Escrow:         row.Escrow,
		LifetimeEarned: row.LifetimeEarned,
		LifetimeSpent:  row.LifetimeSpent,
		Version:        row.Version,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
