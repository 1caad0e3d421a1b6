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

// WagerRepository implements usecase.WagerRepository.
type WagerRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewWagerRepository creates a new WagerRepository.
func NewWagerRepository(pool *pgxpool.Pool) *WagerRepository {
	return &WagerRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateTx creates a wager within a transaction.
func (r *WagerRepository) CreateTx(ctx context.Context, tx usecase.Transaction, wager *domain.Wager) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.CreateWager(ctx, generated.CreateWagerParams{
		ID:           wager.ID,
		OpenerID:     wager.OpenerID,
		Statement:    wager.Statement,
		OddsFor:      wager.OddsFor,
		OddsAgainst:  wager.OddsAgainst,
		Status:       string(wager.Status),
		TotalFor:     wager.TotalFor,
		TotalAgainst: wager.TotalAgainst,
		OpensAt:      timeToPgTimestamptz(wager.OpensAt),
		ClosesAt:     timeToPgTimestamptz(wager.ClosesAt),
		CreatedAt:    timeToPgTimestamptz(wager.CreatedAt),
		UpdatedAt:    timeToPgTimestamptz(wager.UpdatedAt),
	})
}

// GetByID retrieves a wager by ID.
func (r *WagerRepository) GetByID(ctx context.Context, id string) (*domain.Wager, error) {
	row, err := r.queries.GetWagerByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWagerNotFound
		}

		return nil, err
	}

	return rowToWager(row), nil
}

// GetByIDForUpdate retrieves a wager with a FOR UPDATE lock.
func (r *WagerRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wager, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetWagerByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWagerNotFound
		}

		return nil, err
	}

	return rowToWager(row), nil
}

// AddStakeTx adds a stake to one side's running pool total.
func (r *WagerRepository) AddStakeTx(ctx context.Context, tx usecase.Transaction, id string, side domain.Side, amount int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	var forDelta, againstDelta int64
	if side == domain.SideAgainst {
		againstDelta = amount
	} else {
		forDelta = amount
	}

	return queries.AddWagerStake(ctx, generated.AddWagerStakeParams{
		ID:           id,
		TotalFor:     forDelta,
		TotalAgainst: againstDelta,
		UpdatedAt:    timeToPgTimestamptz(updatedAt),
	})
}

// UpdateStatusTx advances the wager's lifecycle state.
func (r *WagerRepository) UpdateStatusTx(ctx context.Context, tx usecase.Transaction, id string, status domain.WagerStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateWagerStatus(ctx, generated.UpdateWagerStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// SettleTx records the terminal state and outcome of a wager.
func (r *WagerRepository) SettleTx(ctx context.Context, tx usecase.Transaction, id string, status domain.WagerStatus, outcome *domain.Outcome, settledAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	var outcomeText pgtype.Text
	if outcome != nil {
		outcomeText = pgtype.Text{String: string(*outcome), Valid: true}
	}

	return queries.SettleWager(ctx, generated.SettleWagerParams{
		ID:        id,
		Status:    string(status),
		Outcome:   outcomeText,
		SettledAt: timeToPgTimestamptz(settledAt),
	})
}

// ListByStatus retrieves wagers in a lifecycle state, newest first.
func (r *WagerRepository) ListByStatus(ctx context.Context, status domain.WagerStatus, limit, offset int) ([]*domain.Wager, error) {
	rows, err := r.queries.ListWagersByStatus(ctx, generated.ListWagersByStatusParams{
		Status: string(status),
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	wagers := make([]*domain.Wager, 0, len(rows))
	for _, row := range rows {
		wagers = append(wagers, rowToWager(row))
	}

	return wagers, nil
}

// ListOpenPastClose retrieves open wagers whose close time has passed,
// keyset-paginated by id.
func (r *WagerRepository) ListOpenPastClose(ctx context.Context, now time.Time, afterID string, limit int) ([]*domain.Wager, error) {
	rows, err := r.queries.ListOpenWagersPastClose(ctx, generated.ListOpenWagersPastCloseParams{
		ClosesAt: timeToPgTimestamptz(now),
		ID:       afterID,
		Limit:    int32(limit),
	})
	if err != nil {
		return nil, err
	}

	wagers := make([]*domain.Wager, 0, len(rows))
	for _, row := range rows {
		wagers = append(wagers, rowToWager(row))
	}

	return wagers, nil
}

func rowToWager(row generated.Wager) *domain.Wager {
	var settledAt *time.Time
	if row.SettledAt.Valid {
		t := row.SettledAt.Time
		settledAt = &t
	}

	var outcome *domain.Outcome
	if row.Outcome.Valid {
		o := domain.Outcome(row.Outcome.String)
		outcome = &o
	}

	return &domain.Wager{
		ID:           row.ID,
		OpenerID:     row.OpenerID,
		Statement:    row.Statement,
		OddsFor:      row.OddsFor,
		OddsAgainst:  row.OddsAgainst,
		Status:       domain.WagerStatus(row.Status),
		TotalFor:     row.TotalFor,
		TotalAgainst: row.TotalAgainst,
		OpensAt:      row.OpensAt.Time,
		ClosesAt:     row.ClosesAt.Time,
		SettledAt:    settledAt,
		Outcome:      outcome,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}
