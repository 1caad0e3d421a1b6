package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/infrastructure/postgres/generated"
	"github.com/clankbot/wagerbank/internal/usecase"
)

// ParticipantRepository implements usecase.ParticipantRepository.
type ParticipantRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewParticipantRepository creates a new ParticipantRepository.
func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateTx records a participant's stake within a transaction.
func (r *ParticipantRepository) CreateTx(ctx context.Context, tx usecase.Transaction, participant *domain.Participant) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	err := queries.CreateParticipant(ctx, generated.CreateParticipantParams{
		WagerID:  participant.WagerID,
		UserID:   participant.UserID,
		Side:     string(participant.Side),
		Amount:   participant.Amount,
		JoinedAt: timeToPgTimestamptz(participant.JoinedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrDuplicateParticipation
	}

	return err
}

// ExistsTx reports whether the user already staked this side of the wager.
func (r *ParticipantRepository) ExistsTx(ctx context.Context, tx usecase.Transaction, wagerID, userID string, side domain.Side) (bool, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.ParticipantExists(ctx, generated.ParticipantExistsParams{
		WagerID: wagerID,
		UserID:  userID,
		Side:    string(side),
	})
}

// ListByWagerTx retrieves a wager's participants in join order, inside the
// settlement transaction.
func (r *ParticipantRepository) ListByWagerTx(ctx context.Context, tx usecase.Transaction, wagerID string) ([]*domain.Participant, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	rows, err := queries.ListParticipantsByWager(ctx, wagerID)
	if err != nil {
		return nil, err
	}

	return rowsToParticipants(rows), nil
}

// ListByWager retrieves a wager's participants in join order.
func (r *ParticipantRepository) ListByWager(ctx context.Context, wagerID string) ([]*domain.Participant, error) {
	rows, err := r.queries.ListParticipantsByWager(ctx, wagerID)
	if err != nil {
		return nil, err
	}

	return rowsToParticipants(rows), nil
}

// ListByUser retrieves a user's stakes, newest first.
func (r *ParticipantRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Participant, error) {
	rows, err := r.queries.ListParticipantsByUser(ctx, generated.ListParticipantsByUserParams{
		UserID: userID,
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToParticipants(rows), nil
}

func rowsToParticipants(rows []generated.Participant) []*domain.Participant {
	participants := make([]*domain.Participant, 0, len(rows))
	for _, row := range rows {
		participants = append(participants, rowToParticipant(row))
	}
	return participants
}

func rowToParticipant(row generated.Participant) *domain.Participant {
	return &domain.Participant{
		WagerID:  row.WagerID,
		UserID:   row.UserID,
		Side:     domain.Side(row.Side),
		Amount:   row.Amount,
		JoinedAt: row.JoinedAt.Time,
	}
}
