package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/infrastructure/postgres/generated"
	"github.com/clankbot/wagerbank/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository. The ledger is
// append-only; the unique (user_id, ref_type, ref_id, entry_type) index
// is the last line of defense against double application.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateTx appends a ledger entry within a transaction.
func (r *EntryRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	err := queries.CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		ID:        entry.ID,
		UserID:    entry.UserID,
		EntryType: string(entry.Type),
		Amount:    entry.Amount,
		RefType:   entry.RefType,
		RefID:     entry.RefID,
		CreatedAt: timeToPgTimestamptz(entry.CreatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEntry
	}

	return err
}

// ExistsByRefTx reports whether an entry with the given reference has
// already been applied.
func (r *EntryRepository) ExistsByRefTx(ctx context.Context, tx usecase.Transaction, userID, refType, refID string, entryType domain.EntryType) (bool, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.LedgerEntryExists(ctx, generated.LedgerEntryExistsParams{
		UserID:    userID,
		RefType:   refType,
		RefID:     refID,
		EntryType: string(entryType),
	})
}

// ListByUser retrieves a user's entries, newest first.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.queries.ListLedgerEntriesByUser(ctx, generated.ListLedgerEntriesByUserParams{
		UserID: userID,
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries, nil
}

// SignedSumByUser returns the net-worth effect of all entries for a user.
func (r *EntryRepository) SignedSumByUser(ctx context.Context, userID string) (int64, error) {
	return r.queries.SumSignedLedgerByUser(ctx, userID)
}

func rowToEntry(row generated.LedgerEntry) *domain.Entry {
	return &domain.Entry{
		ID:        row.ID,
		UserID:    row.UserID,
		Type:      domain.EntryType(row.EntryType),
		Amount:    row.Amount,
		RefType:   row.RefType,
		RefID:     row.RefID,
		CreatedAt: row.CreatedAt.Time,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
