
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createLedgerEntry = `-- name: CreateLedgerEntry :exec
INSERT INTO ledger_entries (id, user_id, entry_type, amount, ref_type, ref_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type CreateLedgerEntryParams struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	EntryType string             `json:"entry_type"`
	Amount    int64              `json:"amount"`
	RefType   string             `json:"ref_type"`
	RefID     string             `json:"ref_id"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateLedgerEntry(ctx context.Context, arg CreateLedgerEntryParams) error {
	_, err := q.db.Exec(ctx, createLedgerEntry,
		arg.ID,
		arg.UserID,
		arg.EntryType,
		arg.Amount,
		arg.RefType,
		arg.RefID,
		arg.CreatedAt,
	)
	return err
}

const ledgerEntryExists = `-- name: LedgerEntryExists :one
SELECT EXISTS (
    SELECT 1 FROM ledger_entries
    WHERE user_id = $1 AND ref_type = $2 AND ref_id = $3 AND entry_type = $4
)
`

type LedgerEntryExistsParams struct {
	UserID    string `json:"user_id"`
	RefType   string `json:"ref_type"`
	RefID     string `json:"ref_id"`
	EntryType string `json:"entry_type"`
}

func (q *Queries) LedgerEntryExists(ctx context.Context, arg LedgerEntryExistsParams) (bool, error) {
	row := q.db.QueryRow(ctx, ledgerEntryExists,
		arg.UserID,
		arg.RefType,
		arg.RefID,
		arg.EntryType,
	)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listLedgerEntriesByUser = `-- name: ListLedgerEntriesByUser :many
SELECT id, user_id, entry_type, amount, ref_type, ref_id, created_at FROM ledger_entries
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

type ListLedgerEntriesByUserParams struct {
	UserID string `json:"user_id"`
	Limit  int32  `json:"limit"`
	Offset int32  `json:"offset"`
}

func (q *Queries) ListLedgerEntriesByUser(ctx context.Context, arg ListLedgerEntriesByUserParams) ([]LedgerEntry, error) {
	rows, err := q.db.Query(ctx, listLedgerEntriesByUser, arg.UserID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []LedgerEntry{}
	for rows.Next() {
		var i LedgerEntry
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.EntryType,
			&i.Amount,
			&i.RefType,
			&i.RefID,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumSignedLedgerByUser = `-- name: SumSignedLedgerByUser :one
SELECT COALESCE(SUM(
    CASE
        WHEN entry_type IN ('earn', 'payout') THEN amount
        WHEN entry_type IN ('spend', 'void') THEN -amount
        ELSE 0
    END
), 0)::BIGINT AS total
FROM ledger_entries
WHERE user_id = $1
`

func (q *Queries) SumSignedLedgerByUser(ctx context.Context, userID string) (int64, error) {
	row := q.db.QueryRow(ctx, sumSignedLedgerByUser, userID)
	var total int64
	err := row.Scan(&total)
	return total, err
}
