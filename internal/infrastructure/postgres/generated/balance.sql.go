
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createBalance = `-- name: CreateBalance :exec
INSERT INTO balances (user_id, current, escrow, lifetime_earned, lifetime_spent, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateBalanceParams struct {
	UserID         string             `json:"user_id"`
	Current        int64              `json:"current"`
	Escrow         int64              `json:"escrow"`
	LifetimeEarned int64              `json:"lifetime_earned"`
	LifetimeSpent  int64              `json:"lifetime_spent"`
	Version        int64              `json:"version"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateBalance(ctx context.Context, arg CreateBalanceParams) error {
	_, err := q.db.Exec(ctx, createBalance,
		arg.UserID,
		arg.Current,
		arg.Escrow,
		arg.LifetimeEarned,
		arg.LifetimeSpent,
		arg.Version,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getBalanceByUserID = `-- name: GetBalanceByUserID :one
SELECT user_id, current, escrow, lifetime_earned, lifetime_spent, version, created_at, updated_at
FROM balances WHERE user_id = $1
`

func (q *Queries) GetBalanceByUserID(ctx context.Context, userID string) (Balance, error) {
	row := q.db.QueryRow(ctx, getBalanceByUserID, userID)
	var i Balance
	err := row.Scan(
		&i.UserID,
		&i.Current,
		&i.Escrow,
		&i.LifetimeEarned,
		&i.LifetimeSpent,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getBalanceByUserIDForUpdate = `-- name: GetBalanceByUserIDForUpdate :one
SELECT user_id, current, escrow, lifetime_earned, lifetime_spent, version, created_at, updated_at
FROM balances WHERE user_id = $1
FOR UPDATE
`

func (q *Queries) GetBalanceByUserIDForUpdate(ctx context.Context, userID string) (Balance, error) {
	row := q.db.QueryRow(ctx, getBalanceByUserIDForUpdate, userID)
	var i Balance
	err := row.Scan(
		&i.UserID,
		&i.Current,
		&i.Escrow,
		&i.LifetimeEarned,
		&i.LifetimeSpent,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getBalancesByUserIDsForUpdate = `-- name: GetBalancesByUserIDsForUpdate :many
SELECT user_id, current, escrow, lifetime_earned, lifetime_spent, version, created_at, updated_at
FROM balances WHERE user_id = ANY($1::text[])
ORDER BY user_id
FOR UPDATE
`

func (q *Queries) GetBalancesByUserIDsForUpdate(ctx context.Context, userIds []string) ([]Balance, error) {
	rows, err := q.db.Query(ctx, getBalancesByUserIDsForUpdate, userIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Balance{}
	for rows.Next() {
		var i Balance
		if err := rows.Scan(
			&i.UserID,
			&i.Current,
			&i.Escrow,
			&i.LifetimeEarned,
			&i.LifetimeSpent,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listBalances = `-- name: ListBalances :many
SELECT user_id, current, escrow, lifetime_earned, lifetime_spent, version, created_at, updated_at
FROM balances
ORDER BY current + escrow DESC, user_id
LIMIT $1 OFFSET $2
`

type ListBalancesParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListBalances(ctx context.Context, arg ListBalancesParams) ([]Balance, error) {
	rows, err := q.db.Query(ctx, listBalances, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Balance{}
	for rows.Next() {
		var i Balance
		if err := rows.Scan(
			&i.UserID,
			&i.Current,
			&i.Escrow,
			&i.LifetimeEarned,
			&i.LifetimeSpent,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const updateBalance = `-- name: UpdateBalance :exec
UPDATE balances
SET current = $2,
    escrow = $3,
    lifetime_earned = $4,
    lifetime_spent = $5,
    version = version + 1,
    updated_at = $6
WHERE user_id = $1
`

type UpdateBalanceParams struct {
	UserID         string             `json:"user_id"`
	Current        int64              `json:"current"`
	Escrow         int64              `json:"escrow"`
	LifetimeEarned int64              `json:"lifetime_earned"`
	LifetimeSpent  int64              `json:"lifetime_spent"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateBalance(ctx context.Context, arg UpdateBalanceParams) error {
	_, err := q.db.Exec(ctx, updateBalance,
		arg.UserID,
		arg.Current,
		arg.Escrow,
		arg.LifetimeEarned,
		arg.LifetimeSpent,
		arg.UpdatedAt,
	)
	return err
}
