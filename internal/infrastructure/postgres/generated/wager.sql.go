
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const addWagerStake = `-- name: AddWagerStake :exec
UPDATE wagers
SET total_for = total_for + $2,
    total_against = total_against + $3,
    updated_at = $4
WHERE id = $1
`

type AddWagerStakeParams struct {
	ID           string             `json:"id"`
	TotalFor     int64              `json:"total_for"`
	TotalAgainst int64              `json:"total_against"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) AddWagerStake(ctx context.Context, arg AddWagerStakeParams) error {
	_, err := q.db.Exec(ctx, addWagerStake,
		arg.ID,
		arg.TotalFor,
		arg.TotalAgainst,
		arg.UpdatedAt,
	)
	return err
}

const createWager = `-- name: CreateWager :exec
INSERT INTO wagers (id, opener_id, statement, odds_for, odds_against, status, total_for, total_against, opens_at, closes_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

type CreateWagerParams struct {
	ID           string             `json:"id"`
	OpenerID     string             `json:"opener_id"`
	Statement    string             `json:"statement"`
	OddsFor      int64              `json:"odds_for"`
	OddsAgainst  int64              `json:"odds_against"`
	Status       string             `json:"status"`
	TotalFor     int64              `json:"total_for"`
	TotalAgainst int64              `json:"total_against"`
	OpensAt      pgtype.Timestamptz `json:"opens_at"`
	ClosesAt     pgtype.Timestamptz `json:"closes_at"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateWager(ctx context.Context, arg CreateWagerParams) error {
	_, err := q.db.Exec(ctx, createWager,
		arg.ID,
		arg.OpenerID,
		arg.Statement,
		arg.OddsFor,
		arg.OddsAgainst,
		arg.Status,
		arg.TotalFor,
		arg.TotalAgainst,
		arg.OpensAt,
		arg.ClosesAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getWagerByID = `-- name: GetWagerByID :one
SELECT id, opener_id, statement, odds_for, odds_against, status, total_for, total_against, opens_at, closes_at, settled_at, outcome, created_at, updated_at
FROM wagers WHERE id = $1
`

func (q *Queries) GetWagerByID(ctx context.Context, id string) (Wager, error) {
	row := q.db.QueryRow(ctx, getWagerByID, id)
	var i Wager
	err := row.Scan(
		&i.ID,
		&i.OpenerID,
		&i.Statement,
		&i.OddsFor,
		&i.OddsAgainst,
		&i.Status,
		&i.TotalFor,
		&i.TotalAgainst,
		&i.OpensAt,
		&i.ClosesAt,
		&i.SettledAt,
		&i.Outcome,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getWagerByIDForUpdate = `-- name: GetWagerByIDForUpdate :one
SELECT id, opener_id, statement, odds_for, odds_against, status, total_for, total_against, opens_at, closes_at, settled_at, outcome, created_at, updated_at
FROM wagers WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetWagerByIDForUpdate(ctx context.Context, id string) (Wager, error) {
	row := q.db.QueryRow(ctx, getWagerByIDForUpdate, id)
	var i Wager
	err := row.Scan(
		&i.ID,
		&i.OpenerID,
		&i.Statement,
		&i.OddsFor,
		&i.OddsAgainst,
		&i.Status,
		&i.TotalFor,
		&i.TotalAgainst,
		&i.OpensAt,
		&i.ClosesAt,
		&i.SettledAt,
		&i.Outcome,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listOpenWagersPastClose = `-- name: ListOpenWagersPastClose :many
SELECT id, opener_id, statement, odds_for, odds_against, status, total_for, total_against, opens_at, closes_at, settled_at, outcome, created_at, updated_at
FROM wagers
WHERE status = 'open' AND closes_at <= $1 AND id > $2
ORDER BY id
LIMIT $3
`

type ListOpenWagersPastCloseParams struct {
	ClosesAt pgtype.Timestamptz `json:"closes_at"`
	ID       string             `json:"id"`
	Limit    int32              `json:"limit"`
}

func (q *Queries) ListOpenWagersPastClose(ctx context.Context, arg ListOpenWagersPastCloseParams) ([]Wager, error) {
	rows, err := q.db.Query(ctx, listOpenWagersPastClose, arg.ClosesAt, arg.ID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Wager{}
	for rows.Next() {
		var i Wager
		if err := rows.Scan(
			&i.ID,
			&i.OpenerID,
			&i.Statement,
			&i.OddsFor,
			&i.OddsAgainst,
			&i.Status,
			&i.TotalFor,
			&i.TotalAgainst,
			&i.OpensAt,
			&i.ClosesAt,
			&i.SettledAt,
			&i.Outcome,
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

const listWagersByStatus = `-- name: ListWagersByStatus :many
SELECT id, opener_id, statement, odds_for, odds_against, status, total_for, total_against, opens_at, closes_at, settled_at, outcome, created_at, updated_at
FROM wagers
WHERE status = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

type ListWagersByStatusParams struct {
	Status string `json:"status"`
	Limit  int32  `json:"limit"`
	Offset int32  `json:"offset"`
}

func (q *Queries) ListWagersByStatus(ctx context.Context, arg ListWagersByStatusParams) ([]Wager, error) {
	rows, err := q.db.Query(ctx, listWagersByStatus, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Wager{}
	for rows.Next() {
		var i Wager
		if err := rows.Scan(
			&i.ID,
			&i.OpenerID,
			&i.Statement,
			&i.OddsFor,
			&i.OddsAgainst,
			&i.Status,
			&i.TotalFor,
			&i.TotalAgainst,
			&i.OpensAt,
			&i.ClosesAt,
			&i.SettledAt,
			&i.Outcome,
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

const settleWager = `-- name: SettleWager :exec
UPDATE wagers
SET status = $2,
    outcome = $3,
    settled_at = $4,
    updated_at = $4
WHERE id = $1
`

type SettleWagerParams struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	Outcome   pgtype.Text        `json:"outcome"`
	SettledAt pgtype.Timestamptz `json:"settled_at"`
}

func (q *Queries) SettleWager(ctx context.Context, arg SettleWagerParams) error {
	_, err := q.db.Exec(ctx, settleWager,
		arg.ID,
		arg.Status,
		arg.Outcome,
		arg.SettledAt,
	)
	return err
}

const updateWagerStatus = `-- name: UpdateWagerStatus :exec
UPDATE wagers
SET status = $2,
    updated_at = $3
WHERE id = $1
`

type UpdateWagerStatusParams struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateWagerStatus(ctx context.Context, arg UpdateWagerStatusParams) error {
	_, err := q.db.Exec(ctx, updateWagerStatus,
		arg.ID,
		arg.Status,
		arg.UpdatedAt,
	)
	return err
}
