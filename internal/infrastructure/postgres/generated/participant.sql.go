
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createParticipant = `-- name: CreateParticipant :exec
INSERT INTO participants (wager_id, user_id, side, amount, joined_at)
VALUES ($1, $2, $3, $4, $5)
`

type CreateParticipantParams struct {
	WagerID  string             `json:"wager_id"`
	UserID   string             `json:"user_id"`
	Side     string             `json:"side"`
	Amount   int64              `json:"amount"`
	JoinedAt pgtype.Timestamptz `json:"joined_at"`
}

func (q *Queries) CreateParticipant(ctx context.Context, arg CreateParticipantParams) error {
	_, err := q.db.Exec(ctx, createParticipant,
		arg.WagerID,
		arg.UserID,
		arg.Side,
		arg.Amount,
		arg.JoinedAt,
	)
	return err
}

const listParticipantsByUser = `-- name: ListParticipantsByUser :many
SELECT wager_id, user_id, side, amount, joined_at FROM participants
WHERE user_id = $1
ORDER BY joined_at DESC, wager_id DESC
LIMIT $2 OFFSET $3
`

type ListParticipantsByUserParams struct {
	UserID string `json:"user_id"`
	Limit  int32  `json:"limit"`
	Offset int32  `json:"offset"`
}

func (q *Queries) ListParticipantsByUser(ctx context.Context, arg ListParticipantsByUserParams) ([]Participant, error) {
	rows, err := q.db.Query(ctx, listParticipantsByUser, arg.UserID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Participant{}
	for rows.Next() {
		var i Participant
		if err := rows.Scan(
			&i.WagerID,
			&i.UserID,
			&i.Side,
			&i.Amount,
			&i.JoinedAt,
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

const listParticipantsByWager = `-- name: ListParticipantsByWager :many
SELECT wager_id, user_id, side, amount, joined_at FROM participants
WHERE wager_id = $1
ORDER BY joined_at, user_id
`

func (q *Queries) ListParticipantsByWager(ctx context.Context, wagerID string) ([]Participant, error) {
	rows, err := q.db.Query(ctx, listParticipantsByWager, wagerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Participant{}
	for rows.Next() {
		var i Participant
		if err := rows.Scan(
			&i.WagerID,
			&i.UserID,
			&i.Side,
			&i.Amount,
			&i.JoinedAt,
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

const participantExists = `-- name: ParticipantExists :one
SELECT EXISTS (
    SELECT 1 FROM participants
    WHERE wager_id = $1 AND user_id = $2 AND side = $3
)
`

type ParticipantExistsParams struct {
	WagerID string `json:"wager_id"`
	UserID  string `json:"user_id"`
	Side    string `json:"side"`
}

func (q *Queries) ParticipantExists(ctx context.Context, arg ParticipantExistsParams) (bool, error) {
	row := q.db.QueryRow(ctx, participantExists,
		arg.WagerID,
		arg.UserID,
		arg.Side,
	)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}
