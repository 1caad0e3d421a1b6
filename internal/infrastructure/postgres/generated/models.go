
package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Balance struct {
	UserID         string             `json:"user_id"`
	Current        int64              `json:"current"`
	Escrow         int64              `json:"escrow"`
	LifetimeEarned int64              `json:"lifetime_earned"`
	LifetimeSpent  int64              `json:"lifetime_spent"`
	Version        int64              `json:"version"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type LedgerEntry struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	EntryType string             `json:"entry_type"`
	Amount    int64              `json:"amount"`
	RefType   string             `json:"ref_type"`
	RefID     string             `json:"ref_id"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	Published     bool               `json:"published"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
}

type Participant struct {
	WagerID  string             `json:"wager_id"`
	UserID   string             `json:"user_id"`
	Side     string             `json:"side"`
	Amount   int64              `json:"amount"`
	JoinedAt pgtype.Timestamptz `json:"joined_at"`
}

type User struct {
	ID        string             `json:"id"`
	Username  string             `json:"username"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type Wager struct {
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
	SettledAt    pgtype.Timestamptz `json:"settled_at"`
	Outcome      pgtype.Text        `json:"outcome"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}
