package domain

import "time"

// Participant is a user's stake on one side of a wager. Rows are unique on
// (WagerID, UserID, Side) and read-only once written; settlement derives
// payouts from them without mutating them.
type Participant struct {
	WagerID  string
	UserID   string
	Side     Side
	Amount   int64
	JoinedAt time.Time
}
