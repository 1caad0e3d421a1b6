package domain

import "time"

// EntryType classifies a ledger entry. The sign of the balance effect is
// implied by the type; Amount itself is always positive.
type EntryType string

const (
	EntryTypeEarn      EntryType = "earn"
	EntryTypeSpend     EntryType = "spend"
	EntryTypeEscrowIn  EntryType = "escrow_in"
	EntryTypeEscrowOut EntryType = "escrow_out"
	EntryTypeRefund    EntryType = "refund"
	EntryTypePayout    EntryType = "payout"
	EntryTypeVoid      EntryType = "void"
)

// Reference types used as the first half of an idempotency key.
const (
	RefTypeWager   = "wager"
	RefTypeSignup  = "signup"
	RefTypeCommand = "command"
)

// Entry is an immutable, append-only record of a single balance-affecting
// event. Entries are never updated or deleted; replaying the same
// (userID, refType, refID, type) tuple is a no-op.
type Entry struct {
	ID        string
	UserID    string
	Type      EntryType
	Amount    int64
	RefType   string
	RefID     string
	CreatedAt time.Time
}

// SignedAmount returns the entry's effect on the user's net worth
// (spendable plus escrowed funds). Bucket moves between the two are neutral.
func (e *Entry) SignedAmount() int64 {
	switch e.Type {
	case EntryTypeEarn, EntryTypePayout:
		return e.Amount
	case EntryTypeSpend, EntryTypeVoid:
		return -e.Amount
	default:
		// escrow_in, escrow_out, refund move funds between buckets.
		return 0
	}
}
