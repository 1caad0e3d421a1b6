package domain

import "time"

// Event types
const (
	EventTypeUserCreated     = "user.created"
	EventTypeBalanceCredited = "balance.credited"
	EventTypeBalanceDebited  = "balance.debited"
	EventTypeWagerOpened     = "wager.opened"
	EventTypeWagerJoined     = "wager.joined"
	EventTypeWagerClosed     = "wager.closed"
	EventTypeWagerSettled    = "wager.settled"
	EventTypeWagerVoided     = "wager.voided"
)

// Aggregate types
const (
	AggregateTypeUser    = "user"
	AggregateTypeBalance = "balance"
	AggregateTypeWager   = "wager"
)

// OutboxEvent represents an event to be published. Events are written in
// the same transaction as the state change they describe and pushed out by
// a polling publisher, so the chat layer can announce them without the
// engine ever calling the chat platform directly.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}
