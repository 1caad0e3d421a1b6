package usecase

import (
	"context"
	"time"

	"github.com/clankbot/wagerbank/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	// UpsertTx inserts the user if it does not exist yet. It reports
	// whether a new row was created.
	UpsertTx(ctx context.Context, tx Transaction, user *domain.User) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// BalanceRepository defines data access for balance aggregates. All writes
// go through the Escrow Controller; no other component may call UpdateTx.
type BalanceRepository interface {
	CreateTx(ctx context.Context, tx Transaction, balance *domain.Balance) error
	GetByUserID(ctx context.Context, userID string) (*domain.Balance, error)
	GetByUserIDForUpdate(ctx context.Context, tx Transaction, userID string) (*domain.Balance, error)
	// GetByUserIDsForUpdate locks multiple rows ordered by user id so that
	// concurrent settlements acquire locks in the same global order.
	GetByUserIDsForUpdate(ctx context.Context, tx Transaction, userIDs []string) ([]*domain.Balance, error)
	UpdateTx(ctx context.Context, tx Transaction, balance *domain.Balance, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Balance, error)
}

// EntryRepository defines data access for ledger entries. Entries are
// append-only; there are no update or delete operations.
type EntryRepository interface {
	CreateTx(ctx context.Context, tx Transaction, entry *domain.Entry) error
	ExistsByRefTx(ctx context.Context, tx Transaction, userID, refType, refID string, entryType domain.EntryType) (bool, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Entry, error)
	// SignedSumByUser returns the net-worth effect of all entries for the
	// user, used for reconciliation against the balance aggregate.
	SignedSumByUser(ctx context.Context, userID string) (int64, error)
}

// WagerRepository defines data access for wagers.
type WagerRepository interface {
	CreateTx(ctx context.Context, tx Transaction, wager *domain.Wager) error
	GetByID(ctx context.Context, id string) (*domain.Wager, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Wager, error)
	AddStakeTx(ctx context.Context, tx Transaction, id string, side domain.Side, amount int64, updatedAt time.Time) error
	UpdateStatusTx(ctx context.Context, tx Transaction, id string, status domain.WagerStatus, updatedAt time.Time) error
	SettleTx(ctx context.Context, tx Transaction, id string, status domain.WagerStatus, outcome *domain.Outcome, settledAt time.Time) error
	ListByStatus(ctx context.Context, status domain.WagerStatus, limit, offset int) ([]*domain.Wager, error)
	// ListOpenPastClose returns open wagers whose close time has passed,
	// keyset-paginated by id for restartable iteration.
	ListOpenPastClose(ctx context.Context, now time.Time, afterID string, limit int) ([]*domain.Wager, error)
}

// ParticipantRepository defines data access for wager participants.
type ParticipantRepository interface {
	CreateTx(ctx context.Context, tx Transaction, participant *domain.Participant) error
	ExistsTx(ctx context.Context, tx Transaction, wagerID, userID string, side domain.Side) (bool, error)
	ListByWagerTx(ctx context.Context, tx Transaction, wagerID string) ([]*domain.Participant, error)
	ListByWager(ctx context.Context, wagerID string) ([]*domain.Participant, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Participant, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	CreateTx(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation when it fails with a transient database
// error such as a deadlock or serialization failure.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache is a string key/value cache with expiry, used for hot read paths.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage for the command layer.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
