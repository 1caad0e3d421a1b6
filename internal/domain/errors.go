package domain

import "errors"

var (
	// Validation errors
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidOdds      = errors.New("odds must be within the allowed range")
	ErrInvalidStatement = errors.New("invalid wager statement")
	ErrInvalidWindow    = errors.New("wager must close after it opens")
	ErrInvalidSide      = errors.New("invalid wager side")
	ErrInvalidOutcome   = errors.New("invalid wager outcome")
	ErrInvalidUserID    = errors.New("invalid user id")
	ErrInvalidReference = errors.New("ledger reference must not be empty")

	// Not-found errors
	ErrUserNotFound    = errors.New("user not found")
	ErrBalanceNotFound = errors.New("balance not found")
	ErrWagerNotFound   = errors.New("wager not found")

	// Conflict errors
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrDuplicateParticipation = errors.New("user already joined this side of the wager")
	ErrWagerClosed            = errors.New("wager is closed to new participants")
	ErrWagerNotClosed         = errors.New("wager must be closed before settlement")
	ErrAlreadySettled         = errors.New("wager is already settled")
	ErrDuplicateEntry         = errors.New("ledger entry already applied for this reference")

	// Invariant violations. These indicate corrupted state and abort the
	// enclosing transaction.
	ErrEscrowUnderflow = errors.New("escrow balance underflow")
	ErrLedgerMismatch  = errors.New("ledger does not reconcile with balance aggregate")
)
