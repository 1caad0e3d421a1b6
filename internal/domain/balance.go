package domain

import "time"

// Balance is the per-user aggregate of spendable and escrowed funds.
// It is a denormalized view over the ledger; the Escrow Controller is the
// only component allowed to mutate it.
type Balance struct {
	UserID         string
	Current        int64
	Escrow         int64
	LifetimeEarned int64
	LifetimeSpent  int64
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidateDebit checks that amount can be taken from the spendable balance.
func (b *Balance) ValidateDebit(amount int64) error {
	if b.Current < amount {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateEscrowRelease checks that amount is actually held in escrow.
// Failing this check means the aggregate is corrupted, not that the caller
// made a recoverable mistake.
func (b *Balance) ValidateEscrowRelease(amount int64) error {
	if b.Escrow < amount {
		return ErrEscrowUnderflow
	}
	return nil
}
