package domain

import (
	"fmt"
	"strings"
	"time"
)

// Validation constants
const (
	MaxStatementLength = 500
	MinStatementLength = 3
	MaxAmount          = 1_000_000_000 // single-operation cap
	MinOdds            = 1
	MaxOdds            = 100
	MaxUserIDLength    = 64
)

// ValidateAmount validates a currency amount for any balance-affecting
// operation. Amounts are whole units; there is no fractional currency.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > MaxAmount {
		return fmt.Errorf("%w: maximum amount is %d", ErrInvalidAmount, int64(MaxAmount))
	}
	return nil
}

// ValidateOdds validates a payout multiplier.
func ValidateOdds(odds int64) error {
	if odds < MinOdds || odds > MaxOdds {
		return fmt.Errorf("%w: odds must be between %d and %d", ErrInvalidOdds, MinOdds, MaxOdds)
	}
	return nil
}

// ValidateStatement validates the wager description.
func ValidateStatement(statement string) error {
	statement = strings.TrimSpace(statement)

	if len(statement) < MinStatementLength {
		return fmt.Errorf("%w: statement too short", ErrInvalidStatement)
	}
	if len(statement) > MaxStatementLength {
		return fmt.Errorf("%w: statement exceeds %d characters", ErrInvalidStatement, MaxStatementLength)
	}

	return nil
}

// ValidateWindow validates the open/close window of a wager.
func ValidateWindow(opensAt, closesAt time.Time) error {
	if !closesAt.After(opensAt) {
		return ErrInvalidWindow
	}
	return nil
}

// ValidateUserID validates a caller-supplied user identity.
func ValidateUserID(userID string) error {
	userID = strings.TrimSpace(userID)

	if userID == "" {
		return ErrInvalidUserID
	}
	if len(userID) > MaxUserIDLength {
		return fmt.Errorf("%w: id exceeds %d characters", ErrInvalidUserID, MaxUserIDLength)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
