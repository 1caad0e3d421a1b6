package domain

import "time"

// WagerStatus is the lifecycle state of a betting market. Status only
// advances forward: open -> closed -> settled|void.
type WagerStatus string

const (
	WagerStatusOpen    WagerStatus = "open"
	WagerStatusClosed  WagerStatus = "closed"
	WagerStatusSettled WagerStatus = "settled"
	WagerStatusVoid    WagerStatus = "void"
)

// Side identifies which half of a wager a stake backs.
type Side string

const (
	SideFor     Side = "for"
	SideAgainst Side = "against"
)

// IsValid checks if the side is a known side.
func (s Side) IsValid() bool {
	return s == SideFor || s == SideAgainst
}

// Opposite returns the other side of the wager.
func (s Side) Opposite() Side {
	if s == SideFor {
		return SideAgainst
	}
	return SideFor
}

// Outcome is the resolution of a wager.
type Outcome string

const (
	OutcomeFor     Outcome = "for"
	OutcomeAgainst Outcome = "against"
	OutcomeVoid    Outcome = "void"
)

// IsValid checks if the outcome is a known outcome.
func (o Outcome) IsValid() bool {
	return o == OutcomeFor || o == OutcomeAgainst || o == OutcomeVoid
}

// WinningSide returns the side paid by this outcome. Only meaningful for
// non-void outcomes.
func (o Outcome) WinningSide() Side {
	if o == OutcomeAgainst {
		return SideAgainst
	}
	return SideFor
}

// Wager is a betting market with two sides and a close time. TotalFor and
// TotalAgainst mirror the sum of participant stakes on each side and are
// maintained under the wager row lock.
type Wager struct {
	ID           string
	OpenerID     string
	Statement    string
	OddsFor      int64
	OddsAgainst  int64
	Status       WagerStatus
	TotalFor     int64
	TotalAgainst int64
	OpensAt      time.Time
	ClosesAt     time.Time
	SettledAt    *time.Time
	Outcome      *Outcome
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanJoin checks whether a new participant may join at the given time.
func (w *Wager) CanJoin(now time.Time) error {
	if w.Status != WagerStatusOpen {
		return ErrWagerClosed
	}
	if !now.Before(w.ClosesAt) {
		return ErrWagerClosed
	}
	return nil
}

// CanSettle checks whether the wager is eligible for settlement.
func (w *Wager) CanSettle() error {
	switch w.Status {
	case WagerStatusSettled, WagerStatusVoid:
		return ErrAlreadySettled
	case WagerStatusOpen:
		return ErrWagerNotClosed
	}
	return nil
}

// OddsMultiplier returns the payout multiplier configured for the winning
// side of the given outcome.
func (w *Wager) OddsMultiplier(outcome Outcome) int64 {
	if outcome.WinningSide() == SideAgainst {
		return w.OddsAgainst
	}
	return w.OddsFor
}

// PoolTotal returns the running pool total for one side.
func (w *Wager) PoolTotal(side Side) int64 {
	if side == SideAgainst {
		return w.TotalAgainst
	}
	return w.TotalFor
}
