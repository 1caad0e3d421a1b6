package dto

import (
	"time"

	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/usecase"
)

// EnsureUserRequest represents a request to register a chat user.
type EnsureUserRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// CreditRequest represents a request to credit a balance.
type CreditRequest struct {
	UserID  string `json:"user_id"`
	Amount  int64  `json:"amount"`
	RefType string `json:"ref_type"`
	RefID   string `json:"ref_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CreditRequest) ToUseCaseInput() usecase.CreditInput {
	return usecase.CreditInput{
		UserID:  r.UserID,
		Amount:  r.Amount,
		RefType: r.RefType,
		RefID:   r.RefID,
	}
}

// DebitRequest represents a request to debit a balance.
type DebitRequest struct {
	UserID  string `json:"user_id"`
	Amount  int64  `json:"amount"`
	RefType string `json:"ref_type"`
	RefID   string `json:"ref_id"`
}

// ToUseCaseInput converts to use case input.
func (r *DebitRequest) ToUseCaseInput() usecase.DebitInput {
	return usecase.DebitInput{
		UserID:  r.UserID,
		Amount:  r.Amount,
		RefType: r.RefType,
		RefID:   r.RefID,
	}
}

// OpenWagerRequest represents a request to open a wager.
type OpenWagerRequest struct {
	OpenerID    string     `json:"opener_id"`
	Statement   string     `json:"statement"`
	OddsFor     int64      `json:"odds_for"`
	OddsAgainst int64      `json:"odds_against"`
	OpensAt     *time.Time `json:"opens_at,omitempty"`
	ClosesAt    time.Time  `json:"closes_at"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenWagerRequest) ToUseCaseInput() usecase.OpenWagerInput {
	input := usecase.OpenWagerInput{
		OpenerID:    r.OpenerID,
		Statement:   r.Statement,
		OddsFor:     r.OddsFor,
		OddsAgainst: r.OddsAgainst,
		ClosesAt:    r.ClosesAt,
	}
	if r.OpensAt != nil {
		input.OpensAt = *r.OpensAt
	}
	return input
}

// JoinWagerRequest represents a request to stake on a wager.
type JoinWagerRequest struct {
	UserID string `json:"user_id"`
	Side   string `json:"side"`
	Amount int64  `json:"amount"`
}

// ToUseCaseInput converts to use case input for the given wager.
func (r *JoinWagerRequest) ToUseCaseInput(wagerID string) usecase.JoinWagerInput {
	return usecase.JoinWagerInput{
		WagerID: wagerID,
		UserID:  r.UserID,
		Side:    domain.Side(r.Side),
		Amount:  r.Amount,
	}
}

// SettleWagerRequest represents a request to settle a wager.
type SettleWagerRequest struct {
	Outcome string `json:"outcome"`
}
