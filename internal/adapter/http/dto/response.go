package dto

import (
	"time"

	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// BalanceResponse represents a balance aggregate in API responses.
type BalanceResponse struct {
	UserID         string    `json:"user_id"`
	Current        int64     `json:"current"`
	Escrow         int64     `json:"escrow"`
	NetWorth       int64     `json:"net_worth"`
	LifetimeEarned int64     `json:"lifetime_earned"`
	LifetimeSpent  int64     `json:"lifetime_spent"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BalanceFromDomain converts a domain balance to a response.
func BalanceFromDomain(b *domain.Balance) *BalanceResponse {
	return &BalanceResponse{
		UserID:         b.UserID,
		Current:        b.Current,
		Escrow:         b.Escrow,
		NetWorth:       b.Current + b.Escrow,
		LifetimeEarned: b.LifetimeEarned,
		LifetimeSpent:  b.LifetimeSpent,
		UpdatedAt:      b.UpdatedAt,
	}
}

// BalancesFromDomain converts domain balances to responses.
func BalancesFromDomain(balances []*domain.Balance) []*BalanceResponse {
	result := make([]*BalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = BalanceFromDomain(b)
	}
	return result
}

// EnsureUserResponse represents the result of registering a user.
type EnsureUserResponse struct {
	User    *UserResponse    `json:"user"`
	Balance *BalanceResponse `json:"balance"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Amount    int64     `json:"amount"`
	RefType   string    `json:"ref_type"`
	RefID     string    `json:"ref_id"`
	CreatedAt time.Time `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Type:      string(e.Type),
		Amount:    e.Amount,
		RefType:   e.RefType,
		RefID:     e.RefID,
		CreatedAt: e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps a page of ledger entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// WagerResponse represents a wager in API responses.
type WagerResponse struct {
	ID           string     `json:"id"`
	OpenerID     string     `json:"opener_id"`
	Statement    string     `json:"statement"`
	OddsFor      int64      `json:"odds_for"`
	OddsAgainst  int64      `json:"odds_against"`
	Status       string     `json:"status"`
	TotalFor     int64      `json:"total_for"`
	TotalAgainst int64      `json:"total_against"`
	OpensAt      time.Time  `json:"opens_at"`
	ClosesAt     time.Time  `json:"closes_at"`
	SettledAt    *time.Time `json:"settled_at,omitempty"`
	Outcome      *string    `json:"outcome,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// WagerFromDomain converts a domain wager to a response.
func WagerFromDomain(w *domain.Wager) *WagerResponse {
	resp := &WagerResponse{
		ID:           w.ID,
		OpenerID:     w.OpenerID,
		Statement:    w.Statement,
		OddsFor:      w.OddsFor,
		OddsAgainst:  w.OddsAgainst,
		Status:       string(w.Status),
		TotalFor:     w.TotalFor,
		TotalAgainst: w.TotalAgainst,
		OpensAt:      w.OpensAt,
		ClosesAt:     w.ClosesAt,
		SettledAt:    w.SettledAt,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
	if w.Outcome != nil {
		o := string(*w.Outcome)
		resp.Outcome = &o
	}
	return resp
}

// WagersFromDomain converts domain wagers to responses.
func WagersFromDomain(wagers []*domain.Wager) []*WagerResponse {
	result := make([]*WagerResponse, len(wagers))
	for i, w := range wagers {
		result[i] = WagerFromDomain(w)
	}
	return result
}

// ListWagersResponse wraps a page of wagers.
type ListWagersResponse struct {
	Wagers []*WagerResponse `json:"wagers"`
	Total  int64            `json:"total"`
}

// ParticipantResponse represents a participant in API responses.
type ParticipantResponse struct {
	WagerID  string    `json:"wager_id"`
	UserID   string    `json:"user_id"`
	Side     string    `json:"side"`
	Amount   int64     `json:"amount"`
	JoinedAt time.Time `json:"joined_at"`
}

// ParticipantFromDomain converts a domain participant to a response.
func ParticipantFromDomain(p *domain.Participant) *ParticipantResponse {
	return &ParticipantResponse{
		WagerID:  p.WagerID,
		UserID:   p.UserID,
		Side:     string(p.Side),
		Amount:   p.Amount,
		JoinedAt: p.JoinedAt,
	}
}

// ParticipantsFromDomain converts domain participants to responses.
func ParticipantsFromDomain(participants []*domain.Participant) []*ParticipantResponse {
	result := make([]*ParticipantResponse, len(participants))
	for i, p := range participants {
		result[i] = ParticipantFromDomain(p)
	}
	return result
}

// PayoutResponse represents one participant's settlement result.
type PayoutResponse struct {
	UserID      string `json:"user_id"`
	Side        string `json:"side"`
	Stake       int64  `json:"stake"`
	Winnings    int64  `json:"winnings"`
	Disposition string `json:"disposition"`
}

// SettlementResponse represents the result of settling a wager.
type SettlementResponse struct {
	Wager   *WagerResponse    `json:"wager"`
	Payouts []*PayoutResponse `json:"payouts"`
}

// SettlementFromResult converts a settlement result to a response.
func SettlementFromResult(result *usecase.SettlementResult) *SettlementResponse {
	payouts := make([]*PayoutResponse, len(result.Payouts))
	for i, p := range result.Payouts {
		payouts[i] = &PayoutResponse{
			UserID:      p.UserID,
			Side:        string(p.Side),
			Stake:       p.Stake,
			Winnings:    p.Winnings,
			Disposition: string(p.Disposition),
		}
	}
	return &SettlementResponse{
		Wager:   WagerFromDomain(result.Wager),
		Payouts: payouts,
	}
}

// SweepResponse reports how many expired wagers were closed.
type SweepResponse struct {
	Closed int `json:"closed"`
}

// ReconciliationResponse represents a reconciliation check result.
type ReconciliationResponse struct {
	UserID      string    `json:"user_id"`
	Current     int64     `json:"current"`
	Escrow      int64     `json:"escrow"`
	NetWorth    int64     `json:"net_worth"`
	LedgerSum   int64     `json:"ledger_sum"`
	LifetimeNet int64     `json:"lifetime_net"`
	Reconciled  bool      `json:"reconciled"`
	CheckedAt   time.Time `json:"checked_at"`
}

// ReconciliationFromResult converts a reconciliation result to a response.
func ReconciliationFromResult(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		UserID:      r.UserID,
		Current:     r.Current,
		Escrow:      r.Escrow,
		NetWorth:    r.NetWorth,
		LedgerSum:   r.LedgerSum,
		LifetimeNet: r.LifetimeNet,
		Reconciled:  r.Reconciled,
		CheckedAt:   r.CheckedAt,
	}
}

// ReconcileAllResponse wraps a full reconciliation run.
type ReconcileAllResponse struct {
	Mismatches []*ReconciliationResponse `json:"mismatches"`
	Clean      bool                      `json:"clean"`
}
