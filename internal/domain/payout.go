package domain

import "github.com/shopspring/decimal"

// Disposition describes how a participant's escrowed stake is released at
// settlement time.
type Disposition string

const (
	// DispositionRefund returns the stake to the spendable balance.
	DispositionRefund Disposition = "refund"
	// DispositionPayout returns the stake plus winnings.
	DispositionPayout Disposition = "payout"
	// DispositionForfeit removes the stake from escrow without returning it.
	DispositionForfeit Disposition = "forfeit"
)

// Payout is the derived settlement result for one participant. Stake is the
// amount released from escrow; Winnings is the additional amount credited on
// top of the stake (zero unless Disposition is DispositionPayout).
type Payout struct {
	UserID      string
	Side        Side
	Stake       int64
	Winnings    int64
	Disposition Disposition
}

// ComputePayouts derives the settlement results for a wager.
//
// A void outcome refunds every stake. Otherwise each winner receives its
// stake back plus a share of the losing pool proportional to its fraction of
// the winning pool, multiplied by the odds configured at wager creation.
// Division truncates toward zero; the leftover of the multiplied losing pool
// goes to the largest single winning stake (ties broken by earliest join,
// then user id) so that the distributed winnings always sum to
// losingPool * multiplier exactly.
//
// If the winning side has no participants there is nobody to pay, so every
// stake on the other side is refunded instead of forfeited.
func ComputePayouts(w *Wager, participants []*Participant, outcome Outcome) []Payout {
	payouts := make([]Payout, 0, len(participants))

	if outcome == OutcomeVoid {
		for _, p := range participants {
			payouts = append(payouts, Payout{
				UserID:      p.UserID,
				Side:        p.Side,
				Stake:       p.Amount,
				Disposition: DispositionRefund,
			})
		}
		return payouts
	}

	winningSide := outcome.WinningSide()

	var winningPool, losingPool int64
	for _, p := range participants {
		if p.Side == winningSide {
			winningPool += p.Amount
		} else {
			losingPool += p.Amount
		}
	}

	// One-sided wager: no counterparty ever joined, so the outcome cannot
	// forfeit anyone. Refund all stakes.
	if winningPool == 0 {
		for _, p := range participants {
			payouts = append(payouts, Payout{
				UserID:      p.UserID,
				Side:        p.Side,
				Stake:       p.Amount,
				Disposition: DispositionRefund,
			})
		}
		return payouts
	}

	pot := decimal.NewFromInt(losingPool).Mul(decimal.NewFromInt(w.OddsMultiplier(outcome)))
	pool := decimal.NewFromInt(winningPool)

	var (
		distributed  int64
		largestIdx   = -1
		largestStake int64
	)

	for _, p := range participants {
		if p.Side != winningSide {
			payouts = append(payouts, Payout{
				UserID:      p.UserID,
				Side:        p.Side,
				Stake:       p.Amount,
				Disposition: DispositionForfeit,
			})
			continue
		}

		// winnings = trunc(stake * pot / winningPool), exact integer division.
		share, _ := decimal.NewFromInt(p.Amount).Mul(pot).QuoRem(pool, 0)
		winnings := share.IntPart()

		payouts = append(payouts, Payout{
			UserID:      p.UserID,
			Side:        p.Side,
			Stake:       p.Amount,
			Winnings:    winnings,
			Disposition: DispositionPayout,
		})
		distributed += winnings

		// Participants arrive ordered by join time, so a strict comparison
		// keeps the earliest largest stake.
		if largestIdx < 0 || p.Amount > largestStake {
			largestIdx = len(payouts) - 1
			largestStake = p.Amount
		}
	}

	if remainder := pot.IntPart() - distributed; remainder > 0 && largestIdx >= 0 {
		payouts[largestIdx].Winnings += remainder
	}

	return payouts
}
