package distribution

import (
	"fmt"

	"github.com/ganot/quadfund/internal/domain/contribution"
	"github.com/ganot/quadfund/internal/domain/matching"
	"github.com/ganot/quadfund/internal/domain/money"
	"github.com/ganot/quadfund/internal/domain/proposal"
)

// Build constructs the full payout instruction set for a calculated round:
// one grant per proposal with anything to pay out (collected plus match), and
// a leftover instruction when the flooring remainder is positive and a
// recipient is configured. Pure; either the whole set is produced or none is.
func Build(roundID string, proposals []proposal.Proposal, res *matching.Result, leftoverRecipient string) ([]Payout, error) {
	matches := make(map[int64]int64, len(res.Allocations))
	for _, a := range res.Allocations {
		matches[a.ProposalID] = a.Match
	}

	payouts := make([]Payout, 0, len(proposals)+1)
	for _, p := range proposals {
		match, ok := matches[p.ID]
		if !ok {
			return nil, fmt.Errorf("build payouts: no allocation for proposal %d", p.ID)
		}
		amount, err := money.Add(p.Collected, match)
		if err != nil {
			return nil, fmt.Errorf("build payouts: proposal %d: %w", p.ID, err)
		}
		if amount == 0 {
			continue
		}
		id := p.ID
		payouts = append(payouts, Payout{
			RoundID:    roundID,
			Kind:       KindGrant,
			ProposalID: &id,
			Recipient:  p.FundRecipient,
			Amount:     amount,
		})
	}

	if res.Leftover > 0 && leftoverRecipient != "" {
		payouts = append(payouts, Payout{
			RoundID:   roundID,
			Kind:      KindLeftover,
			Recipient: leftoverRecipient,
			Amount:    res.Leftover,
		})
	}

	return payouts, nil
}

// Refunds constructs one refund instruction per contributor record of a
// cancelled round.
func Refunds(roundID string, contribs []contribution.Contribution) []Payout {
	payouts := make([]Payout, 0, len(contribs))
	for _, c := range contribs {
		id := c.ProposalID
		payouts = append(payouts, Payout{
			RoundID:    roundID,
			Kind:       KindRefund,
			ProposalID: &id,
			Recipient:  c.Contributor,
			Amount:     c.Amount,
		})
	}
	return payouts
}
