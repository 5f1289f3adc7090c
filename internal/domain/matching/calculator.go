package matching

import (
	"fmt"

	"github.com/ganot/quadfund/internal/domain/money"
)

// Calculate runs the quadratic-funding formula over a frozen contribution
// snapshot and splits the matching budget across proposals.
//
// For each proposal the raw score is (sum of floor square roots of the
// individual contributions) squared; the excess is the part of that score
// beyond what was actually donated, and the budget is divided proportionally
// to excess with flooring. The grant order decides nothing except which
// proposal a remainder would have gone to, and the remainder is never
// assigned: it is reported as Leftover.
//
// The function is pure and uses only checked 64-bit integer arithmetic with
// 128-bit intermediates, so identical inputs produce identical results on
// every platform.
func Calculate(budget int64, grants []Grant) (*Result, error) {
	if budget < 0 {
		return nil, fmt.Errorf("calculate: negative budget")
	}

	allocations := make([]Allocation, len(grants))
	var totalExcess int64
	for i, g := range grants {
		var sumRoots int64
		var sumAmounts int64
		for _, c := range g.Amounts {
			if c <= 0 {
				return nil, fmt.Errorf("calculate: non-positive contribution for proposal %d", g.ProposalID)
			}
			var err error
			sumRoots, err = money.Add(sumRoots, money.Isqrt(c))
			if err != nil {
				return nil, fmt.Errorf("calculate: proposal %d: %w", g.ProposalID, err)
			}
			sumAmounts, err = money.Add(sumAmounts, c)
			if err != nil {
				return nil, fmt.Errorf("calculate: proposal %d: %w", g.ProposalID, err)
			}
		}
		if g.Collected != sumAmounts {
			return nil, fmt.Errorf("calculate: proposal %d: collected %d does not match contributions %d",
				g.ProposalID, g.Collected, sumAmounts)
		}

		raw, err := money.Mul(sumRoots, sumRoots)
		if err != nil {
			return nil, fmt.Errorf("calculate: proposal %d: %w", g.ProposalID, err)
		}

		excess := int64(0)
		if raw > sumAmounts {
			excess = raw - sumAmounts
		}

		allocations[i] = Allocation{
			ProposalID: g.ProposalID,
			RawScore:   raw,
			Excess:     excess,
		}

		totalExcess, err = money.Add(totalExcess, excess)
		if err != nil {
			return nil, fmt.Errorf("calculate: total excess: %w", err)
		}
	}

	res := &Result{
		Budget:      budget,
		Allocations: allocations,
	}

	// No proposal rises above its own contributions: the whole budget stays
	// unallocated.
	if totalExcess == 0 {
		res.Leftover = budget
		return res, nil
	}

	var total int64
	for i := range allocations {
		match := money.MulDiv(allocations[i].Excess, budget, totalExcess)
		allocations[i].Match = match
		total += match
	}
	res.TotalAllocated = total
	res.Leftover = budget - total
	return res, nil
}
