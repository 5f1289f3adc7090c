package matching

import "time"

// Grant is the frozen contribution snapshot of one proposal: the individual
// contributor amounts (the formula is non-linear per contributor, so the
// aggregate alone is not enough) plus the aggregate they sum to.
type Grant struct {
	ProposalID int64
	Collected  int64
	Amounts    []int64
}

// Allocation is the calculator's output for one proposal.
type Allocation struct {
	ProposalID int64 `json:"proposal_id"`
	RawScore   int64 `json:"raw_score"`
	Excess     int64 `json:"excess"`
	Match      int64 `json:"match"`
}

// Result is the matching outcome for a round, written exactly once.
// Allocations are in proposal creation order; TotalAllocated never exceeds
// the budget and Leftover is the unallocated flooring remainder.
type Result struct {
	RoundID        string       `json:"round_id"`
	Budget         int64        `json:"budget"`
	Allocations    []Allocation `json:"allocations"`
	TotalAllocated int64        `json:"total_allocated"`
	Leftover       int64        `json:"leftover"`
	CalculatedAt   time.Time    `json:"calculated_at"`
}
