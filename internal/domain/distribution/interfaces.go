package distribution

import (
	"context"

	"github.com/ganot/quadfund/internal/domain/contribution"
	"github.com/ganot/quadfund/internal/domain/matching"
	"github.com/ganot/quadfund/internal/domain/proposal"
	"github.com/ganot/quadfund/internal/domain/round"
)

// Recorder persists emitted payout instructions together with the round's
// lifecycle transition, in one transaction.
type Recorder interface {
	Record(ctx context.Context, roundID string, from, to round.Status, payouts []Payout) error
	List(ctx context.Context, roundID string) ([]Payout, error)
}

// Bank is the external funds-custody collaborator. The engine trusts it to
// execute exactly the instructions it is handed.
type Bank interface {
	Send(ctx context.Context, payouts []Payout) error
}

// RoundRepository provides round lookups.
type RoundRepository interface {
	Get(ctx context.Context, id string) (*round.Round, error)
}

// ProposalRepository lists proposals in creation order.
type ProposalRepository interface {
	List(ctx context.Context, roundID string) ([]proposal.Proposal, error)
}

// ResultRepository fetches the matching result.
type ResultRepository interface {
	Get(ctx context.Context, roundID string) (*matching.Result, error)
}

// ContributionRepository lists a round's contributions for refunds.
type ContributionRepository interface {
	ListByRound(ctx context.Context, roundID string) ([]contribution.Contribution, error)
}
