package matching

import (
	"context"

	"github.com/ganot/quadfund/internal/domain/contribution"
	"github.com/ganot/quadfund/internal/domain/proposal"
	"github.com/ganot/quadfund/internal/domain/round"
)

// Repository provides persistence for matching results. Save writes the
// result, the per-proposal match amounts, and the round's transition to
// CALCULATED in one transaction; a result can only ever be written once.
type Repository interface {
	Save(ctx context.Context, from round.Status, res *Result) error
	Get(ctx context.Context, roundID string) (*Result, error)
}

// RoundRepository provides round lookups.
type RoundRepository interface {
	Get(ctx context.Context, id string) (*round.Round, error)
}

// ProposalRepository lists proposals in creation order.
type ProposalRepository interface {
	List(ctx context.Context, roundID string) ([]proposal.Proposal, error)
}

// ContributionRepository lists the individual contributor amounts.
type ContributionRepository interface {
	ListByProposal(ctx context.Context, roundID string, proposalID int64) ([]contribution.Contribution, error)
}
