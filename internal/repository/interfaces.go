package repository

import (
	"context"
	"time"

	"github.com/ganot/quadfund/internal/domain/contribution"
	"github.com/ganot/quadfund/internal/domain/distribution"
	"github.com/ganot/quadfund/internal/domain/matching"
	"github.com/ganot/quadfund/internal/domain/proposal"
	"github.com/ganot/quadfund/internal/domain/round"
)

// RoundRepository manages round persistence
type RoundRepository interface {
	Create(ctx context.Context, r *round.Round) error
	Get(ctx context.Context, id string) (*round.Round, error)
	UpdateStatus(ctx context.Context, id string, from, to round.Status) error
	NextProposalSeq(ctx context.Context, roundID string) (int64, error)
}

// ProposalRepository manages proposal persistence
type ProposalRepository interface {
	Create(ctx context.Context, p *proposal.Proposal) error
	Get(ctx context.Context, roundID string, id int64) (*proposal.Proposal, error)
	List(ctx context.Context, roundID string) ([]proposal.Proposal, error)
}

// ContributionRepository manages contribution persistence. Add accumulates
// into the contributor record and the proposal aggregate atomically.
type ContributionRepository interface {
	Add(ctx context.Context, roundID string, proposalID int64, contributor string, amount int64, now time.Time) (*contribution.Contribution, error)
	Get(ctx context.Context, roundID string, proposalID int64, contributor string) (*contribution.Contribution, error)
	ListByProposal(ctx context.Context, roundID string, proposalID int64) ([]contribution.Contribution, error)
	ListByRound(ctx context.Context, roundID string) ([]contribution.Contribution, error)
}

// ResultRepository manages matching result persistence
type ResultRepository interface {
	Save(ctx context.Context, from round.Status, res *matching.Result) error
	Get(ctx context.Context, roundID string) (*matching.Result, error)
}

// PayoutRepository records emitted payout instructions
type PayoutRepository interface {
	Record(ctx context.Context, roundID string, from, to round.Status, payouts []distribution.Payout) error
	List(ctx context.Context, roundID string) ([]distribution.Payout, error)
}
