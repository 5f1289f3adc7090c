package contribution

import (
	"context"
	"time"

	"github.com/ganot/quadfund/internal/domain/proposal"
	"github.com/ganot/quadfund/internal/domain/round"
)

// Repository provides persistence for contributions. Add accumulates the
// amount into the contributor's record and the proposal aggregate in one
// transaction, rejecting the whole operation when either checked addition
// would overflow.
type Repository interface {
	Add(ctx context.Context, roundID string, proposalID int64, contributor string, amount int64, now time.Time) (*Contribution, error)
	Get(ctx context.Context, roundID string, proposalID int64, contributor string) (*Contribution, error)
	ListByProposal(ctx context.Context, roundID string, proposalID int64) ([]Contribution, error)
	ListByRound(ctx context.Context, roundID string) ([]Contribution, error)
}

// RoundRepository provides round lookups for lifecycle gating.
type RoundRepository interface {
	Get(ctx context.Context, id string) (*round.Round, error)
}

// ProposalRepository provides proposal existence checks.
type ProposalRepository interface {
	Get(ctx context.Context, roundID string, id int64) (*proposal.Proposal, error)
}
