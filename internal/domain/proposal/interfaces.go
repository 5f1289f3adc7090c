package proposal

import (
	"context"

	"github.com/ganot/quadfund/internal/domain/round"
)

// Repository provides persistence for proposals.
type Repository interface {
	Create(ctx context.Context, p *Proposal) error
	Get(ctx context.Context, roundID string, id int64) (*Proposal, error)
	List(ctx context.Context, roundID string) ([]Proposal, error)
}

// RoundRepository provides the round lookups and the proposal ID sequence.
type RoundRepository interface {
	Get(ctx context.Context, id string) (*round.Round, error)
	NextProposalSeq(ctx context.Context, roundID string) (int64, error)
}
