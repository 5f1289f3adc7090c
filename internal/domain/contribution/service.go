package contribution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/quadfund/internal/domain/proposal"
	"github.com/ganot/quadfund/internal/domain/round"
	"github.com/ganot/quadfund/internal/repoerr"
)

// Service handles the contribution ledger.
type Service struct {
	repo      Repository
	rounds    RoundRepository
	proposals ProposalRepository
	clock     round.Clock
	policy    round.Policy
	logger    *slog.Logger
}

// NewService creates a new contribution service.
func NewService(repo Repository, rounds RoundRepository, proposals ProposalRepository, clock round.Clock, policy round.Policy, logger *slog.Logger) *Service {
	return &Service{repo: repo, rounds: rounds, proposals: proposals, clock: clock, policy: policy, logger: logger}
}

// Record accumulates a contribution into the contributor's running total and
// the proposal aggregate. The round must be open and the amount positive.
// With a contribution allowlist configured, only listed identities may
// contribute.
func (s *Service) Record(ctx context.Context, contributor string, roundID string, proposalID int64, amount int64) (*Contribution, error) {
	if err := s.policy.AuthorizeContributor(contributor); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	r, err := s.rounds.Get(ctx, roundID)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, round.ErrRoundNotFound
		}
		return nil, fmt.Errorf("getting round: %w", err)
	}
	now := s.clock.Now()
	if round.EffectiveStatus(r, now) != round.StatusOpen {
		return nil, round.ErrInvalidState
	}

	if _, err := s.proposals.Get(ctx, roundID, proposalID); err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, proposal.ErrProposalNotFound
		}
		return nil, fmt.Errorf("getting proposal: %w", err)
	}

	c, err := s.repo.Add(ctx, roundID, proposalID, contributor, amount, now)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("contribution recorded",
			"round", roundID, "proposal", proposalID, "contributor", contributor,
			"amount", amount, "total", c.Amount)
	}
	return c, nil
}

// Get returns the contributor's cumulative contribution to a proposal. An
// absent contributor yields a zero-amount record, not an error.
func (s *Service) Get(ctx context.Context, roundID string, proposalID int64, contributor string) (*Contribution, error) {
	c, err := s.repo.Get(ctx, roundID, proposalID, contributor)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return &Contribution{
				RoundID:     roundID,
				ProposalID:  proposalID,
				Contributor: contributor,
				Amount:      0,
				UpdatedAt:   time.Time{},
			}, nil
		}
		return nil, fmt.Errorf("getting contribution: %w", err)
	}
	return c, nil
}
