package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganot/quadfund/internal/domain/round"
	"github.com/ganot/quadfund/internal/repoerr"
)

// Service runs the matching calculation as a lifecycle transition.
type Service struct {
	repo          Repository
	rounds        RoundRepository
	proposals     ProposalRepository
	contributions ContributionRepository
	clock         round.Clock
	policy        round.Policy
	logger        *slog.Logger
}

// NewService creates a new matching service.
func NewService(repo Repository, rounds RoundRepository, proposals ProposalRepository, contributions ContributionRepository, clock round.Clock, policy round.Policy, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		rounds:        rounds,
		proposals:     proposals,
		contributions: contributions,
		clock:         clock,
		policy:        policy,
		logger:        logger,
	}
}

// Finalize runs the calculator exactly once over the closed round's frozen
// contribution snapshot and moves the round to CALCULATED. An open round
// whose end time has passed closes as part of the same action.
func (s *Service) Finalize(ctx context.Context, caller string, roundID string) (*Result, error) {
	r, err := s.getRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(caller); err != nil {
		return nil, err
	}
	if round.EffectiveStatus(r, s.clock.Now()) != round.StatusClosed {
		if err := round.ValidateTransition(r.Status, round.StatusCalculated); err != nil {
			return nil, err
		}
		return nil, round.ErrInvalidState
	}

	proposals, err := s.proposals.List(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("listing proposals: %w", err)
	}

	grants := make([]Grant, 0, len(proposals))
	for _, p := range proposals {
		contribs, err := s.contributions.ListByProposal(ctx, roundID, p.ID)
		if err != nil {
			return nil, fmt.Errorf("listing contributions for proposal %d: %w", p.ID, err)
		}
		amounts := make([]int64, 0, len(contribs))
		for _, c := range contribs {
			amounts = append(amounts, c.Amount)
		}
		grants = append(grants, Grant{
			ProposalID: p.ID,
			Collected:  p.Collected,
			Amounts:    amounts,
		})
	}

	res, err := Calculate(r.Budget, grants)
	if err != nil {
		return nil, err
	}
	res.RoundID = roundID
	res.CalculatedAt = s.clock.Now()

	// r.Status is the persisted status; the guarded save rejects a second
	// finalize even if it raced this read.
	if err := s.repo.Save(ctx, r.Status, res); err != nil {
		if errors.Is(err, repoerr.ErrConflict) {
			return nil, round.ErrAlreadyFinalized
		}
		return nil, fmt.Errorf("saving matching result: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("round finalized",
			"round", roundID, "allocated", res.TotalAllocated, "leftover", res.Leftover,
			"proposals", len(res.Allocations))
	}
	return res, nil
}

// GetResult fetches the matching result for a calculated round. A round that
// exists but has not been finalized yet is an invalid-state error, not a
// missing round.
func (s *Service) GetResult(ctx context.Context, roundID string) (*Result, error) {
	res, err := s.repo.Get(ctx, roundID)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			if _, rerr := s.getRound(ctx, roundID); rerr != nil {
				return nil, rerr
			}
			return nil, round.ErrInvalidState
		}
		return nil, fmt.Errorf("getting matching result: %w", err)
	}
	return res, nil
}

func (s *Service) getRound(ctx context.Context, roundID string) (*round.Round, error) {
	r, err := s.rounds.Get(ctx, roundID)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, round.ErrRoundNotFound
		}
		return nil, fmt.Errorf("getting round: %w", err)
	}
	return r, nil
}
