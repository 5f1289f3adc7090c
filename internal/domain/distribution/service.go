package distribution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganot/quadfund/internal/domain/round"
	"github.com/ganot/quadfund/internal/repoerr"
)

// Service converts calculated matches into payout instructions and handles
// round cancellation refunds.
type Service struct {
	recorder      Recorder
	bank          Bank
	rounds        RoundRepository
	proposals     ProposalRepository
	results       ResultRepository
	contributions ContributionRepository
	clock         round.Clock
	policy        round.Policy
	logger        *slog.Logger
}

// NewService creates a new distribution service.
func NewService(recorder Recorder, bank Bank, rounds RoundRepository, proposals ProposalRepository, results ResultRepository, contributions ContributionRepository, clock round.Clock, policy round.Policy, logger *slog.Logger) *Service {
	return &Service{
		recorder:      recorder,
		bank:          bank,
		rounds:        rounds,
		proposals:     proposals,
		results:       results,
		contributions: contributions,
		clock:         clock,
		policy:        policy,
		logger:        logger,
	}
}

// Distribute emits the payout instructions for a calculated round exactly
// once and moves the round to DISTRIBUTED. The instruction set is constructed
// in full before anything is recorded or handed to the bank.
//
// The recorded instructions are the source of truth: once the transition
// commits the round stays DISTRIBUTED even if the bank hand-off fails, and
// the caller recovers by redelivering the ListPayouts set. Sending before
// recording would instead risk a double hand-off when two distributes race.
func (s *Service) Distribute(ctx context.Context, caller string, roundID string) ([]Payout, error) {
	r, err := s.getRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(caller); err != nil {
		return nil, err
	}
	if err := round.ValidateTransition(r.Status, round.StatusDistributed); err != nil {
		return nil, err
	}

	res, err := s.results.Get(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("getting matching result: %w", err)
	}
	proposals, err := s.proposals.List(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("listing proposals: %w", err)
	}

	payouts, err := Build(roundID, proposals, res, s.policy.LeftoverRecipient)
	if err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, roundID, r.Status, round.StatusDistributed, payouts); err != nil {
		if errors.Is(err, repoerr.ErrConflict) {
			return nil, round.ErrAlreadyDistributed
		}
		return nil, fmt.Errorf("recording payouts: %w", err)
	}

	if err := s.bank.Send(ctx, payouts); err != nil {
		if s.logger != nil {
			s.logger.Error("bank hand-off failed; payouts recorded for redelivery",
				"round", roundID, "error", err)
		}
		return nil, fmt.Errorf("handing payouts to bank (instructions recorded, redeliver via list_payouts): %w", err)
	}

	if s.logger != nil {
		s.logger.Info("round distributed", "round", roundID, "payouts", len(payouts))
	}
	return payouts, nil
}

// Cancel aborts a pending or open round. No calculation or distribution ever
// happens for a cancelled round; held contributions are reported to the bank
// as refund instructions.
func (s *Service) Cancel(ctx context.Context, caller string, roundID string) ([]Payout, error) {
	r, err := s.getRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(caller); err != nil {
		return nil, err
	}
	if err := round.ValidateTransition(r.Status, round.StatusCancelled); err != nil {
		return nil, err
	}
	// A round past its end time is effectively closed and can no longer be
	// cancelled, even if nothing persisted the close yet.
	if round.EffectiveStatus(r, s.clock.Now()) == round.StatusClosed {
		return nil, round.ErrInvalidState
	}

	contribs, err := s.contributions.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("listing contributions: %w", err)
	}
	refunds := Refunds(roundID, contribs)

	if err := s.recorder.Record(ctx, roundID, r.Status, round.StatusCancelled, refunds); err != nil {
		if errors.Is(err, repoerr.ErrConflict) {
			return nil, round.ErrInvalidState
		}
		return nil, fmt.Errorf("recording refunds: %w", err)
	}

	if len(refunds) > 0 {
		if err := s.bank.Send(ctx, refunds); err != nil {
			return nil, fmt.Errorf("handing refunds to bank: %w", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("round cancelled", "round", roundID, "refunds", len(refunds))
	}
	return refunds, nil
}

// ListPayouts returns the recorded payout instructions for a round.
func (s *Service) ListPayouts(ctx context.Context, roundID string) ([]Payout, error) {
	if _, err := s.getRound(ctx, roundID); err != nil {
		return nil, err
	}
	return s.recorder.List(ctx, roundID)
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
