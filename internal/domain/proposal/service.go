package proposal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ganot/quadfund/internal/domain/round"
	"github.com/ganot/quadfund/internal/repoerr"
)

// Service handles proposal registry operations.
type Service struct {
	repo   Repository
	rounds RoundRepository
	clock  round.Clock
	policy round.Policy
	logger *slog.Logger
}

// NewService creates a new proposal service.
func NewService(repo Repository, rounds RoundRepository, clock round.Clock, policy round.Policy, logger *slog.Logger) *Service {
	return &Service{repo: repo, rounds: rounds, clock: clock, policy: policy, logger: logger}
}

// CreateRequest defines proposal creation inputs.
type CreateRequest struct {
	RoundID       string
	Title         string
	Description   string
	Metadata      string
	FundRecipient string
}

// Create registers a new proposal in an open round. The assigned ID comes
// from the round's proposal sequence, so IDs reflect creation order. With a
// proposal allowlist configured, only listed identities may create.
func (s *Service) Create(ctx context.Context, caller string, req CreateRequest) (*Proposal, error) {
	if err := s.policy.AuthorizeProposer(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}
	recipient := strings.TrimSpace(req.FundRecipient)
	if recipient == "" {
		recipient = caller
	}

	r, err := s.getRound(ctx, req.RoundID)
	if err != nil {
		return nil, err
	}
	if round.EffectiveStatus(r, s.clock.Now()) != round.StatusOpen {
		return nil, round.ErrInvalidState
	}

	id, err := s.rounds.NextProposalSeq(ctx, req.RoundID)
	if err != nil {
		return nil, fmt.Errorf("allocating proposal id: %w", err)
	}

	p := &Proposal{
		RoundID:       req.RoundID,
		ID:            id,
		Creator:       caller,
		Title:         req.Title,
		Description:   req.Description,
		Metadata:      req.Metadata,
		FundRecipient: recipient,
		Collected:     0,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating proposal: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("proposal created", "round", p.RoundID, "proposal", p.ID, "creator", caller)
	}
	return p, nil
}

// Get fetches a proposal by round and ID.
func (s *Service) Get(ctx context.Context, roundID string, id int64) (*Proposal, error) {
	p, err := s.repo.Get(ctx, roundID, id)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("getting proposal: %w", err)
	}
	return p, nil
}

// List returns the round's proposals in creation order.
func (s *Service) List(ctx context.Context, roundID string) ([]Proposal, error) {
	if _, err := s.getRound(ctx, roundID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, roundID)
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
