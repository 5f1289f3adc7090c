package round

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/quadfund/internal/repoerr"
	"github.com/google/uuid"
)

// Service handles round lifecycle operations.
type Service struct {
	repo   Repository
	clock  Clock
	policy Policy
	logger *slog.Logger
}

// NewService creates a new round service.
func NewService(repo Repository, clock Clock, policy Policy, logger *slog.Logger) *Service {
	return &Service{repo: repo, clock: clock, policy: policy, logger: logger}
}

// InstantiateRequest defines round creation inputs.
type InstantiateRequest struct {
	Budget   int64
	StartAt  time.Time
	EndAt    time.Time
	Metadata string
}

// Instantiate creates a new round. When the open-on-create policy is set and
// the start time has already been reached, the round opens immediately.
func (s *Service) Instantiate(ctx context.Context, caller string, req InstantiateRequest) (*Round, error) {
	if req.Budget <= 0 {
		return nil, ErrInvalidInput
	}
	if !req.EndAt.After(req.StartAt) {
		return nil, ErrInvalidInput
	}
	now := s.clock.Now()
	if !req.EndAt.After(now) {
		return nil, ErrInvalidInput
	}

	status := StatusPending
	if s.policy.OpenOnCreate && !now.Before(req.StartAt) {
		status = StatusOpen
	}

	r := &Round{
		ID:        uuid.NewString(),
		Budget:    req.Budget,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		Status:    status,
		Metadata:  req.Metadata,
		CreatedAt: now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("creating round: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("round instantiated", "round", r.ID, "budget", r.Budget, "status", r.Status, "caller", caller)
	}
	return r, nil
}

// Activate moves a pending round to open once its start time is reached.
func (s *Service) Activate(ctx context.Context, caller string, id string) (*Round, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(caller); err != nil {
		return nil, err
	}
	if err := ValidateTransition(r.Status, StatusOpen); err != nil {
		return nil, err
	}
	if s.clock.Now().Before(r.StartAt) {
		return nil, ErrInvalidState
	}

	if err := s.repo.UpdateStatus(ctx, id, r.Status, StatusOpen); err != nil {
		return nil, fmt.Errorf("activating round: %w", err)
	}
	r.Status = StatusOpen
	return r, nil
}

// Close moves an open round to closed. Before the round's end time this is an
// early close and requires the policy to permit it.
func (s *Service) Close(ctx context.Context, caller string, id string) (*Round, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(r.Status, StatusClosed); err != nil {
		return nil, err
	}

	if s.clock.Now().Before(r.EndAt) {
		if !s.policy.AllowEarlyClose {
			return nil, ErrInvalidState
		}
		if err := s.policy.Authorize(caller); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateStatus(ctx, id, r.Status, StatusClosed); err != nil {
		return nil, fmt.Errorf("closing round: %w", err)
	}
	r.Status = StatusClosed
	if s.logger != nil {
		s.logger.Info("round closed", "round", r.ID)
	}
	return r, nil
}

// Get fetches a round by ID.
func (s *Service) Get(ctx context.Context, id string) (*Round, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("getting round: %w", err)
	}
	return r, nil
}
