package mocks

import (
	"context"
	"time"

	"github.com/ganot/quadfund/internal/domain/contribution"
	"github.com/ganot/quadfund/internal/domain/distribution"
	"github.com/ganot/quadfund/internal/domain/matching"
	"github.com/ganot/quadfund/internal/domain/proposal"
	"github.com/ganot/quadfund/internal/domain/round"
	"github.com/stretchr/testify/mock"
)

// RoundRepository is a mock for repository.RoundRepository.
type RoundRepository struct {
	mock.Mock
}

func (m *RoundRepository) Create(ctx context.Context, r *round.Round) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RoundRepository) Get(ctx context.Context, id string) (*round.Round, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*round.Round); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RoundRepository) UpdateStatus(ctx context.Context, id string, from, to round.Status) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *RoundRepository) NextProposalSeq(ctx context.Context, roundID string) (int64, error) {
	args := m.Called(ctx, roundID)
	return args.Get(0).(int64), args.Error(1)
}

// ProposalRepository is a mock for repository.ProposalRepository.
type ProposalRepository struct {
	mock.Mock
}

func (m *ProposalRepository) Create(ctx context.Context, p *proposal.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProposalRepository) Get(ctx context.Context, roundID string, id int64) (*proposal.Proposal, error) {
	args := m.Called(ctx, roundID, id)
	if p, ok := args.Get(0).(*proposal.Proposal); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProposalRepository) List(ctx context.Context, roundID string) ([]proposal.Proposal, error) {
	args := m.Called(ctx, roundID)
	if list, ok := args.Get(0).([]proposal.Proposal); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ContributionRepository is a mock for repository.ContributionRepository.
type ContributionRepository struct {
	mock.Mock
}

func (m *ContributionRepository) Add(ctx context.Context, roundID string, proposalID int64, contributor string, amount int64, now time.Time) (*contribution.Contribution, error) {
	args := m.Called(ctx, roundID, proposalID, contributor, amount, now)
	if c, ok := args.Get(0).(*contribution.Contribution); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContributionRepository) Get(ctx context.Context, roundID string, proposalID int64, contributor string) (*contribution.Contribution, error) {
	args := m.Called(ctx, roundID, proposalID, contributor)
	if c, ok := args.Get(0).(*contribution.Contribution); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContributionRepository) ListByProposal(ctx context.Context, roundID string, proposalID int64) ([]contribution.Contribution, error) {
	args := m.Called(ctx, roundID, proposalID)
	if list, ok := args.Get(0).([]contribution.Contribution); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContributionRepository) ListByRound(ctx context.Context, roundID string) ([]contribution.Contribution, error) {
	args := m.Called(ctx, roundID)
	if list, ok := args.Get(0).([]contribution.Contribution); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ResultRepository is a mock for repository.ResultRepository.
type ResultRepository struct {
	mock.Mock
}

func (m *ResultRepository) Save(ctx context.Context, from round.Status, res *matching.Result) error {
	args := m.Called(ctx, from, res)
	return args.Error(0)
}

func (m *ResultRepository) Get(ctx context.Context, roundID string) (*matching.Result, error) {
	args := m.Called(ctx, roundID)
	if res, ok := args.Get(0).(*matching.Result); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// PayoutRepository is a mock for repository.PayoutRepository.
type PayoutRepository struct {
	mock.Mock
}

func (m *PayoutRepository) Record(ctx context.Context, roundID string, from, to round.Status, payouts []distribution.Payout) error {
	args := m.Called(ctx, roundID, from, to, payouts)
	return args.Error(0)
}

func (m *PayoutRepository) List(ctx context.Context, roundID string) ([]distribution.Payout, error) {
	args := m.Called(ctx, roundID)
	if list, ok := args.Get(0).([]distribution.Payout); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Bank is a mock for distribution.Bank.
type Bank struct {
	mock.Mock
}

func (m *Bank) Send(ctx context.Context, payouts []distribution.Payout) error {
	args := m.Called(ctx, payouts)
	return args.Error(0)
}
