package contribution_test

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/quadfund/internal/domain/contribution"
	"github.com/ganot/quadfund/internal/domain/proposal"
	"github.com/ganot/quadfund/internal/domain/round"
	"github.com/ganot/quadfund/internal/repository"
	"github.com/ganot/quadfund/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func openRound(id string) *round.Round {
	return &round.Round{
		ID:      id,
		Status:  round.StatusOpen,
		StartAt: testNow.Add(-time.Hour),
		EndAt:   testNow.Add(time.Hour),
	}
}

func newTestService(rounds *mocks.RoundRepository, proposals *mocks.ProposalRepository, repo *mocks.ContributionRepository) *contribution.Service {
	return contribution.NewService(repo, rounds, proposals, fixedClock{testNow}, round.Policy{}, nil)
}

func TestContributionService_Record(t *testing.T) {
	ctx := context.Background()
	rounds := &mocks.RoundRepository{}
	rounds.On("Get", ctx, "r1").Return(openRound("r1"), nil)
	proposals := &mocks.ProposalRepository{}
	proposals.On("Get", ctx, "r1", int64(1)).Return(&proposal.Proposal{RoundID: "r1", ID: 1}, nil)
	repo := &mocks.ContributionRepository{}
	repo.On("Add", ctx, "r1", int64(1), "alice", int64(500), testNow).Return(&contribution.Contribution{
		RoundID: "r1", ProposalID: 1, Contributor: "alice", Amount: 500, UpdatedAt: testNow,
	}, nil)

	svc := newTestService(rounds, proposals, repo)
	c, err := svc.Record(ctx, "alice", "r1", 1, 500)
	require.NoError(t, err)
	require.Equal(t, int64(500), c.Amount)
	repo.AssertExpectations(t)
}

func TestContributionService_Record_Allowlist(t *testing.T) {
	ctx := context.Background()
	rounds := &mocks.RoundRepository{}
	rounds.On("Get", ctx, "r1").Return(openRound("r1"), nil)
	proposals := &mocks.ProposalRepository{}
	proposals.On("Get", ctx, "r1", int64(1)).Return(&proposal.Proposal{RoundID: "r1", ID: 1}, nil)
	repo := &mocks.ContributionRepository{}
	repo.On("Add", ctx, "r1", int64(1), "alice", int64(100), testNow).Return(&contribution.Contribution{
		RoundID: "r1", ProposalID: 1, Contributor: "alice", Amount: 100, UpdatedAt: testNow,
	}, nil)

	policy := round.Policy{ContributionAllowlist: []string{"alice"}}
	svc := contribution.NewService(repo, rounds, proposals, fixedClock{testNow}, policy, nil)

	c, err := svc.Record(ctx, "alice", "r1", 1, 100)
	require.NoError(t, err)
	require.Equal(t, int64(100), c.Amount)

	_, err = svc.Record(ctx, "mallory", "r1", 1, 100)
	require.ErrorIs(t, err, round.ErrUnauthorized)
}

func TestContributionService_Record_NonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&mocks.RoundRepository{}, &mocks.ProposalRepository{}, &mocks.ContributionRepository{})

	_, err := svc.Record(ctx, "alice", "r1", 1, 0)
	require.ErrorIs(t, err, contribution.ErrInvalidAmount)
	_, err = svc.Record(ctx, "alice", "r1", 1, -30)
	require.ErrorIs(t, err, contribution.ErrInvalidAmount)
}

func TestContributionService_Record_RoundNotOpen(t *testing.T) {
	ctx := context.Background()
	rounds := &mocks.RoundRepository{}
	rounds.On("Get", ctx, "r1").Return(&round.Round{ID: "r1", Status: round.StatusClosed}, nil)

	svc := newTestService(rounds, &mocks.ProposalRepository{}, &mocks.ContributionRepository{})
	_, err := svc.Record(ctx, "alice", "r1", 1, 100)
	require.ErrorIs(t, err, round.ErrInvalidState)
}

func TestContributionService_Record_RoundPastEnd(t *testing.T) {
	ctx := context.Background()
	r := openRound("r1")
	r.EndAt = testNow
	rounds := &mocks.RoundRepository{}
	rounds.On("Get", ctx, "r1").Return(r, nil)

	svc := newTestService(rounds, &mocks.ProposalRepository{}, &mocks.ContributionRepository{})
	_, err := svc.Record(ctx, "alice", "r1", 1, 100)
	require.ErrorIs(t, err, round.ErrInvalidState)
}

func TestContributionService_Record_ProposalNotFound(t *testing.T) {
	ctx := context.Background()
	rounds := &mocks.RoundRepository{}
	rounds.On("Get", ctx, "r1").Return(openRound("r1"), nil)
	proposals := &mocks.ProposalRepository{}
	proposals.On("Get", ctx, "r1", int64(7)).Return(nil, repository.ErrNotFound)

	svc := newTestService(rounds, proposals, &mocks.ContributionRepository{})
	_, err := svc.Record(ctx, "alice", "r1", 7, 100)
	require.ErrorIs(t, err, proposal.ErrProposalNotFound)
}

func TestContributionService_Get_AbsentContributorIsZero(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ContributionRepository{}
	repo.On("Get", ctx, "r1", int64(1), "nobody").Return(nil, repository.ErrNotFound)

	svc := newTestService(&mocks.RoundRepository{}, &mocks.ProposalRepository{}, repo)
	c, err := svc.Get(ctx, "r1", 1, "nobody")
	require.NoError(t, err)
	require.Equal(t, "nobody", c.Contributor)
	require.Zero(t, c.Amount)
}
