package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/quadfund/internal/domain/matching"
	"github.com/ganot/quadfund/internal/domain/round"
	"github.com/ganot/quadfund/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestResultRepository_SaveAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewResultRepository(db)
	rounds := NewRoundRepository(db)
	proposals := NewProposalRepository(db)
	ctx := context.Background()

	rnd := testRound("r1", round.StatusClosed)
	require.NoError(t, rounds.Create(ctx, rnd))
	require.NoError(t, proposals.Create(ctx, testProposal("r1", 1)))
	require.NoError(t, proposals.Create(ctx, testProposal("r1", 2)))

	res := &matching.Result{
		RoundID: "r1",
		Budget:  1000,
		Allocations: []matching.Allocation{
			{ProposalID: 1, RawScore: 900, Excess: 600, Match: 1000},
			{ProposalID: 2, RawScore: 900, Excess: 0, Match: 0},
		},
		TotalAllocated: 1000,
		Leftover:       0,
		CalculatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.Save(ctx, round.StatusClosed, res))

	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, res.Budget, got.Budget)
	require.Equal(t, res.TotalAllocated, got.TotalAllocated)
	require.Equal(t, res.Leftover, got.Leftover)
	require.Len(t, got.Allocations, 2)
	require.Equal(t, res.Allocations[0], got.Allocations[0])
	require.Equal(t, res.Allocations[1], got.Allocations[1])

	// The round transitioned and the proposals carry their match amounts.
	r, err := rounds.Get(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, round.StatusCalculated, r.Status)

	p, err := proposals.Get(ctx, "r1", 1)
	require.NoError(t, err)
	require.NotNil(t, p.Match)
	require.Equal(t, int64(1000), *p.Match)
}

func TestResultRepository_SaveTwiceConflicts(t *testing.T) {
	db := NewTestDB(t)
	repo := NewResultRepository(db)
	rounds := NewRoundRepository(db)
	ctx := context.Background()

	require.NoError(t, rounds.Create(ctx, testRound("r1", round.StatusClosed)))

	res := &matching.Result{
		RoundID:      "r1",
		Budget:       1000,
		Leftover:     1000,
		CalculatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, round.StatusClosed, res))

	err := repo.Save(ctx, round.StatusClosed, res)
	require.ErrorIs(t, err, repository.ErrConflict)

	// The stored result is unchanged.
	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, int64(1000), got.Leftover)
}

func TestResultRepository_GetMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewResultRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
