package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/quadfund/internal/domain/round"
	"github.com/ganot/quadfund/internal/repository"
	"github.com/stretchr/testify/require"
)

func testRound(id string, status round.Status) *round.Round {
	now := time.Now().UTC().Truncate(time.Second)
	return &round.Round{
		ID:        id,
		Budget:    1000,
		StartAt:   now,
		EndAt:     now.Add(24 * time.Hour),
		Status:    status,
		Metadata:  "spring round",
		CreatedAt: now,
	}
}

func TestRoundRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewRoundRepository(db)
	ctx := context.Background()

	rnd := testRound("r1", round.StatusOpen)
	require.NoError(t, repo.Create(ctx, rnd))

	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, rnd.ID, got.ID)
	require.Equal(t, rnd.Budget, got.Budget)
	require.Equal(t, round.StatusOpen, got.Status)
	require.Equal(t, rnd.Metadata, got.Metadata)
}

func TestRoundRepository_GetMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewRoundRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRoundRepository_UpdateStatus(t *testing.T) {
	db := NewTestDB(t)
	repo := NewRoundRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testRound("r1", round.StatusOpen)))

	require.NoError(t, repo.UpdateStatus(ctx, "r1", round.StatusOpen, round.StatusClosed))

	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, round.StatusClosed, got.Status)

	// Guard: the same transition does not apply twice.
	err = repo.UpdateStatus(ctx, "r1", round.StatusOpen, round.StatusClosed)
	require.ErrorIs(t, err, repository.ErrConflict)

	// Missing round is distinguished from a stale guard.
	err = repo.UpdateStatus(ctx, "missing", round.StatusOpen, round.StatusClosed)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRoundRepository_NextProposalSeq(t *testing.T) {
	db := NewTestDB(t)
	repo := NewRoundRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testRound("r1", round.StatusOpen)))

	for want := int64(1); want <= 3; want++ {
		seq, err := repo.NextProposalSeq(ctx, "r1")
		require.NoError(t, err)
		require.Equal(t, want, seq)
	}

	_, err := repo.NextProposalSeq(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
