package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/quadfund/internal/domain/round"
	"github.com/ganot/quadfund/internal/repository"
)

// RoundRepository implements repository.RoundRepository for SQLite
type RoundRepository struct {
	db *DB
}

// NewRoundRepository creates a new RoundRepository
func NewRoundRepository(db *DB) *RoundRepository {
	return &RoundRepository{db: db}
}

// Create creates a new round
func (r *RoundRepository) Create(ctx context.Context, rnd *round.Round) error {
	query := `
		INSERT INTO rounds (id, budget, start_at, end_at, status, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rnd.ID,
		rnd.Budget,
		rnd.StartAt,
		rnd.EndAt,
		string(rnd.Status),
		rnd.Metadata,
		rnd.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create round: %w", err)
	}

	return nil
}

// Get retrieves a round by ID
func (r *RoundRepository) Get(ctx context.Context, id string) (*round.Round, error) {
	query := `
		SELECT id, budget, start_at, end_at, status, metadata, created_at
		FROM rounds
		WHERE id = ?
	`

	var rnd round.Round
	var status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rnd.ID,
		&rnd.Budget,
		&rnd.StartAt,
		&rnd.EndAt,
		&status,
		&rnd.Metadata,
		&rnd.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	rnd.Status = round.Status(status)

	return &rnd, nil
}

// UpdateStatus transitions a round's status, guarded on the expected current
// status so a transition never applies twice.
func (r *RoundRepository) UpdateStatus(ctx context.Context, id string, from, to round.Status) error {
	query := `
		UPDATE rounds
		SET status = ?
		WHERE id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query, string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("failed to update round status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Distinguish a missing round from a stale expected status.
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM rounds WHERE id = ?`, id).Scan(&exists); err == sql.ErrNoRows {
			return repository.ErrNotFound
		}
		return repository.ErrConflict
	}

	return nil
}

// NextProposalSeq atomically increments the round's proposal sequence and
// returns the new value.
func (r *RoundRepository) NextProposalSeq(ctx context.Context, roundID string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE rounds
		SET proposal_seq = proposal_seq + 1
		WHERE id = ?
	`, roundID)
	if err != nil {
		return 0, fmt.Errorf("failed to increment proposal sequence: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return 0, repository.ErrNotFound
	}

	var seq int64
	err = tx.QueryRowContext(ctx, `
		SELECT proposal_seq
		FROM rounds
		WHERE id = ?
	`, roundID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to get proposal sequence: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return seq, nil
}
