package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/quadfund/internal/domain/matching"
	"github.com/ganot/quadfund/internal/domain/round"
	"github.com/ganot/quadfund/internal/repository"
)

// ResultRepository implements repository.ResultRepository for SQLite
type ResultRepository struct {
	db *DB
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(db *DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Save writes the matching result, the per-proposal match amounts, and the
// round's transition to CALCULATED in one transaction. The transition is
// guarded on the expected current status, so a second save for the same round
// fails with ErrConflict and changes nothing.
func (r *ResultRepository) Save(ctx context.Context, from round.Status, res *matching.Result) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE rounds SET status = ? WHERE id = ? AND status = ?
	`, string(round.StatusCalculated), res.RoundID, string(from))
	if err != nil {
		return fmt.Errorf("failed to transition round: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrConflict
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO matching_results (round_id, budget, total_allocated, leftover, calculated_at)
		VALUES (?, ?, ?, ?, ?)
	`, res.RoundID, res.Budget, res.TotalAllocated, res.Leftover, res.CalculatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to insert matching result: %w", err)
	}

	for _, a := range res.Allocations {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO matching_allocations (round_id, proposal_id, raw_score, excess, match_amount)
			VALUES (?, ?, ?, ?, ?)
		`, res.RoundID, a.ProposalID, a.RawScore, a.Excess, a.Match)
		if err != nil {
			return fmt.Errorf("failed to insert allocation: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE proposals SET match_amount = ? WHERE round_id = ? AND id = ?
		`, a.Match, res.RoundID, a.ProposalID)
		if err != nil {
			return fmt.Errorf("failed to set proposal match: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Get retrieves the matching result for a round, allocations in proposal
// creation order
func (r *ResultRepository) Get(ctx context.Context, roundID string) (*matching.Result, error) {
	var res matching.Result
	err := r.db.QueryRowContext(ctx, `
		SELECT round_id, budget, total_allocated, leftover, calculated_at
		FROM matching_results
		WHERE round_id = ?
	`, roundID).Scan(
		&res.RoundID,
		&res.Budget,
		&res.TotalAllocated,
		&res.Leftover,
		&res.CalculatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get matching result: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT proposal_id, raw_score, excess, match_amount
		FROM matching_allocations
		WHERE round_id = ?
		ORDER BY proposal_id ASC
	`, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a matching.Allocation
		if err := rows.Scan(&a.ProposalID, &a.RawScore, &a.Excess, &a.Match); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		res.Allocations = append(res.Allocations, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation rows: %w", err)
	}

	return &res, nil
}
