package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/quadfund/internal/domain/distribution"
	"github.com/ganot/quadfund/internal/domain/round"
	"github.com/ganot/quadfund/internal/repository"
)

// PayoutRepository implements repository.PayoutRepository for SQLite
type PayoutRepository struct {
	db *DB
}

// NewPayoutRepository creates a new PayoutRepository
func NewPayoutRepository(db *DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

// Record writes the emitted payout instructions and the round's lifecycle
// transition in one transaction. The guarded transition makes the whole
// operation exactly-once: a repeat attempt fails with ErrConflict and records
// nothing.
func (r *PayoutRepository) Record(ctx context.Context, roundID string, from, to round.Status, payouts []distribution.Payout) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE rounds SET status = ? WHERE id = ? AND status = ?
	`, string(to), roundID, string(from))
	if err != nil {
		return fmt.Errorf("failed to transition round: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM rounds WHERE id = ?`, roundID).Scan(&exists); err == sql.ErrNoRows {
			return repository.ErrNotFound
		}
		return repository.ErrConflict
	}

	for _, p := range payouts {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO payouts (round_id, kind, proposal_id, recipient, amount)
			VALUES (?, ?, ?, ?, ?)
		`, p.RoundID, string(p.Kind), p.ProposalID, p.Recipient, p.Amount)
		if err != nil {
			return fmt.Errorf("failed to insert payout: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// List returns the recorded payout instructions for a round in emission order
func (r *PayoutRepository) List(ctx context.Context, roundID string) ([]distribution.Payout, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT round_id, kind, proposal_id, recipient, amount
		FROM payouts
		WHERE round_id = ?
		ORDER BY id ASC
	`, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	defer rows.Close()

	var payouts []distribution.Payout
	for rows.Next() {
		var p distribution.Payout
		var kind string
		var proposalID sql.NullInt64
		if err := rows.Scan(&p.RoundID, &kind, &proposalID, &p.Recipient, &p.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan payout: %w", err)
		}
		p.Kind = distribution.PayoutKind(kind)
		if proposalID.Valid {
			p.ProposalID = &proposalID.Int64
		}
		payouts = append(payouts, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payout rows: %w", err)
	}

	return payouts, nil
}
