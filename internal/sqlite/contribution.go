package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ganot/quadfund/internal/domain/contribution"
	"github.com/ganot/quadfund/internal/domain/money"
	"github.com/ganot/quadfund/internal/repository"
)

// ContributionRepository implements repository.ContributionRepository for SQLite
type ContributionRepository struct {
	db *DB
}

// NewContributionRepository creates a new ContributionRepository
func NewContributionRepository(db *DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

// Add accumulates an amount into the contributor's record and the proposal
// aggregate in a single transaction. Both additions are overflow-checked
// before anything is written; on overflow neither total changes.
func (r *ContributionRepository) Add(ctx context.Context, roundID string, proposalID int64, contributor string, amount int64, now time.Time) (*contribution.Contribution, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var collected int64
	err = tx.QueryRowContext(ctx, `
		SELECT collected FROM proposals WHERE round_id = ? AND id = ?
	`, roundID, proposalID).Scan(&collected)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal aggregate: %w", err)
	}

	var current int64
	err = tx.QueryRowContext(ctx, `
		SELECT amount FROM contributions
		WHERE round_id = ? AND proposal_id = ? AND contributor = ?
	`, roundID, proposalID, contributor).Scan(&current)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get contribution: %w", err)
	}

	newAmount, err := money.Add(current, amount)
	if err != nil {
		return nil, err
	}
	newCollected, err := money.Add(collected, amount)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO contributions (round_id, proposal_id, contributor, amount, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (round_id, proposal_id, contributor)
		DO UPDATE SET amount = excluded.amount, updated_at = excluded.updated_at
	`, roundID, proposalID, contributor, newAmount, now)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert contribution: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE proposals SET collected = ? WHERE round_id = ? AND id = ?
	`, newCollected, roundID, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to update proposal aggregate: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &contribution.Contribution{
		RoundID:     roundID,
		ProposalID:  proposalID,
		Contributor: contributor,
		Amount:      newAmount,
		UpdatedAt:   now,
	}, nil
}

// Get retrieves a contribution record
func (r *ContributionRepository) Get(ctx context.Context, roundID string, proposalID int64, contributor string) (*contribution.Contribution, error) {
	query := `
		SELECT round_id, proposal_id, contributor, amount, updated_at
		FROM contributions
		WHERE round_id = ? AND proposal_id = ? AND contributor = ?
	`

	var c contribution.Contribution
	err := r.db.QueryRowContext(ctx, query, roundID, proposalID, contributor).Scan(
		&c.RoundID,
		&c.ProposalID,
		&c.Contributor,
		&c.Amount,
		&c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contribution: %w", err)
	}

	return &c, nil
}

// ListByProposal returns a proposal's contributions ordered by contributor
// for reproducible iteration
func (r *ContributionRepository) ListByProposal(ctx context.Context, roundID string, proposalID int64) ([]contribution.Contribution, error) {
	query := `
		SELECT round_id, proposal_id, contributor, amount, updated_at
		FROM contributions
		WHERE round_id = ? AND proposal_id = ?
		ORDER BY contributor ASC
	`
	return r.list(ctx, query, roundID, proposalID)
}

// ListByRound returns all of a round's contributions ordered by proposal then
// contributor
func (r *ContributionRepository) ListByRound(ctx context.Context, roundID string) ([]contribution.Contribution, error) {
	query := `
		SELECT round_id, proposal_id, contributor, amount, updated_at
		FROM contributions
		WHERE round_id = ?
		ORDER BY proposal_id ASC, contributor ASC
	`
	return r.list(ctx, query, roundID)
}

func (r *ContributionRepository) list(ctx context.Context, query string, args ...any) ([]contribution.Contribution, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	defer rows.Close()

	var contribs []contribution.Contribution
	for rows.Next() {
		var c contribution.Contribution
		err := rows.Scan(
			&c.RoundID,
			&c.ProposalID,
			&c.Contributor,
			&c.Amount,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		contribs = append(contribs, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contribution rows: %w", err)
	}

	return contribs, nil
}
