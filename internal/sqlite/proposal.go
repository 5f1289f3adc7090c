package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/quadfund/internal/domain/proposal"
	"github.com/ganot/quadfund/internal/repository"
)

// ProposalRepository implements repository.ProposalRepository for SQLite
type ProposalRepository struct {
	db *DB
}

// NewProposalRepository creates a new ProposalRepository
func NewProposalRepository(db *DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// Create creates a new proposal
func (r *ProposalRepository) Create(ctx context.Context, p *proposal.Proposal) error {
	query := `
		INSERT INTO proposals (round_id, id, creator, title, description, metadata, fund_recipient, collected, match_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.RoundID,
		p.ID,
		p.Creator,
		p.Title,
		p.Description,
		p.Metadata,
		p.FundRecipient,
		p.Collected,
		p.Match,
		p.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create proposal: %w", err)
	}

	return nil
}

// Get retrieves a proposal by round and ID
func (r *ProposalRepository) Get(ctx context.Context, roundID string, id int64) (*proposal.Proposal, error) {
	query := `
		SELECT round_id, id, creator, title, description, metadata, fund_recipient, collected, match_amount, created_at
		FROM proposals
		WHERE round_id = ? AND id = ?
	`

	p, err := scanProposal(r.db.QueryRowContext(ctx, query, roundID, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	return p, nil
}

// List returns the round's proposals ordered by ID, which is creation order
func (r *ProposalRepository) List(ctx context.Context, roundID string) ([]proposal.Proposal, error) {
	query := `
		SELECT round_id, id, creator, title, description, metadata, fund_recipient, collected, match_amount, created_at
		FROM proposals
		WHERE round_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	var proposals []proposal.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, *p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating proposal rows: %w", err)
	}

	return proposals, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProposal(row rowScanner) (*proposal.Proposal, error) {
	var p proposal.Proposal
	var match sql.NullInt64
	err := row.Scan(
		&p.RoundID,
		&p.ID,
		&p.Creator,
		&p.Title,
		&p.Description,
		&p.Metadata,
		&p.FundRecipient,
		&p.Collected,
		&match,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if match.Valid {
		p.Match = &match.Int64
	}
	return &p, nil
}
