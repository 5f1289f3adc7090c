package api

import "time"

// InstantiateRoundParams creates a round.
type InstantiateRoundParams struct {
	Budget   int64     `json:"budget"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
	Metadata string    `json:"metadata,omitempty"`
}

// ActivateRoundParams opens a pending round.
type ActivateRoundParams struct {
	RoundID string `json:"round_id"`
}

// CreateProposalParams registers a proposal in an open round.
type CreateProposalParams struct {
	RoundID       string `json:"round_id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Metadata      string `json:"metadata,omitempty"`
	FundRecipient string `json:"fund_recipient,omitempty"`
}

// ContributeParams records a contribution. The contributor is the
// authenticated caller.
type ContributeParams struct {
	RoundID    string `json:"round_id"`
	ProposalID int64  `json:"proposal_id"`
	Amount     int64  `json:"amount"`
}

// RoundIDParams addresses a round.
type RoundIDParams struct {
	RoundID string `json:"round_id"`
}

// GetProposalParams addresses a proposal.
type GetProposalParams struct {
	RoundID    string `json:"round_id"`
	ProposalID int64  `json:"proposal_id"`
}

// GetContributionParams addresses a contribution record. Contributor defaults
// to the caller.
type GetContributionParams struct {
	RoundID     string `json:"round_id"`
	ProposalID  int64  `json:"proposal_id"`
	Contributor string `json:"contributor,omitempty"`
}
