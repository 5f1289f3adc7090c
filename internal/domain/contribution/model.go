package contribution

import "time"

// Contribution is the cumulative amount a contributor has put into one
// proposal. Repeated contributions accumulate into the same record; the
// amount is strictly positive and never decreases.
type Contribution struct {
	RoundID     string    `json:"round_id"`
	ProposalID  int64     `json:"proposal_id"`
	Contributor string    `json:"contributor"`
	Amount      int64     `json:"amount"`
	UpdatedAt   time.Time `json:"updated_at"`
}
