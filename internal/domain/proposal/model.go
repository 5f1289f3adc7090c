package proposal

import "time"

// Proposal represents a funding proposal within a round. IDs are a per-round
// sequence, so listing by ID reproduces creation order exactly.
type Proposal struct {
	RoundID       string    `json:"round_id"`
	ID            int64     `json:"id"`
	Creator       string    `json:"creator"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Metadata      string    `json:"metadata,omitempty"`
	FundRecipient string    `json:"fund_recipient"`
	Collected     int64     `json:"collected"`
	Match         *int64    `json:"match,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
