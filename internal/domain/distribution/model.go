package distribution

// PayoutKind classifies an emitted transfer instruction.
type PayoutKind string

const (
	// KindGrant is a proposal payout: collected contributions plus match.
	KindGrant PayoutKind = "GRANT"
	// KindLeftover is the unallocated budget remainder.
	KindLeftover PayoutKind = "LEFTOVER"
	// KindRefund is a contributor refund from a cancelled round.
	KindRefund PayoutKind = "REFUND"
)

// Payout is a transfer instruction handed to the external custody
// collaborator. The engine never moves funds itself.
type Payout struct {
	RoundID    string     `json:"round_id"`
	Kind       PayoutKind `json:"kind"`
	ProposalID *int64     `json:"proposal_id,omitempty"`
	Recipient  string     `json:"recipient"`
	Amount     int64      `json:"amount"`
}
