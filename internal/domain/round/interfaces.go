package round

import "context"

// Repository provides persistence for rounds.
type Repository interface {
	Create(ctx context.Context, r *Round) error
	Get(ctx context.Context, id string) (*Round, error)
	UpdateStatus(ctx context.Context, id string, from, to Status) error
	NextProposalSeq(ctx context.Context, roundID string) (int64, error)
}

// Policy carries the configurable round governance knobs.
type Policy struct {
	// OpenOnCreate opens a round immediately at creation when its start time
	// has already been reached.
	OpenOnCreate bool
	// AllowEarlyClose permits an explicit close before the round's end time.
	AllowEarlyClose bool
	// Admin, when non-empty, restricts close/cancel/finalize/distribute to
	// this caller identity.
	Admin string
	// LeftoverRecipient receives the unallocated remainder during distribution.
	LeftoverRecipient string
	// ProposalAllowlist, when non-empty, restricts proposal creation to the
	// listed identities.
	ProposalAllowlist []string
	// ContributionAllowlist, when non-empty, restricts contributing to the
	// listed identities.
	ContributionAllowlist []string
}

// Authorize checks whether the caller may perform a privileged action.
func (p Policy) Authorize(caller string) error {
	if p.Admin != "" && caller != p.Admin {
		return ErrUnauthorized
	}
	return nil
}

// AuthorizeProposer checks whether the caller may create proposals.
func (p Policy) AuthorizeProposer(caller string) error {
	return authorizeListed(p.ProposalAllowlist, caller)
}

// AuthorizeContributor checks whether the caller may contribute.
func (p Policy) AuthorizeContributor(caller string) error {
	return authorizeListed(p.ContributionAllowlist, caller)
}

func authorizeListed(allowed []string, caller string) error {
	if len(allowed) == 0 {
		return nil
	}
	for _, a := range allowed {
		if a == caller {
			return nil
		}
	}
	return ErrUnauthorized
}
