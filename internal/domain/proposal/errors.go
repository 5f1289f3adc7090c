package proposal

import "errors"

var (
	// ErrProposalNotFound indicates the proposal doesn't exist in the round.
	ErrProposalNotFound = errors.New("proposal not found")
	// ErrInvalidInput indicates invalid proposal input.
	ErrInvalidInput = errors.New("invalid proposal input")
)
