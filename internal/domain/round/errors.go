package round

import "errors"

var (
	// ErrRoundNotFound indicates the round doesn't exist.
	ErrRoundNotFound = errors.New("round not found")
	// ErrInvalidState indicates an action attempted outside its required lifecycle state.
	ErrInvalidState = errors.New("invalid round state for action")
	// ErrAlreadyFinalized indicates the matching calculation already ran for the round.
	ErrAlreadyFinalized = errors.New("round already finalized")
	// ErrAlreadyDistributed indicates payouts were already emitted for the round.
	ErrAlreadyDistributed = errors.New("round already distributed")
	// ErrUnauthorized indicates the caller is not allowed to perform a privileged action.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput indicates invalid round parameters.
	ErrInvalidInput = errors.New("invalid round input")
)
