package api

import (
	"errors"
	"fmt"

	"github.com/ganot/quadfund/internal/domain/contribution"
	"github.com/ganot/quadfund/internal/domain/money"
	"github.com/ganot/quadfund/internal/domain/proposal"
	"github.com/ganot/quadfund/internal/domain/round"
)

// APIError represents an action error with a stable wire code.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to stable wire error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, round.ErrRoundNotFound):
		return &APIError{Code: "ROUND_NOT_FOUND", Message: "round not found", RecoveryHint: "Check the round ID"}
	case errors.Is(err, proposal.ErrProposalNotFound):
		return &APIError{Code: "PROPOSAL_NOT_FOUND", Message: "proposal not found", RecoveryHint: "Check the proposal ID"}
	case errors.Is(err, round.ErrAlreadyFinalized):
		return &APIError{Code: "ALREADY_FINALIZED", Message: "matching already calculated for this round"}
	case errors.Is(err, round.ErrAlreadyDistributed):
		return &APIError{Code: "ALREADY_DISTRIBUTED", Message: "payouts already emitted for this round"}
	case errors.Is(err, round.ErrInvalidState):
		return &APIError{Code: "INVALID_STATE", Message: "action not allowed in the round's current state"}
	case errors.Is(err, round.ErrUnauthorized):
		return &APIError{Code: "UNAUTHORIZED", Message: "caller may not perform this action"}
	case errors.Is(err, contribution.ErrInvalidAmount):
		return &APIError{Code: "INVALID_AMOUNT", Message: "contribution amount must be positive"}
	case errors.Is(err, money.ErrOverflow):
		return &APIError{Code: "OVERFLOW", Message: "amount exceeds the representable range"}
	case errors.Is(err, round.ErrInvalidInput), errors.Is(err, proposal.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid action input"}
	default:
		return nil
	}
}
