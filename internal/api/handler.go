// Package api dispatches the engine's action and query surface. The method
// set is closed: every action the engine supports appears in the switch
// below, and anything else is a method-not-found error.
package api

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ganot/quadfund/internal/domain/contribution"
	"github.com/ganot/quadfund/internal/domain/distribution"
	"github.com/ganot/quadfund/internal/domain/matching"
	"github.com/ganot/quadfund/internal/domain/proposal"
	"github.com/ganot/quadfund/internal/domain/round"
	"github.com/ganot/quadfund/internal/transport"
)

// Services groups the domain services the handler dispatches to.
type Services struct {
	Rounds        *round.Service
	Proposals     *proposal.Service
	Contributions *contribution.Service
	Matching      *matching.Service
	Distribution  *distribution.Service
}

// Handler implements transport.ActionHandler.
type Handler struct {
	services Services
	logger   *slog.Logger
}

// NewHandler creates a new action handler.
func NewHandler(services Services, logger *slog.Logger) *Handler {
	return &Handler{services: services, logger: logger}
}

// Handle dispatches one action or query for an authenticated caller.
func (h *Handler) Handle(ctx context.Context, caller, method string, params json.RawMessage) (any, error) {
	result, err := h.dispatch(ctx, caller, method, params)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("action failed", "method", method, "caller", caller, "error", err)
		}
		return nil, wireError(err)
	}
	return result, nil
}

func (h *Handler) dispatch(ctx context.Context, caller, method string, params json.RawMessage) (any, error) {
	switch method {
	case "instantiate_round":
		var p InstantiateRoundParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return h.services.Rounds.Instantiate(ctx, caller, round.InstantiateRequest{
			Budget:   p.Budget,
			StartAt:  p.StartAt,
			EndAt:    p.EndAt,
			Metadata: p.Metadata,
		})

	case "activate_round":
		var p ActivateRoundParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return h.services.Rounds.Activate(ctx, caller, p.RoundID)

	case "create_proposal":
		var p CreateProposalParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return h.services.Proposals.Create(ctx, caller, proposal.CreateRequest{
			RoundID:       p.RoundID,
			Title:         p.Title,
			Description:   p.Description,
			Metadata:      p.Metadata,
			FundRecipient: p.FundRecipient,
		})

	case "contribute":
		var p ContributeParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return h.services.Contributions.Record(ctx, caller, p.RoundID, p.ProposalID, p.Amount)

	case "close_round":
		var p RoundIDParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return h.services.Rounds.Close(ctx, caller, p.RoundID)

	case "finalize":
		var p RoundIDParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return h.services.Matching.Finalize(ctx, caller, p.RoundID)

	case "distribute":
		var p RoundIDParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return h.services.Distribution.Distribute(ctx, caller, p.RoundID)

	case "cancel_round":
		var p RoundIDParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return h.services.Distribution.Cancel(ctx, caller, p.RoundID)

	case "get_round":
		var p RoundIDParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return h.services.Rounds.Get(ctx, p.RoundID)

	case "get_proposal":
		var p GetProposalParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return h.services.Proposals.Get(ctx, p.RoundID, p.ProposalID)

	case "list_proposals":
		var p RoundIDParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return h.services.Proposals.List(ctx, p.RoundID)

	case "get_contribution":
		var p GetContributionParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		contributor := p.Contributor
		if contributor == "" {
			contributor = caller
		}
		return h.services.Contributions.Get(ctx, p.RoundID, p.ProposalID, contributor)

	case "get_matching_result":
		var p RoundIDParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return h.services.Matching.GetResult(ctx, p.RoundID)

	case "list_payouts":
		var p RoundIDParams
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return h.services.Distribution.ListPayouts(ctx, p.RoundID)

	default:
		return nil, &transport.WireError{
			Code:    transport.ErrMethodNotFound,
			Message: "method not found: " + method,
		}
	}
}

func unmarshalParams(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return &transport.WireError{Code: transport.ErrInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(params, v); err != nil {
		return &transport.WireError{Code: transport.ErrInvalidParams, Message: "invalid params: " + err.Error()}
	}
	return nil
}

func wireError(err error) error {
	if werr, ok := err.(*transport.WireError); ok {
		return werr
	}
	if apiErr := MapError(err); apiErr != nil {
		return &transport.WireError{
			Code:    transport.ErrInternal,
			Message: apiErr.Message,
			Data:    apiErr,
		}
	}
	return err
}
