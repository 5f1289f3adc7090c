// Package bank provides stand-in implementations of the external
// funds-custody collaborator. Real custody lives outside the engine; these
// implementations only surface the emitted instructions.
package bank

import (
	"context"
	"log/slog"

	"github.com/ganot/quadfund/internal/domain/distribution"
)

// LogBank logs every instruction it is handed. Useful as the default wiring
// when no custody integration is configured.
type LogBank struct {
	logger *slog.Logger
}

// NewLogBank creates a LogBank.
func NewLogBank(logger *slog.Logger) *LogBank {
	return &LogBank{logger: logger}
}

// Send logs the payout instructions.
func (b *LogBank) Send(_ context.Context, payouts []distribution.Payout) error {
	for _, p := range payouts {
		b.logger.Info("payout instruction",
			"round", p.RoundID, "kind", p.Kind, "recipient", p.Recipient, "amount", p.Amount)
	}
	return nil
}

// Noop discards all instructions.
type Noop struct{}

// Send does nothing.
func (Noop) Send(context.Context, []distribution.Payout) error { return nil }
