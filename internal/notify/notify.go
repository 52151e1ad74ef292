package notify

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Event carries everything a channel needs to tell an account holder about a
// ledger-affecting action.
type Event struct {
	RecipientEmail string
	RecipientName  string
	Action         string
	Amount         decimal.Decimal
	Status         string
	CorrelationID  string
}

// Notifier is a fire-and-forget side channel. Implementations must never
// block a ledger operation; callers log failures and move on.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// LogNotifier writes notifications to the application log. It stands in for
// a mail or push channel in deployments that have none configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(_ context.Context, event Event) error {
	zap.L().Info("notification",
		zap.String("recipient", event.RecipientEmail),
		zap.String("action", event.Action),
		zap.String("amount", event.Amount.StringFixed(2)),
		zap.String("status", event.Status),
		zap.String("correlation_id", event.CorrelationID),
	)
	return nil
}
