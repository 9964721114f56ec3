// Package notify provides the advisory notification adapter. Notifications
// are best-effort pokes ("an order appeared near you"); nothing in the
// domain depends on their delivery, so the adapter logs them and swallows
// every failure.
package notify

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

// ZapNotifier implements ports.Notifier by writing structured log records.
// A real deployment would swap this for a push gateway; the contract stays
// fire-and-forget either way.
type ZapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier creates a notifier writing to the given logger.
func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	return &ZapNotifier{logger: logger}
}

// Notify records the event for the user. Never fails the caller.
func (n *ZapNotifier) Notify(_ context.Context, userID kernel.UUID, event string, payload map[string]any) {
	n.logger.Info("notification",
		zap.String("user_id", userID.String()),
		zap.String("event", event),
		zap.Any("payload", payload),
	)
}
