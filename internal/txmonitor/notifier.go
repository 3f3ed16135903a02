package txmonitor

import (
	"context"
	"time"

	"github.com/blocksentry/blocksentry/internal/pkg/logger"
	"github.com/blocksentry/blocksentry/internal/pkg/types"
)

// Alert carries everything a notification channel needs to render a
// significant-transaction message.
type Alert struct {
	Network     string      // Blockchain network name (e.g., "ethereum")
	BlockNumber types.Hex   // Number of the block containing the transaction
	Transaction Transaction // The transaction that tripped the classifier
	Receipt     *Receipt    // Execution receipt, nil if the lookup failed
	Reasons     []string    // Human-readable classification reasons, in order
	Advisory    Advisory    // Advisor verdict, zero value when not consulted
	ObservedAt  time.Time   // When the monitor observed the transaction
}

// AlertNotifier delivers alerts and status lines to an external channel.
// Delivery is at-most-once per call and never fatal to the poll loop:
// implementations for unconfigured channels log and return nil.
type AlertNotifier interface {
	// NotifyAlert sends a formatted alert for a significant transaction.
	NotifyAlert(ctx context.Context, alert Alert) error

	// NotifyStatus sends a plain status message.
	NotifyStatus(ctx context.Context, text string) error
}

// nopNotifier is the default AlertNotifier when no channel is configured.
type nopNotifier struct{}

func (nopNotifier) NotifyAlert(ctx context.Context, alert Alert) error {
	logger.Debug(ctx, "alert notifier not configured, dropping alert",
		"tx.hash", alert.Transaction.Hash,
	)
	return nil
}

func (nopNotifier) NotifyStatus(ctx context.Context, text string) error {
	logger.Debug(ctx, "alert notifier not configured, dropping status", "status", text)
	return nil
}
