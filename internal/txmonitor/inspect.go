package txmonitor

import (
	"context"

	"github.com/blocksentry/blocksentry/internal/pkg/logger"
)

// Inspection is the one-shot counterpart of a poll-loop pass over a single
// transaction, used by the CLI to explain how a given hash would be handled.
type Inspection struct {
	Transaction Transaction
	Receipt     *Receipt
	Result      ClassificationResult
	Advisory    Advisory
}

// Inspect fetches one transaction with its receipt, classifies it against the
// thresholds, and consults the advisor when one is enabled. A failed receipt
// lookup is tolerated the same way the poll loop tolerates it: the fee is
// treated as unknown. A failed transaction lookup is fatal to the inspection.
func Inspect(ctx context.Context, blockchain Blockchain, advisor AnomalyAdvisor, thresholds Thresholds, hash string) (Inspection, error) {
	if advisor == nil {
		advisor = disabledAdvisor{}
	}

	tx, err := blockchain.TransactionByHash(ctx, hash)
	if err != nil {
		return Inspection{}, err
	}

	receipt, err := blockchain.TransactionReceipt(ctx, tx.Hash)
	if err != nil {
		logger.Warn(ctx, "failed to fetch transaction receipt, fee treated as unknown",
			"tx.hash", tx.Hash,
			"error", err,
		)
		receipt = nil
	}

	result := Classify(tx, receipt, thresholds)

	var advisory Advisory
	if result.Significant || advisor.Enabled() {
		var err error
		advisory, err = advisor.Assess(ctx, tx, receipt)
		if err != nil {
			logger.Warn(ctx, "anomaly assessment failed", "tx.hash", tx.Hash, "error", err)
			advisory = Advisory{}
		}
		if advisory.Flagged && advisory.Confidence > escalationConfidence {
			result.Significant = true
		}
	}

	return Inspection{
		Transaction: tx,
		Receipt:     receipt,
		Result:      result,
		Advisory:    advisory,
	}, nil
}
