package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/blocksentry/blocksentry/internal/currency"
	"github.com/blocksentry/blocksentry/internal/txmonitor"

	"github.com/urfave/cli/v3"
)

// inspectTransactionCommand returns a CLI command that classifies a single
// transaction by hash and prints the verdict, without starting the monitor.
//
// Usage example:
//
//	blocksentry inspect --hash 0xABC123...
func inspectTransactionCommand(blockchain txmonitor.Blockchain, advisor txmonitor.AnomalyAdvisor, thresholds txmonitor.Thresholds) *cli.Command {
	return &cli.Command{
		Name:        "inspect",
		Description: "Fetch a transaction by hash, classify it against the configured thresholds and print a report.",
		Usage:       "Runs a one-shot classification of a single transaction. Must provide the transaction hash.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "hash",
				Usage:    "Transaction hash to inspect",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			insp, err := txmonitor.Inspect(ctx, blockchain, advisor, thresholds, c.String("hash"))
			if err != nil {
				return err
			}

			fmt.Fprint(c.Root().Writer, renderInspection(insp, thresholds.Symbol))
			return nil
		},
	}
}

// renderInspection formats a one-shot inspection as a plain-text report.
func renderInspection(insp txmonitor.Inspection, symbol string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Transaction: %s\n", insp.Transaction.Hash)
	fmt.Fprintf(&b, "From:        %s\n", insp.Transaction.From)
	fmt.Fprintf(&b, "To:          %s\n", insp.Transaction.To)
	fmt.Fprintf(&b, "Value:       %s %s\n",
		currency.ToDisplay(insp.Transaction.Value.Big(), currency.DefaultPrecision), symbol)

	if insp.Receipt != nil {
		status := "failed"
		if insp.Receipt.Status {
			status = "success"
		}

		fee := currency.Fee(insp.Receipt.GasUsed.Big(), insp.Transaction.GasPrice.Big())
		fmt.Fprintf(&b, "Status:      %s\n", status)
		fmt.Fprintf(&b, "Gas fee:     %s %s\n", currency.ToDisplay(fee, currency.DefaultPrecision), symbol)
	} else {
		b.WriteString("Status:      unknown (no receipt available)\n")
	}

	if insp.Result.Significant {
		b.WriteString("Verdict:     SIGNIFICANT\n")
		for _, reason := range insp.Result.Reasons {
			fmt.Fprintf(&b, "  - %s\n", reason)
		}
	} else {
		b.WriteString("Verdict:     not significant\n")
	}

	if insp.Advisory.Enabled {
		verdict := "no anomaly detected"
		if insp.Advisory.Flagged {
			verdict = fmt.Sprintf("flagged (confidence %d%%)", insp.Advisory.Confidence)
		}

		fmt.Fprintf(&b, "Advisor:     %s\n", verdict)
		fmt.Fprintf(&b, "  %s\n", insp.Advisory.Explanation)
	}

	return b.String()
}
