package cli

import (
	"context"
	"os"

	"github.com/blocksentry/blocksentry/internal/txmonitor"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the blocksentry CLI application.
//
// It registers all available commands, including:
//
//   - `start`: Runs the transaction monitor until interrupted.
//   - `inspect`: Classifies a single transaction by hash and prints a report.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - svc: The transaction monitor service run by the start command.
//   - blockchain: Blockchain access used by the inspect command.
//   - advisor: Anomaly advisor consulted by the inspect command.
//   - thresholds: Classification thresholds applied by the inspect command.
//
// This function sets up shell completion and invokes the CLI framework to parse and run commands.
func Run(ctx context.Context, svc txmonitor.Service, blockchain txmonitor.Blockchain, advisor txmonitor.AnomalyAdvisor, thresholds txmonitor.Thresholds) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "blocksentry",
		Description:           "Command-line interface for running and querying the Blocksentry transaction monitor.",
		Usage:                 "blocksentry [command] [flags]",
		Commands: []*cli.Command{
			startMonitorCommand(svc),
			inspectTransactionCommand(blockchain, advisor, thresholds),
		},
	}

	return app.Run(ctx, os.Args)
}
