package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/blocksentry/blocksentry/internal/txmonitor"

	"github.com/urfave/cli/v3"
)

// startMonitorCommand returns a CLI command that starts the transaction
// monitor: block polling, classification, and alert delivery.
//
// Usage example:
//
//	blocksentry start
//
// The process runs indefinitely until it receives an interrupt (SIGINT or SIGTERM).
func startMonitorCommand(svc txmonitor.Service) *cli.Command {
	return &cli.Command{
		Name:        "start",
		Description: "Starts the transaction monitor including block polling, classification and alert delivery.",
		Usage:       "Initializes and runs the monitor. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			quit := make(chan os.Signal, 1)
			defer close(quit)

			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			if err := svc.Start(ctx); err != nil {
				return err
			}
			defer svc.Close()

			<-quit
			return nil
		},
	}
}
