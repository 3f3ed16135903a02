package txmonitor

import (
	"context"
	"errors"

	"github.com/blocksentry/blocksentry/internal/pkg/types"
)

// ErrNoBlockProcessed is returned by LoadLastProcessed when no block has been
// recorded yet for the requested network.
var ErrNoBlockProcessed = errors.New("no processed block recorded for network")

// CheckpointStorage persists the number of the last fully processed block for
// each network, letting a restarted monitor skip blocks it already handled.
// The monitor works without persistence: the in-process state is
// authoritative and storage is a mirror written after each completed tick.
type CheckpointStorage interface {
	// SaveLastProcessed records number as the last fully processed block for
	// the network, overwriting any previous record.
	SaveLastProcessed(ctx context.Context, network string, number types.Hex) error

	// LoadLastProcessed returns the most recently recorded block number for
	// the network, or ErrNoBlockProcessed if none exists.
	LoadLastProcessed(ctx context.Context, network string) (types.Hex, error)
}

// nopCheckpoint is the default CheckpointStorage: nothing is persisted and a
// restart reprocesses the current latest block once.
type nopCheckpoint struct{}

func (nopCheckpoint) SaveLastProcessed(_ context.Context, _ string, _ types.Hex) error {
	return nil
}

func (nopCheckpoint) LoadLastProcessed(_ context.Context, _ string) (types.Hex, error) {
	return "", ErrNoBlockProcessed
}
