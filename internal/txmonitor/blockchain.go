package txmonitor

import (
	"context"
	"errors"

	"github.com/blocksentry/blocksentry/internal/pkg/types"
)

// ErrBlockNotFound is returned by BlockByNumber when the chain has no block
// at the requested number (the node answered with a null result).
var ErrBlockNotFound = errors.New("block not found")

// Blockchain abstracts the chain node consulted by the monitor. Every method
// issues a single stateless request; transport and protocol errors propagate
// to the caller, which decides whether to abort the tick or skip the item.
type Blockchain interface {
	// LatestBlockNumber returns the number of the most recent block known to
	// the node.
	LatestBlockNumber(ctx context.Context) (types.Hex, error)

	// BlockByNumber fetches a full block, including its transactions.
	// Returns ErrBlockNotFound if the chain has no such block.
	BlockByNumber(ctx context.Context, number types.Hex) (Block, error)

	// TransactionReceipt fetches the execution receipt for a transaction hash.
	TransactionReceipt(ctx context.Context, hash string) (*Receipt, error)

	// TransactionByHash fetches a single transaction by its hash.
	TransactionByHash(ctx context.Context, hash string) (Transaction, error)
}
