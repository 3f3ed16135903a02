// Package ethereum provides an implementation of the txmonitor.Blockchain
// interface for Ethereum-compatible nodes using a JSON-RPC client.
package ethereum

import (
	"github.com/blocksentry/blocksentry/internal/pkg/transport/jsonrpc"
	"github.com/blocksentry/blocksentry/internal/txmonitor"
)

// client implements the txmonitor.Blockchain interface for Ethereum-based
// networks. It communicates with an Ethereum node via a JSON-RPC client.
type client struct {
	conn jsonrpc.Client // Underlying JSON-RPC client used to interact with the Ethereum node
}

// Ensure client implements the txmonitor.Blockchain interface at compile time.
var _ txmonitor.Blockchain = (*client)(nil)

// NewClient creates a new Ethereum blockchain client using the provided
// JSON-RPC connection.
func NewClient(conn jsonrpc.Client) *client {
	return &client{
		conn: conn,
	}
}
