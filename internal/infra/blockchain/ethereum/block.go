package ethereum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/blocksentry/blocksentry/internal/pkg/types"
	"github.com/blocksentry/blocksentry/internal/txmonitor"
)

// nullResult is the raw JSON-RPC result for a missing object.
var nullResult = []byte("null")

type (
	// TransactionResponse represents a raw transaction object returned by the Ethereum JSON-RPC API.
	TransactionResponse struct {
		Type             string    `json:"type"`
		ChainID          string    `json:"chainId"`
		Nonce            string    `json:"nonce"`
		Gas              types.Hex `json:"gas"`
		To               string    `json:"to"`
		Value            types.Hex `json:"value"`
		Input            string    `json:"input"`
		Hash             string    `json:"hash"`
		BlockHash        string    `json:"blockHash"`
		BlockNumber      string    `json:"blockNumber"`
		TransactionIndex string    `json:"transactionIndex"`
		From             string    `json:"from"`
		GasPrice         types.Hex `json:"gasPrice"`
	}

	// BlockResponse represents the structure of a block returned by the Ethereum JSON-RPC API,
	// reduced to the fields the monitor consumes.
	BlockResponse struct {
		Hash         string                `json:"hash"`
		ParentHash   string                `json:"parentHash"`
		Miner        string                `json:"miner"`
		Number       types.Hex             `json:"number"`
		GasLimit     string                `json:"gasLimit"`
		GasUsed      string                `json:"gasUsed"`
		Timestamp    string                `json:"timestamp"`
		Size         string                `json:"size"`
		Transactions []TransactionResponse `json:"transactions"`
	}

	// ReceiptResponse represents a transaction receipt returned by the Ethereum JSON-RPC API.
	ReceiptResponse struct {
		TransactionHash   string    `json:"transactionHash"`
		BlockNumber       string    `json:"blockNumber"`
		Status            types.Hex `json:"status"`
		GasUsed           types.Hex `json:"gasUsed"`
		EffectiveGasPrice types.Hex `json:"effectiveGasPrice"`
	}
)

// toMonitorTransaction converts a TransactionResponse to a txmonitor.Transaction.
func (t TransactionResponse) toMonitorTransaction() txmonitor.Transaction {
	return txmonitor.Transaction{
		Hash:     t.Hash,
		From:     t.From,
		To:       t.To,
		Value:    t.Value,
		Gas:      t.Gas,
		GasPrice: t.GasPrice,
	}
}

// toMonitorBlock converts a BlockResponse to a txmonitor.Block.
func (b BlockResponse) toMonitorBlock() txmonitor.Block {
	transactions := make([]txmonitor.Transaction, len(b.Transactions))
	for i, t := range b.Transactions {
		transactions[i] = t.toMonitorTransaction()
	}

	return txmonitor.Block{
		Number:       b.Number,
		Hash:         b.Hash,
		Transactions: transactions,
	}
}

// toMonitorReceipt converts a ReceiptResponse to a txmonitor.Receipt.
func (r ReceiptResponse) toMonitorReceipt() *txmonitor.Receipt {
	return &txmonitor.Receipt{
		Status:  r.Status.Int() == 1,
		GasUsed: r.GasUsed,
	}
}

// LatestBlockNumber fetches the latest block number from the Ethereum node.
func (c *client) LatestBlockNumber(ctx context.Context) (types.Hex, error) {
	data, err := c.conn.Fetch(ctx, "eth_blockNumber")
	if err != nil {
		return "", err
	}

	var blockNumber types.Hex
	return blockNumber, json.Unmarshal(data, &blockNumber)
}

// BlockByNumber retrieves a full block by its number, including transactions.
// A null result from the node maps to txmonitor.ErrBlockNotFound.
func (c *client) BlockByNumber(ctx context.Context, number types.Hex) (txmonitor.Block, error) {
	data, err := c.conn.Fetch(ctx, "eth_getBlockByNumber", number, true)
	if err != nil {
		return txmonitor.Block{}, err
	}

	if bytes.Equal(bytes.TrimSpace(data), nullResult) {
		return txmonitor.Block{}, fmt.Errorf("%w: %s", txmonitor.ErrBlockNotFound, number)
	}

	var blockResponse BlockResponse
	if err := json.Unmarshal(data, &blockResponse); err != nil {
		return txmonitor.Block{}, err
	}

	return blockResponse.toMonitorBlock(), nil
}

// TransactionReceipt retrieves the execution receipt for a transaction hash.
// A null result (transaction pending or unknown) is reported as an error so
// the caller can treat the gas fee as unknown.
func (c *client) TransactionReceipt(ctx context.Context, hash string) (*txmonitor.Receipt, error) {
	data, err := c.conn.Fetch(ctx, "eth_getTransactionReceipt", hash)
	if err != nil {
		return nil, err
	}

	if bytes.Equal(bytes.TrimSpace(data), nullResult) {
		return nil, fmt.Errorf("no receipt available for transaction %s", hash)
	}

	var receiptResponse ReceiptResponse
	if err := json.Unmarshal(data, &receiptResponse); err != nil {
		return nil, err
	}

	return receiptResponse.toMonitorReceipt(), nil
}

// TransactionByHash retrieves a single transaction by its hash.
func (c *client) TransactionByHash(ctx context.Context, hash string) (txmonitor.Transaction, error) {
	data, err := c.conn.Fetch(ctx, "eth_getTransactionByHash", hash)
	if err != nil {
		return txmonitor.Transaction{}, err
	}

	if bytes.Equal(bytes.TrimSpace(data), nullResult) {
		return txmonitor.Transaction{}, fmt.Errorf("transaction %s not found", hash)
	}

	var txResponse TransactionResponse
	if err := json.Unmarshal(data, &txResponse); err != nil {
		return txmonitor.Transaction{}, err
	}

	return txResponse.toMonitorTransaction(), nil
}
