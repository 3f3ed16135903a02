package ethereum

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/blocksentry/blocksentry/internal/pkg/types"
	"github.com/blocksentry/blocksentry/internal/txmonitor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fetchFunc adapts a function into a jsonrpc.Client for testing.
type fetchFunc func(ctx context.Context, method string, params ...any) (json.RawMessage, error)

func (f fetchFunc) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	return f(ctx, method, params...)
}

func TestClient_LatestBlockNumber(t *testing.T) {
	t.Run("decodes the block number", func(t *testing.T) {
		c := NewClient(fetchFunc(func(_ context.Context, method string, _ ...any) (json.RawMessage, error) {
			assert.Equal(t, "eth_blockNumber", method)
			return json.RawMessage(`"0x1b4"`), nil
		}))

		number, err := c.LatestBlockNumber(t.Context())
		assert.NoError(t, err)
		assert.Equal(t, types.Hex("0x1b4"), number)
	})

	t.Run("propagates transport errors", func(t *testing.T) {
		boom := errors.New("unreachable")
		c := NewClient(fetchFunc(func(context.Context, string, ...any) (json.RawMessage, error) {
			return nil, boom
		}))

		_, err := c.LatestBlockNumber(t.Context())
		assert.ErrorIs(t, err, boom)
	})
}

func TestClient_BlockByNumber(t *testing.T) {
	t.Run("decodes a full block with transactions", func(t *testing.T) {
		c := NewClient(fetchFunc(func(_ context.Context, method string, params ...any) (json.RawMessage, error) {
			assert.Equal(t, "eth_getBlockByNumber", method)
			require.Len(t, params, 2)
			assert.Equal(t, types.Hex("0x1b4"), params[0])
			assert.Equal(t, true, params[1])

			return json.RawMessage(`{
				"number": "0x1b4",
				"hash": "0xblockhash",
				"transactions": [{
					"hash": "0xtxhash",
					"from": "0xsender",
					"to": "0xrecipient",
					"value": "0x1bc16d674ec80000",
					"gas": "0x5208",
					"gasPrice": "0x5d21dba00"
				}]
			}`), nil
		}))

		block, err := c.BlockByNumber(t.Context(), "0x1b4")

		require.NoError(t, err)
		assert.Equal(t, types.Hex("0x1b4"), block.Number)
		require.Len(t, block.Transactions, 1)
		assert.Equal(t, "0xtxhash", block.Transactions[0].Hash)
		assert.Equal(t, "2000000000000000000", block.Transactions[0].Value.Big().String())
	})

	t.Run("null result maps to ErrBlockNotFound", func(t *testing.T) {
		c := NewClient(fetchFunc(func(context.Context, string, ...any) (json.RawMessage, error) {
			return json.RawMessage(`null`), nil
		}))

		_, err := c.BlockByNumber(t.Context(), "0xffffff")
		assert.ErrorIs(t, err, txmonitor.ErrBlockNotFound)
	})
}

func TestClient_TransactionReceipt(t *testing.T) {
	t.Run("decodes status and gas used", func(t *testing.T) {
		c := NewClient(fetchFunc(func(_ context.Context, method string, params ...any) (json.RawMessage, error) {
			assert.Equal(t, "eth_getTransactionReceipt", method)
			require.Len(t, params, 1)
			assert.Equal(t, "0xtxhash", params[0])

			return json.RawMessage(`{"status":"0x1","gasUsed":"0x5208"}`), nil
		}))

		receipt, err := c.TransactionReceipt(t.Context(), "0xtxhash")

		require.NoError(t, err)
		assert.True(t, receipt.Status)
		assert.Equal(t, int64(21000), receipt.GasUsed.Int())
	})

	t.Run("failed execution decodes as status false", func(t *testing.T) {
		c := NewClient(fetchFunc(func(context.Context, string, ...any) (json.RawMessage, error) {
			return json.RawMessage(`{"status":"0x0","gasUsed":"0x5208"}`), nil
		}))

		receipt, err := c.TransactionReceipt(t.Context(), "0xtxhash")

		require.NoError(t, err)
		assert.False(t, receipt.Status)
	})

	t.Run("null receipt is an error", func(t *testing.T) {
		c := NewClient(fetchFunc(func(context.Context, string, ...any) (json.RawMessage, error) {
			return json.RawMessage(`null`), nil
		}))

		_, err := c.TransactionReceipt(t.Context(), "0xpending")
		assert.Error(t, err)
	})
}

func TestClient_TransactionByHash(t *testing.T) {
	t.Run("decodes the transaction", func(t *testing.T) {
		c := NewClient(fetchFunc(func(_ context.Context, method string, _ ...any) (json.RawMessage, error) {
			assert.Equal(t, "eth_getTransactionByHash", method)
			return json.RawMessage(`{"hash":"0xtxhash","from":"0xsender","value":"0xde0b6b3a7640000","gasPrice":"0x1"}`), nil
		}))

		tx, err := c.TransactionByHash(t.Context(), "0xtxhash")

		require.NoError(t, err)
		assert.Equal(t, "0xtxhash", tx.Hash)
		assert.Equal(t, "1000000000000000000", tx.Value.Big().String())
	})

	t.Run("null result is an error", func(t *testing.T) {
		c := NewClient(fetchFunc(func(context.Context, string, ...any) (json.RawMessage, error) {
			return json.RawMessage(`null`), nil
		}))

		_, err := c.TransactionByHash(t.Context(), "0xmissing")
		assert.Error(t, err)
	})
}
