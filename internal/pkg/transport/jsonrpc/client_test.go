package jsonrpc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	t.Run("unwraps the result field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "2.0", req["jsonrpc"])
			assert.Equal(t, "eth_blockNumber", req["method"])
			assert.NotEmpty(t, req["id"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"1","result":"0x10"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.Client(), srv.URL)

		result, err := c.Fetch(t.Context(), "eth_blockNumber")
		assert.NoError(t, err)
		assert.Equal(t, `"0x10"`, string(result))
	})

	t.Run("forwards params as a positional array", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Params []any `json:"params"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, []any{"0x1", true}, req.Params)

			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"1","result":{}}`))
		}))
		defer srv.Close()

		c := NewClient(srv.Client(), srv.URL)

		_, err := c.Fetch(t.Context(), "eth_getBlockByNumber", "0x1", true)
		assert.NoError(t, err)
	})

	t.Run("wraps provider errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"1","error":{"code":-32601,"message":"method not found"}}`))
		}))
		defer srv.Close()

		c := NewClient(srv.Client(), srv.URL)

		_, err := c.Fetch(t.Context(), "eth_unknown")
		assert.ErrorIs(t, err, ErrProviderReturnedError)
		assert.Contains(t, err.Error(), "method not found")
	})

	t.Run("fails on unreachable endpoint", func(t *testing.T) {
		c := NewClient(http.DefaultClient, "http://127.0.0.1:0")

		_, err := c.Fetch(t.Context(), "eth_blockNumber")
		assert.Error(t, err)
	})
}
