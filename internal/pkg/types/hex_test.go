package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexFromString(t *testing.T) {
	t.Run("accepts valid hex", func(t *testing.T) {
		h, err := HexFromString("0x1a")
		assert.NoError(t, err)
		assert.Equal(t, Hex("0x1a"), h)
	})

	t.Run("accepts quantities wider than 64 bits", func(t *testing.T) {
		// 1000 ETH in wei does not fit in an int64
		h, err := HexFromString("0x3635c9adc5dea00000")
		assert.NoError(t, err)
		assert.Equal(t, "1000000000000000000000", h.Big().String())
	})

	t.Run("rejects missing prefix", func(t *testing.T) {
		_, err := HexFromString("1a")
		assert.Error(t, err)
	})

	t.Run("rejects invalid digits", func(t *testing.T) {
		_, err := HexFromString("0xzz")
		assert.Error(t, err)
	})
}

func TestHex_UnmarshalJSON(t *testing.T) {
	t.Run("valid quantity", func(t *testing.T) {
		var h Hex
		err := json.Unmarshal([]byte(`"0x10"`), &h)
		assert.NoError(t, err)
		assert.Equal(t, int64(16), h.Int())
	})

	t.Run("invalid quantity", func(t *testing.T) {
		var h Hex
		err := json.Unmarshal([]byte(`"nope"`), &h)
		assert.Error(t, err)
	})
}

func TestHex_Add(t *testing.T) {
	assert.Equal(t, Hex("0x101"), Hex("0x100").Add(1))
	assert.Equal(t, Hex("0x1"), Hex("").Add(1))
}

func TestHex_Big(t *testing.T) {
	t.Run("empty decodes as zero", func(t *testing.T) {
		assert.Zero(t, Hex("").Big().Sign())
	})

	t.Run("round trips through HexFromBig", func(t *testing.T) {
		v := new(big.Int)
		v.SetString("123456789012345678901234567890", 10)
		assert.Equal(t, v, HexFromBig(v).Big())
	})
}

func TestHex_IsZero(t *testing.T) {
	assert.True(t, Hex("0x0").IsZero())
	assert.True(t, Hex("").IsZero())
	assert.False(t, Hex("0x1").IsZero())
}
