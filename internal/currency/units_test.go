package currency

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func wei(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid integer literal: " + s)
	}
	return v
}

func TestToDisplay(t *testing.T) {
	t.Run("one full unit", func(t *testing.T) {
		assert.Equal(t, "1.000000", ToDisplay(wei("1000000000000000000"), 6))
	})

	t.Run("sub-unit amount keeps leading zeros", func(t *testing.T) {
		assert.Equal(t, "0.000525", ToDisplay(wei("525000000000000"), 6))
	})

	t.Run("truncates digits beyond the requested precision", func(t *testing.T) {
		// 1.9999999... truncates, never rounds up
		assert.Equal(t, "1.999999", ToDisplay(wei("1999999999999999999"), 6))
	})

	t.Run("zero precision drops the fraction", func(t *testing.T) {
		assert.Equal(t, "1", ToDisplay(wei("1999999999999999999"), 0))
	})

	t.Run("zero amount", func(t *testing.T) {
		assert.Equal(t, "0.000000", ToDisplay(new(big.Int), 6))
	})

	t.Run("nil amount treated as zero", func(t *testing.T) {
		assert.Equal(t, "0.000000", ToDisplay(nil, 6))
	})

	t.Run("amount beyond float64 exactness", func(t *testing.T) {
		// 123456789.123456789... ETH in wei
		assert.Equal(t, "123456789.123456", ToDisplay(wei("123456789123456789123456789"), 6))
	})

	t.Run("negative amounts keep the sign", func(t *testing.T) {
		assert.Equal(t, "-0.000525", ToDisplay(wei("-525000000000000"), 6))
	})
}

func TestToDisplay_roundTrip(t *testing.T) {
	// Converting to display units and re-scaling by 10^18 reproduces the
	// amount within one unit of the requested precision.
	amounts := []string{
		"0",
		"1",
		"999999999999",
		"1000000000000000000",
		"123456789123456789123456789",
	}

	for _, a := range amounts {
		in := wei(a)
		out := ToDisplay(in, 6)

		parsed, ok := new(big.Float).SetString(out)
		assert.True(t, ok, "display output %q must parse as a decimal", out)

		back, _ := new(big.Float).Mul(parsed, new(big.Float).SetInt(weiPerUnit)).Int(nil)

		diff := new(big.Int).Abs(new(big.Int).Sub(in, back))
		// one unit at precision 6 is 10^12 wei
		assert.True(t, diff.Cmp(wei("1000000000000")) <= 0,
			"round trip of %s drifted by %s wei", a, diff)
	}
}

func TestFee(t *testing.T) {
	t.Run("matches manual computation", func(t *testing.T) {
		fee := Fee(big.NewInt(21000), big.NewInt(25_000_000_000))
		assert.Equal(t, wei("525000000000000"), fee)
	})

	t.Run("nil operands yield zero", func(t *testing.T) {
		assert.Zero(t, Fee(nil, big.NewInt(1)).Sign())
		assert.Zero(t, Fee(big.NewInt(1), nil).Sign())
	})

	t.Run("product exceeding 53-bit float safety stays exact", func(t *testing.T) {
		fee := Fee(wei("30000000"), wei("900000000000"))
		assert.Equal(t, wei("27000000000000000000"), fee)
	})
}

func TestFormatFee(t *testing.T) {
	assert.Equal(t, "0.000525", FormatFee(big.NewInt(21000), big.NewInt(25_000_000_000)))
}

func TestFromDisplay(t *testing.T) {
	assert.Equal(t, wei("1000000000000000000"), FromDisplay(1))
	assert.Equal(t, wei("500000000000000000"), FromDisplay(0.5))
	assert.Zero(t, FromDisplay(0).Sign())
}
