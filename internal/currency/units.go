// Package currency converts between the chain's base unit (wei, 10^-18 of the
// display unit) and the human-readable display unit. All scaling arithmetic is
// performed on arbitrary-precision integers: a gas fee is the product of two
// base-unit quantities and can exceed what a float64 represents exactly.
package currency

import (
	"fmt"
	"math/big"
)

// DefaultPrecision is the number of fractional display-unit digits emitted
// when no explicit precision is requested.
const DefaultPrecision = 6

// weiPerUnit is 10^18, the number of base units per display unit.
var weiPerUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// ToDisplay converts a base-unit amount to a fixed-precision decimal string in
// display units. The conversion is pure integer arithmetic: the amount is
// scaled by 10^precision, divided by 10^18, and the quotient split into whole
// and fractional digits. Negative amounts keep their sign.
func ToDisplay(amount *big.Int, precision int) string {
	if amount == nil {
		amount = new(big.Int)
	}
	if precision < 0 {
		precision = 0
	}

	sign := ""
	abs := new(big.Int).Abs(amount)
	if amount.Sign() < 0 {
		sign = "-"
	}

	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(precision)), nil)

	scaled := new(big.Int).Mul(abs, pow)
	scaled.Quo(scaled, weiPerUnit)

	whole, frac := new(big.Int).QuoRem(scaled, pow, new(big.Int))
	if precision == 0 {
		return sign + whole.String()
	}

	return fmt.Sprintf("%s%s.%0*s", sign, whole.String(), precision, frac.String())
}

// Fee returns the exact base-unit gas fee, gasUsed * gasPrice.
func Fee(gasUsed, gasPrice *big.Int) *big.Int {
	if gasUsed == nil || gasPrice == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(gasUsed, gasPrice)
}

// FormatFee computes gasUsed * gasPrice and renders it in display units at
// the default precision.
func FormatFee(gasUsed, gasPrice *big.Int) string {
	return ToDisplay(Fee(gasUsed, gasPrice), DefaultPrecision)
}

// FromDisplay converts a display-unit amount (e.g., a configured threshold)
// to base units. Only entry point where floating point touches amounts; the
// result is truncated toward zero.
func FromDisplay(v float64) *big.Int {
	scaled := new(big.Float).Mul(big.NewFloat(v), new(big.Float).SetInt(weiPerUnit))
	out, _ := scaled.Int(nil)
	return out
}
