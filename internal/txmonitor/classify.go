package txmonitor

import (
	"fmt"
	"math/big"

	"github.com/blocksentry/blocksentry/internal/currency"
)

// Thresholds holds the significance thresholds in base units, plus the
// display symbol used when rendering reasons. A nil threshold disables the
// corresponding check.
type Thresholds struct {
	Value  *big.Int // base-unit value above which a transaction is significant
	Fee    *big.Int // base-unit gas fee above which a transaction is significant
	Symbol string   // display-unit symbol for reason strings (e.g., "ETH")
}

// NewThresholds builds Thresholds from display-unit amounts.
func NewThresholds(value, fee float64, symbol string) Thresholds {
	return Thresholds{
		Value:  currency.FromDisplay(value),
		Fee:    currency.FromDisplay(fee),
		Symbol: symbol,
	}
}

// ClassificationResult is the verdict derived for one transaction. A
// transaction is significant iff at least one reason applies. Reasons keep
// the order in which the checks run: value first, fee second.
type ClassificationResult struct {
	Significant bool
	Reasons     []string
}

// Classify tests a transaction against both thresholds. Both checks always
// run so both reasons can appear together. The gas fee is derived from the
// receipt's gasUsed and the transaction's gasPrice; a missing receipt means
// the fee is unknown and treated as zero, so only the value check can fire.
func Classify(tx Transaction, receipt *Receipt, thresholds Thresholds) ClassificationResult {
	var reasons []string

	value := tx.Value.Big()
	if thresholds.Value != nil && value.Cmp(thresholds.Value) > 0 {
		reasons = append(reasons, fmt.Sprintf("Large transaction: %s %s",
			currency.ToDisplay(value, currency.DefaultPrecision), thresholds.Symbol))
	}

	fee := new(big.Int)
	if receipt != nil {
		fee = currency.Fee(receipt.GasUsed.Big(), tx.GasPrice.Big())
	}
	if thresholds.Fee != nil && fee.Cmp(thresholds.Fee) > 0 {
		reasons = append(reasons, fmt.Sprintf("High gas fee: %s %s",
			currency.ToDisplay(fee, currency.DefaultPrecision), thresholds.Symbol))
	}

	return ClassificationResult{
		Significant: len(reasons) > 0,
		Reasons:     reasons,
	}
}
