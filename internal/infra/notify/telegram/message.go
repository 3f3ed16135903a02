package telegram

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/blocksentry/blocksentry/internal/currency"
	"github.com/blocksentry/blocksentry/internal/txmonitor"
)

// formatAlert assembles the alert message text for Telegram, HTML parse mode.
func formatAlert(alert txmonitor.Alert, symbol, explorerBaseURL string) string {
	var b strings.Builder

	b.WriteString("🚨 <b>Significant transaction detected</b>\n\n")

	fmt.Fprintf(&b, "<b>Network:</b> %s\n", html.EscapeString(alert.Network))
	fmt.Fprintf(&b, "<b>Block:</b> %d\n", alert.BlockNumber.Int())
	fmt.Fprintf(&b, "<b>Hash:</b> <code>%s</code>\n", html.EscapeString(alert.Transaction.Hash))
	fmt.Fprintf(&b, "<b>Status:</b> %s\n", statusLabel(alert.Receipt))
	fmt.Fprintf(&b, "<b>From:</b> <code>%s</code>\n", html.EscapeString(currency.ShortenAddress(alert.Transaction.From)))
	fmt.Fprintf(&b, "<b>To:</b> <code>%s</code>\n", html.EscapeString(currency.ShortenAddress(alert.Transaction.To)))
	fmt.Fprintf(&b, "<b>Value:</b> %s %s\n",
		currency.ToDisplay(alert.Transaction.Value.Big(), currency.DefaultPrecision), symbol)

	if alert.Receipt != nil {
		fmt.Fprintf(&b, "<b>Gas used:</b> %d\n", alert.Receipt.GasUsed.Int())
		fmt.Fprintf(&b, "<b>Gas fee:</b> %s %s\n",
			currency.FormatFee(alert.Receipt.GasUsed.Big(), alert.Transaction.GasPrice.Big()), symbol)
	}

	if len(alert.Reasons) > 0 {
		b.WriteString("\n<b>Reasons:</b>\n")
		for _, reason := range alert.Reasons {
			fmt.Fprintf(&b, "• %s\n", html.EscapeString(reason))
		}
	}

	if alert.Advisory.Enabled && alert.Advisory.Flagged {
		fmt.Fprintf(&b, "\n🤖 <b>Anomaly flagged</b> (confidence %d%%)\n%s\n",
			alert.Advisory.Confidence, html.EscapeString(alert.Advisory.Explanation))
	}

	fmt.Fprintf(&b, "\n<b>Time:</b> %s\n", alert.ObservedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, `<a href="%s/tx/%s">View on explorer</a>`,
		explorerBaseURL, html.EscapeString(alert.Transaction.Hash))

	return b.String()
}

// statusLabel renders the receipt outcome; a missing receipt is unknown, not
// failed.
func statusLabel(receipt *txmonitor.Receipt) string {
	switch {
	case receipt == nil:
		return "❓ unknown"
	case receipt.Status:
		return "✅ success"
	default:
		return "❌ failed"
	}
}
