package openai

import (
	"regexp"
	"strconv"
	"strings"
)

// defaultConfidence applies when the reply never states a confidence figure.
const defaultConfidence = 50

// anomalyTokens, when present anywhere in the reply, mark the transaction as
// flagged.
var anomalyTokens = []string{"anomalous", "suspicious", "fraudulent"}

// confidencePattern captures the first integer following the word
// "confidence", e.g. "Confidence: 85" or "confidence level of 85%".
var confidencePattern = regexp.MustCompile(`(?i)confidence[^0-9]*([0-9]+)`)

// verdict is the structured reading of a free-text model reply.
type verdict struct {
	flagged    bool
	confidence int
}

// parseVerdict recovers a verdict from the reply text. The boolean result is
// false when the text carries no usable signal at all.
func parseVerdict(text string) (verdict, bool) {
	if strings.TrimSpace(text) == "" {
		return verdict{}, false
	}

	lower := strings.ToLower(text)

	var v verdict
	for _, token := range anomalyTokens {
		if strings.Contains(lower, token) {
			v.flagged = true
			break
		}
	}

	v.confidence = defaultConfidence
	if m := confidencePattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			v.confidence = clampConfidence(n)
		}
	}

	return v, true
}

func clampConfidence(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	default:
		return n
	}
}
