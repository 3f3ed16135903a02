package txmonitor

import "context"

// Advisory is the outcome of an anomaly assessment. It is best-effort by
// construction: the underlying model reply is free text, and a reply that
// could not be understood degrades to a zero-confidence advisory rather than
// an error.
type Advisory struct {
	Flagged     bool   // true if the advisor considers the transaction anomalous
	Confidence  int    // 0-100; how certain the advisor is about the verdict
	Explanation string // the advisor's reply, verbatim
	Enabled     bool   // false when no advisor credential is configured
}

// AnomalyAdvisor is the optional language-model-backed assessment step.
// Implementations absorb their own transport and service failures, converting
// them into a disabled-looking Advisory, so an advisor outage never aborts
// transaction processing.
type AnomalyAdvisor interface {
	// Enabled reports whether the advisor has a credential and will actually
	// be consulted.
	Enabled() bool

	// Assess summarizes the transaction and receipt for the model and parses
	// its reply into an Advisory.
	Assess(ctx context.Context, tx Transaction, receipt *Receipt) (Advisory, error)
}

// disabledAdvisor is the default AnomalyAdvisor when no credential is
// configured. It never performs a network call.
type disabledAdvisor struct{}

func (disabledAdvisor) Enabled() bool {
	return false
}

func (disabledAdvisor) Assess(_ context.Context, _ Transaction, _ *Receipt) (Advisory, error) {
	return Advisory{Explanation: "not available"}, nil
}
