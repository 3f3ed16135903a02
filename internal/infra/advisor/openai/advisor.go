// Package openai implements the txmonitor.AnomalyAdvisor interface on top of
// an OpenAI-compatible chat-completion endpoint. The model reply is free
// text, so the verdict is recovered by a best-effort heuristic parse; any
// transport or service failure degrades to a disabled-looking advisory and
// never aborts transaction processing.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/blocksentry/blocksentry/internal/currency"
	"github.com/blocksentry/blocksentry/internal/txmonitor"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	// low temperature and a bounded reply keep the verdict as deterministic
	// as a sampled model allows
	maxCompletionTokens = 256
	temperature         = 0.1
)

const systemPrompt = "You are a blockchain security analyst. Assess whether the " +
	"transaction summary provided by the user looks anomalous, suspicious, or " +
	"fraudulent. Reply with a short verdict and explanation, and include a line " +
	"of the form \"Confidence: <0-100>\"."

// advisor implements txmonitor.AnomalyAdvisor. An empty apiKey means the
// advisor is disabled and Assess never performs a network call.
type advisor struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	symbol     string
}

var _ txmonitor.AnomalyAdvisor = (*advisor)(nil)

// config holds optional advisor settings.
type config struct {
	model   string
	baseURL string
	symbol  string
}

// Option configures the advisor.
type Option func(*config)

// WithModel overrides the completion model. Default: gpt-4o-mini.
func WithModel(m string) Option {
	return func(c *config) {
		if m != "" {
			c.model = m
		}
	}
}

// WithBaseURL overrides the API base URL, e.g. for an OpenAI-compatible
// proxy. Default: https://api.openai.com/v1.
func WithBaseURL(u string) Option {
	return func(c *config) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithSymbol sets the display-unit symbol used in transaction summaries.
// Default: ETH.
func WithSymbol(s string) Option {
	return func(c *config) {
		if s != "" {
			c.symbol = s
		}
	}
}

// NewAdvisor creates an anomaly advisor. Pass an empty apiKey to get a
// disabled advisor.
func NewAdvisor(httpClient *http.Client, apiKey string, opts ...Option) *advisor {
	cfg := config{
		model:   defaultModel,
		baseURL: defaultBaseURL,
		symbol:  "ETH",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &advisor{
		httpClient: httpClient,
		apiKey:     apiKey,
		model:      cfg.model,
		baseURL:    cfg.baseURL,
		symbol:     cfg.symbol,
	}
}

// Enabled reports whether a credential is configured.
func (a *advisor) Enabled() bool {
	return a.apiKey != ""
}

// Assess summarizes the transaction for the model and parses the reply.
// Failures are absorbed into the returned Advisory; the error is always nil.
func (a *advisor) Assess(ctx context.Context, tx txmonitor.Transaction, receipt *txmonitor.Receipt) (txmonitor.Advisory, error) {
	if !a.Enabled() {
		return txmonitor.Advisory{Explanation: "not available"}, nil
	}

	reply, err := a.complete(ctx, buildSummary(tx, receipt, a.symbol))
	if err != nil {
		return txmonitor.Advisory{Explanation: "error: " + err.Error()}, nil
	}

	v, ok := parseVerdict(reply)
	if !ok {
		return txmonitor.Advisory{Explanation: "error: unparseable model response"}, nil
	}

	return txmonitor.Advisory{
		Flagged:     v.flagged,
		Confidence:  v.confidence,
		Explanation: reply,
		Enabled:     true,
	}, nil
}

// buildSummary renders the fixed-format transaction summary sent to the model.
func buildSummary(tx txmonitor.Transaction, receipt *txmonitor.Receipt, symbol string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Transaction hash: %s\n", tx.Hash)
	fmt.Fprintf(&b, "From: %s\n", tx.From)
	fmt.Fprintf(&b, "To: %s\n", tx.To)
	fmt.Fprintf(&b, "Value: %s %s\n",
		currency.ToDisplay(tx.Value.Big(), currency.DefaultPrecision), symbol)
	fmt.Fprintf(&b, "Gas price (wei): %s\n", tx.GasPrice.Big().String())

	if receipt != nil {
		status := "failed"
		if receipt.Status {
			status = "success"
		}
		fmt.Fprintf(&b, "Gas used: %d\n", receipt.GasUsed.Int())
		fmt.Fprintf(&b, "Execution status: %s\n", status)
	} else {
		b.WriteString("Receipt: unavailable\n")
	}

	return b.String()
}

type (
	completionRequest struct {
		Model       string              `json:"model"`
		Messages    []completionMessage `json:"messages"`
		MaxTokens   int                 `json:"max_tokens"`
		Temperature float64             `json:"temperature"`
	}

	completionMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	completionResponse struct {
		Choices []struct {
			Message completionMessage `json:"message"`
		} `json:"choices"`
	}
)

// complete issues one chat-completion request and returns the reply text.
func (a *advisor) complete(ctx context.Context, userPrompt string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model: a.model,
		Messages: []completionMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   maxCompletionTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	res, err := a.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return "", fmt.Errorf("completion request failed with status %d: %s", res.StatusCode, snippet)
	}

	var data completionResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return "", err
	}

	if len(data.Choices) == 0 {
		return "", fmt.Errorf("completion response contains no choices")
	}

	return data.Choices[0].Message.Content, nil
}
