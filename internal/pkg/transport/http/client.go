// Package http builds the retrying HTTP clients behind the monitor's chain
// RPC and model-completion calls. It is a thin layer over hashicorp's
// retryablehttp with functional options for the timeout and retry knobs.
package http

import (
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

type config struct {
	timeout      time.Duration // per-request deadline, redirects and body read included
	retryWaitMin time.Duration // floor of the backoff between attempts
	retryWaitMax time.Duration // ceiling of the backoff between attempts
	retryMax     int           // additional attempts after the first request
}

// Option configures the client.
type Option func(*config)

// NewClient returns a retryablehttp.Client with the library's own logging
// silenced; callers that need a plain *http.Client wrap it with
// StandardClient. Defaults: 5s timeout, 1s-5s backoff, 2 retries.
func NewClient(opts ...Option) *retryablehttp.Client {
	cfg := config{
		timeout:      5 * time.Second,
		retryWaitMin: 1 * time.Second,
		retryWaitMax: 5 * time.Second,
		retryMax:     2,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.HTTPClient.Timeout = cfg.timeout
	client.RetryWaitMin = cfg.retryWaitMin
	client.RetryWaitMax = cfg.retryWaitMax
	client.RetryMax = cfg.retryMax
	return client
}

// WithTimeout sets the per-request deadline. Default: 5s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithRetryWaitMin sets the backoff floor between attempts. Default: 1s.
func WithRetryWaitMin(d time.Duration) Option {
	return func(c *config) {
		c.retryWaitMin = d
	}
}

// WithRetryWaitMax sets the backoff ceiling between attempts. Default: 5s.
func WithRetryWaitMax(d time.Duration) Option {
	return func(c *config) {
		c.retryWaitMax = d
	}
}

// WithRetryMax sets how many times a failed request is retried. Default: 2.
func WithRetryMax(n int) Option {
	return func(c *config) {
		c.retryMax = n
	}
}
