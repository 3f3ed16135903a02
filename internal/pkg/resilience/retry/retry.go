// Package retry provides a configurable retry mechanism for operations that may fail temporarily.
// It wraps the retry-go package from Avast and exposes a simple interface with functional
// options for customizing retry behavior. Exponential backoff is used between attempts.
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry defines the interface for retry operations.
type Retry interface {
	// Execute runs the given function with the configured retry logic.
	// The operation should be idempotent. If the context is canceled or
	// times out, retrying stops and the context error is returned.
	Execute(ctx context.Context, operation func() error) error
}

// config holds internal settings for the retry mechanism.
type config struct {
	attempts    uint          // maximum number of attempts, including the first
	delay       time.Duration // base delay between retry attempts
	maxDelay    time.Duration // maximum delay between retry attempts
	lastErrOnly bool          // whether to return only the last error
}

// Option defines a functional option for configuring the retry mechanism.
type Option func(*config)

// retrier implements the Retry interface using the retry-go package.
type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New creates and returns a Retry implementation configured with the provided
// options. Defaults: 3 attempts, 1s base delay, 5s max delay, last error only.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

// Execute implements the Retry interface.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	options := []retry.Option{
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
	}

	return retry.Do(operation, options...)
}

// WithAttempts sets the maximum number of attempts (including the initial attempt).
// Default: 3 (1 initial attempt + 2 retries).
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay between retry attempts. With exponential
// backoff, subsequent delays increase from this value. Default: 1 second.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the exponential growth of the delay between attempts.
// Default: 5 seconds.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly sets whether to return only the error from the final
// attempt rather than all attempt errors combined. Default: true.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}
