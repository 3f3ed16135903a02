// Package txmonitor implements the polling-and-classification loop: deciding
// which block to fetch next, avoiding duplicate processing, and deriving a
// significance verdict for every transaction in a newly observed block.
package txmonitor

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/blocksentry/blocksentry/internal/pkg/logger"
	"github.com/blocksentry/blocksentry/internal/pkg/resilience/retry"
	"github.com/blocksentry/blocksentry/internal/pkg/types"
)

// ErrServiceAlreadyStarted is returned if Start is called more than once.
var ErrServiceAlreadyStarted = errors.New("service already started")

const (
	defaultPollInterval = 30 * time.Second
	defaultTickTimeout  = 25 * time.Second

	// escalationConfidence is the advisor confidence above which a flagged
	// transaction is escalated to significant.
	escalationConfidence = 60

	// maxBlocksPerTick caps the catch-up window when the monitor falls
	// behind the chain head; older blocks are skipped rather than replayed.
	maxBlocksPerTick = 5
)

// Service defines the monitor lifecycle. Start launches the poll loop in the
// background; Close stops it, letting the in-flight tick finish.
type Service interface {
	Start(ctx context.Context) error
	Close()
}

// closeFunc defines a cleanup routine to stop the poll goroutine.
type closeFunc func()

type service struct {
	mu        sync.Mutex // protects lifecycle state
	isStarted bool
	closeFunc closeFunc

	network    string
	blockchain Blockchain
	thresholds Thresholds

	checkpoint CheckpointStorage
	notifier   AlertNotifier
	advisor    AnomalyAdvisor
	retry      retry.Retry

	pollInterval time.Duration
	tickTimeout  time.Duration

	// lastProcessed is set by Start from the checkpoint storage and then
	// owned exclusively by the poll goroutine. Ticks run serialized in that
	// goroutine, so no further synchronization is needed.
	lastProcessed types.Hex
}

var _ Service = (*service)(nil)

// config carries the optional dependencies applied through Option values.
type config struct {
	checkpoint   CheckpointStorage
	notifier     AlertNotifier
	advisor      AnomalyAdvisor
	retry        retry.Retry
	pollInterval time.Duration
	tickTimeout  time.Duration
}

// Option configures optional service dependencies.
type Option func(*config)

// WithCheckpointStorage mirrors the last processed block number to persistent
// storage, so a restart resumes without reprocessing. Default: no persistence.
func WithCheckpointStorage(cs CheckpointStorage) Option {
	return func(c *config) {
		c.checkpoint = cs
	}
}

// WithNotifier sets the alert delivery channel. Default: alerts are logged
// and dropped.
func WithNotifier(n AlertNotifier) Option {
	return func(c *config) {
		c.notifier = n
	}
}

// WithAdvisor sets the anomaly advisor. Default: advisor disabled.
func WithAdvisor(a AnomalyAdvisor) Option {
	return func(c *config) {
		c.advisor = a
	}
}

// WithReceiptRetry wraps receipt lookups with the given retry policy.
// Default: a single attempt per receipt.
func WithReceiptRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// WithPollInterval sets the timer interval between ticks. Default: 30s.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithTickTimeout bounds the duration of a single tick so one slow upstream
// round trip cannot starve the timer indefinitely. Default: 25s.
func WithTickTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.tickTimeout = d
		}
	}
}

// New creates a monitor for the given network and chain client.
func New(network string, blockchain Blockchain, thresholds Thresholds, opts ...Option) *service {
	cfg := config{
		checkpoint:   nopCheckpoint{},
		notifier:     nopNotifier{},
		advisor:      disabledAdvisor{},
		pollInterval: defaultPollInterval,
		tickTimeout:  defaultTickTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		network:      network,
		blockchain:   blockchain,
		thresholds:   thresholds,
		checkpoint:   cfg.checkpoint,
		notifier:     cfg.notifier,
		advisor:      cfg.advisor,
		retry:        cfg.retry,
		pollInterval: cfg.pollInterval,
		tickTimeout:  cfg.tickTimeout,
	}
}

// Start loads the checkpoint and launches the poll loop. Ticks run one at a
// time in a single goroutine: a tick that overruns the interval delays the
// next one, it never runs concurrently with it.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	lastProcessed, err := s.checkpoint.LoadLastProcessed(ctx, s.network)
	if err != nil && !errors.Is(err, ErrNoBlockProcessed) {
		return err
	}
	s.lastProcessed = lastProcessed

	ctx, cancel := context.WithCancel(ctx)
	s.closeFunc = closeFunc(cancel)

	if err := s.notifier.NotifyStatus(ctx, "transaction monitor started on "+s.network); err != nil {
		logger.Warn(ctx, "failed to deliver startup status", "error", err)
	}

	go s.run(ctx)

	s.isStarted = true
	return nil
}

// Close stops the poll loop. The in-flight tick is not interrupted beyond its
// own timeout; it finishes and the goroutine exits.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isStarted {
		return
	}

	if s.closeFunc != nil {
		s.closeFunc()
	}
	s.closeFunc = nil
	s.isStarted = false

	// best effort; the parent context may already be gone
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.notifier.NotifyStatus(ctx, "transaction monitor stopped on "+s.network); err != nil {
		logger.Warn(ctx, "failed to deliver shutdown status", "error", err)
	}
}

// run executes one tick immediately and then one per timer firing until the
// context is canceled. time.Ticker drops missed firings, which is exactly the
// wanted behavior for an overrunning tick.
func (s *service) run(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one fetch-classify-notify sequence. Top-level failures are
// logged and leave lastProcessed untouched so the next tick retries from
// scratch; per-transaction failures are contained inside processTransaction.
//
// When a previous block is known, every block between it and the latest is
// processed in order, capped at maxBlocksPerTick so a long outage cannot pin
// a tick against its timeout. Blocks older than the window are skipped.
func (s *service) tick(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.tickTimeout)
	defer cancel()

	latest, err := s.blockchain.LatestBlockNumber(ctx)
	if err != nil {
		logger.Error(ctx, "failed to fetch latest block number",
			"network", s.network,
			"error", err,
		)
		return
	}

	first := latest
	if s.lastProcessed != "" {
		behind := latest.Int() - s.lastProcessed.Int()
		if behind <= 0 {
			logger.Debug(ctx, "latest block already processed",
				"network", s.network,
				"block.number", latest,
			)
			return
		}

		first = s.lastProcessed.Add(1)
		if behind > maxBlocksPerTick {
			first = types.HexFromBig(big.NewInt(latest.Int() - maxBlocksPerTick + 1))
			logger.Warn(ctx, "monitor is behind, skipping older blocks",
				"network", s.network,
				"blocks.skipped", behind-maxBlocksPerTick,
				"block.first", first,
				"block.latest", latest,
			)
		}
	}

	for number := first; number.Int() <= latest.Int(); number = number.Add(1) {
		if !s.processBlock(ctx, number) {
			return
		}
	}
}

// processBlock handles one block end to end and reports whether it completed.
// On success lastProcessed advances and is mirrored to storage; a persistence
// failure is logged but does not invalidate the block.
func (s *service) processBlock(ctx context.Context, number types.Hex) bool {
	block, err := s.blockchain.BlockByNumber(ctx, number)
	if err != nil {
		logger.Error(ctx, "failed to fetch block",
			"network", s.network,
			"block.number", number,
			"error", err,
		)
		return false
	}

	if len(block.Transactions) == 0 {
		logger.Info(ctx, "block has no transactions",
			"network", s.network,
			"block.number", block.Number,
		)
	}

	for _, tx := range block.Transactions {
		s.processTransaction(ctx, block, tx)
	}

	s.lastProcessed = number
	if err := s.checkpoint.SaveLastProcessed(ctx, s.network, number); err != nil {
		logger.Error(ctx, "failed to persist last processed block",
			"network", s.network,
			"block.number", number,
			"error", err,
		)
	}

	return true
}

// processTransaction classifies a single transaction and sends an alert when
// it is significant. Every failure is absorbed here: one bad transaction
// never aborts the block.
func (s *service) processTransaction(ctx context.Context, block Block, tx Transaction) {
	if tx.Value.IsZero() {
		return
	}

	receipt, err := s.fetchReceipt(ctx, tx.Hash)
	if err != nil {
		logger.Warn(ctx, "failed to fetch transaction receipt, fee treated as unknown",
			"network", s.network,
			"tx.hash", tx.Hash,
			"error", err,
		)
		receipt = nil
	}

	result := Classify(tx, receipt, s.thresholds)

	var advisory Advisory
	if result.Significant || s.advisor.Enabled() {
		advisory = s.assess(ctx, tx, receipt)
		if advisory.Flagged && advisory.Confidence > escalationConfidence {
			result.Significant = true
		}
	}

	if !result.Significant {
		return
	}

	logger.Info(ctx, "significant transaction detected",
		"network", s.network,
		"block.number", block.Number,
		"tx.hash", tx.Hash,
		"reasons", result.Reasons,
		"advisory.flagged", advisory.Flagged,
	)

	alert := Alert{
		Network:     s.network,
		BlockNumber: block.Number,
		Transaction: tx,
		Receipt:     receipt,
		Reasons:     result.Reasons,
		Advisory:    advisory,
		ObservedAt:  time.Now().UTC(),
	}
	if err := s.notifier.NotifyAlert(ctx, alert); err != nil {
		logger.Error(ctx, "failed to deliver alert",
			"network", s.network,
			"tx.hash", tx.Hash,
			"error", err,
		)
	}
}

// fetchReceipt looks up a receipt, applying the configured retry policy if any.
func (s *service) fetchReceipt(ctx context.Context, hash string) (*Receipt, error) {
	if s.retry == nil {
		return s.blockchain.TransactionReceipt(ctx, hash)
	}

	var receipt *Receipt
	err := s.retry.Execute(ctx, func() error {
		var err error
		receipt, err = s.blockchain.TransactionReceipt(ctx, hash)
		return err
	})
	return receipt, err
}

// assess consults the advisor, absorbing any error into a zero advisory so
// the advisor can never abort transaction processing.
func (s *service) assess(ctx context.Context, tx Transaction, receipt *Receipt) Advisory {
	advisory, err := s.advisor.Assess(ctx, tx, receipt)
	if err != nil {
		logger.Warn(ctx, "anomaly assessment failed",
			"network", s.network,
			"tx.hash", tx.Hash,
			"error", err,
		)
		return Advisory{}
	}
	return advisory
}
