// Package telegram delivers monitor alerts and status lines to a Telegram
// chat using a bot credential. When the credential or chat id is absent the
// notifier runs disabled: sends are logged and dropped, never failed, so the
// poll loop keeps operating without notifications.
package telegram

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/blocksentry/blocksentry/internal/pkg/logger"
	"github.com/blocksentry/blocksentry/internal/txmonitor"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	defaultExplorerBaseURL = "https://etherscan.io"
	defaultSymbol          = "ETH"

	// defaultSendTimeout bounds every Telegram API call. bot.Send does not
	// take a context, and the monitor drives all sends from a single poll
	// goroutine, so an unbounded send would stall polling.
	defaultSendTimeout = 10 * time.Second
)

// notifier implements txmonitor.AlertNotifier backed by a Telegram bot.
// A nil bot means the notifier is disabled.
type notifier struct {
	bot             *tgbotapi.BotAPI
	chatID          int64
	explorerBaseURL string
	symbol          string
}

var _ txmonitor.AlertNotifier = (*notifier)(nil)

// config holds optional notifier settings.
type config struct {
	explorerBaseURL string
	symbol          string
	sendTimeout     time.Duration
	apiEndpoint     string
}

// Option configures the notifier.
type Option func(*config)

// WithExplorerBaseURL sets the block explorer used for transaction links.
// Default: https://etherscan.io.
func WithExplorerBaseURL(u string) Option {
	return func(c *config) {
		if u != "" {
			c.explorerBaseURL = u
		}
	}
}

// WithSymbol sets the display-unit symbol rendered in messages. Default: ETH.
func WithSymbol(s string) Option {
	return func(c *config) {
		if s != "" {
			c.symbol = s
		}
	}
}

// WithSendTimeout bounds each Telegram API call, the identity probe made
// during initialization included. Default: 10s.
func WithSendTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.sendTimeout = d
		}
	}
}

// WithAPIEndpoint overrides the Telegram API endpoint format string, e.g.
// for a self-hosted bot API server. Default: the public Telegram endpoint.
func WithAPIEndpoint(e string) Option {
	return func(c *config) {
		if e != "" {
			c.apiEndpoint = e
		}
	}
}

// NewNotifier establishes the Telegram session. Any initialization failure
// (missing credential, malformed chat id, unreachable API) is logged and
// yields a disabled notifier: notification delivery is never fatal.
func NewNotifier(ctx context.Context, token, chatID string, opts ...Option) *notifier {
	cfg := config{
		explorerBaseURL: defaultExplorerBaseURL,
		symbol:          defaultSymbol,
		sendTimeout:     defaultSendTimeout,
		apiEndpoint:     tgbotapi.APIEndpoint,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := &notifier{
		explorerBaseURL: cfg.explorerBaseURL,
		symbol:          cfg.symbol,
	}

	if token == "" || chatID == "" {
		logger.Info(ctx, "telegram credentials not configured, alerts disabled")
		return n
	}

	parsedChatID, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		logger.Error(ctx, "invalid telegram chat id, alerts disabled",
			"chat.id", chatID,
			"error", err,
		)
		return n
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, cfg.apiEndpoint, &http.Client{Timeout: cfg.sendTimeout})
	if err != nil {
		logger.Error(ctx, "failed to initialize telegram bot, alerts disabled", "error", err)
		return n
	}

	n.bot = bot
	n.chatID = parsedChatID
	logger.Info(ctx, "telegram notifier initialized", "bot.username", bot.Self.UserName)
	return n
}

// NotifyAlert formats and sends a significant-transaction message. Delivery
// is at-most-once: a send failure is returned to the caller but never retried
// here.
func (n *notifier) NotifyAlert(ctx context.Context, alert txmonitor.Alert) error {
	if n.bot == nil {
		logger.Debug(ctx, "telegram notifier disabled, dropping alert",
			"tx.hash", alert.Transaction.Hash,
		)
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, formatAlert(alert, n.symbol, n.explorerBaseURL))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	_, err := n.bot.Send(msg)
	return err
}

// NotifyStatus sends a plain status message.
func (n *notifier) NotifyStatus(ctx context.Context, text string) error {
	if n.bot == nil {
		logger.Debug(ctx, "telegram notifier disabled, dropping status", "status", text)
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.DisableWebPagePreview = true

	_, err := n.bot.Send(msg)
	return err
}
