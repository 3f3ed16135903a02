// Package config loads runtime configuration from environment variables and
// validates it before any component is constructed.
package config

import (
	"time"

	"github.com/blocksentry/blocksentry/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting of the monitor. Only the RPC endpoint is
// mandatory: each integration (Telegram, anomaly advisor, Redis) activates
// when its credentials are present and degrades to a no-op otherwise.
type Config struct {
	// Blockchain access
	RPCEndpoint string `envconfig:"RPC_URL" validate:"required,url"`
	Network     string `envconfig:"NETWORK" default:"ethereum" validate:"required"`

	// Monitoring cadence
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"30s" validate:"gt=0"`
	TickTimeout  time.Duration `envconfig:"TICK_TIMEOUT" default:"25s" validate:"gt=0"`

	// Classification thresholds, expressed in display units of the native
	// currency (e.g. ETH)
	ValueThreshold float64 `envconfig:"VALUE_THRESHOLD" default:"100" validate:"gte=0"`
	FeeThreshold   float64 `envconfig:"FEE_THRESHOLD" default:"0.5" validate:"gte=0"`
	Symbol         string  `envconfig:"CURRENCY_SYMBOL" default:"ETH" validate:"required"`

	// Alert rendering
	ExplorerBaseURL string `envconfig:"EXPLORER_BASE_URL" default:"https://etherscan.io" validate:"url"`

	// Telegram delivery (optional)
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `envconfig:"TELEGRAM_CHAT_ID"`

	// Anomaly advisor (optional)
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`

	// Checkpoint persistence (optional)
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0" validate:"gte=0"`

	// Observability
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
