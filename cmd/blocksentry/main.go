package main

import (
	"context"
	"log"
	"time"

	"github.com/blocksentry/blocksentry/internal/config"
	"github.com/blocksentry/blocksentry/internal/handlers/cli"
	"github.com/blocksentry/blocksentry/internal/infra/advisor/openai"
	"github.com/blocksentry/blocksentry/internal/infra/blockchain/ethereum"
	"github.com/blocksentry/blocksentry/internal/infra/notify/telegram"
	"github.com/blocksentry/blocksentry/internal/infra/storage/redis"
	"github.com/blocksentry/blocksentry/internal/pkg/logger"
	"github.com/blocksentry/blocksentry/internal/pkg/resilience/retry"
	"github.com/blocksentry/blocksentry/internal/pkg/telemetry"
	httptransport "github.com/blocksentry/blocksentry/internal/pkg/transport/http"
	"github.com/blocksentry/blocksentry/internal/pkg/transport/jsonrpc"
	"github.com/blocksentry/blocksentry/internal/txmonitor"
)

const serviceName = "blocksentry"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			log.Fatalf("failed to initialize telemetry: %v", err)
		}
		defer shutdown(ctx)
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Blockchain access
	rpcClient := jsonrpc.NewClient(httptransport.NewClient().StandardClient(), cfg.RPCEndpoint)
	blockchain := ethereum.NewClient(rpcClient)

	// Alert delivery; disabled when no credentials are configured
	notifier := telegram.NewNotifier(ctx, cfg.TelegramBotToken, cfg.TelegramChatID,
		telegram.WithExplorerBaseURL(cfg.ExplorerBaseURL),
		telegram.WithSymbol(cfg.Symbol),
	)

	// Anomaly advisor; disabled when no API key is configured. The advisor
	// gets a longer timeout than chain calls since completions are slow.
	advisor := openai.NewAdvisor(
		httptransport.NewClient(httptransport.WithTimeout(30*time.Second)).StandardClient(),
		cfg.OpenAIAPIKey,
		openai.WithModel(cfg.OpenAIModel),
		openai.WithBaseURL(cfg.OpenAIBaseURL),
		openai.WithSymbol(cfg.Symbol),
	)

	thresholds := txmonitor.NewThresholds(cfg.ValueThreshold, cfg.FeeThreshold, cfg.Symbol)

	opts := []txmonitor.Option{
		txmonitor.WithNotifier(notifier),
		txmonitor.WithAdvisor(advisor),
		txmonitor.WithPollInterval(cfg.PollInterval),
		txmonitor.WithTickTimeout(cfg.TickTimeout),
		txmonitor.WithReceiptRetry(retry.New(
			retry.WithAttempts(3),
			retry.WithDelay(500*time.Millisecond),
			retry.WithLastErrorOnly(true),
		)),
	}

	if cfg.RedisAddr != "" {
		checkpoint, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer checkpoint.Close()

		opts = append(opts, txmonitor.WithCheckpointStorage(checkpoint))
	}

	svc := txmonitor.New(cfg.Network, blockchain, thresholds, opts...)

	if err := cli.Run(ctx, svc, blockchain, advisor, thresholds); err != nil {
		logger.Fatal(ctx, "command failed", "error", err)
	}
}
