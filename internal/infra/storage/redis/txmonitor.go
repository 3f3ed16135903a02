package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/blocksentry/blocksentry/internal/pkg/types"
	"github.com/blocksentry/blocksentry/internal/txmonitor"

	"github.com/redis/go-redis/v9"
)

// txmonitorKeyPrefix is the namespace prefix for all transaction monitor keys.
const txmonitorKeyPrefix = "txmonitor"

// lastProcessedKey constructs the Redis key holding the last fully processed
// block number for a network. The format is:
//
//	"txmonitor:last-block:<network>"
func lastProcessedKey(network string) string {
	return fmt.Sprintf("%s:last-block:%s", txmonitorKeyPrefix, network)
}

// SaveLastProcessed records number as the last fully processed block for the
// network. The key is stored with no expiration.
func (c *client) SaveLastProcessed(ctx context.Context, network string, number types.Hex) error {
	key := lastProcessedKey(network)
	return c.conn.Set(ctx, key, string(number), 0).Err()
}

// LoadLastProcessed retrieves the last recorded block number for the network,
// returning txmonitor.ErrNoBlockProcessed when no record exists.
func (c *client) LoadLastProcessed(ctx context.Context, network string) (types.Hex, error) {
	key := lastProcessedKey(network)

	val, err := c.conn.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = txmonitor.ErrNoBlockProcessed
		}

		return "", err
	}

	return types.HexFromString(val)
}

// Compile-time assertion to ensure client implements the CheckpointStorage interface.
var _ txmonitor.CheckpointStorage = new(client)
