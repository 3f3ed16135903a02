// Package redis persists the monitor's last-processed block checkpoints so a
// restarted process resumes where the previous one stopped instead of
// replaying the chain head.
package redis

import (
	"context"

	redis "github.com/redis/go-redis/v9"
)

type client struct {
	conn *redis.Client
}

func (c *client) Close() error {
	return c.conn.Close()
}

// NewClient connects to Redis and verifies the connection with a ping before
// handing the client out; a dead address fails construction, not the first
// checkpoint write.
func NewClient(ctx context.Context, addr, username, password string, db int) (*client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{
		conn: conn,
	}, nil
}
