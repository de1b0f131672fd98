// Package cache wraps redis but fails safe: a missing or unreachable redis
// behaves like a cache miss, never like an error.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lefika/ripota/core"
)

type Client struct {
	client *redis.Client
}

func New(conf *core.Config) *Client {
	opts := &redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Get returns the cached value or nil on miss/unavailability.
func (c *Client) Get(ctx context.Context, key string) []byte {
	if c == nil || c.client == nil {
		return nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return res
}

// Set stores value with a TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, key).Err()
}
