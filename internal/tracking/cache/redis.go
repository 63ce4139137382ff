package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nexus-logistics/tracking-service/internal/tracking/core"
	"github.com/nexus-logistics/tracking-service/pkg/options"
)

var _ core.LatestStateCache = (*Redis)(nil)

// Redis implements the latest-state cache. TTL expiry is left entirely to
// the server; this adapter never inspects or sweeps expirations.
type Redis struct {
	rdb *redis.Client
}

// New creates the cache adapter and verifies connectivity with a ping.
func New(opts *options.RedisOptions) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	return &Redis{rdb: rdb}, nil
}

// Set upserts the entry and resets its TTL. Plain SET: no read-compare, the
// last write processed wins.
func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Get returns the entry value, mapping redis.Nil to core.ErrNotFound.
func (c *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// ListKeysByPrefix enumerates keys with a cursor SCAN rather than KEYS so a
// large fleet cannot block the server.
func (c *Redis) ListKeysByPrefix(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}

// Ping reports cache reachability for health checks.
func (c *Redis) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the client's connection pool.
func (c *Redis) Close() error {
	return c.rdb.Close()
}
