// Package redis provides a Redis-backed implementation of the cache facade.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studiolore/studyhall/cache"
)

// Cache implements cache.Cache on a Redis server.
type Cache struct {
	client *redis.Client
}

var _ cache.Cache = (*Cache)(nil)

// Config holds Redis connection settings.
type Config struct {
	Addr     string // host:port
	Password string
	DB       int
}

// New creates a Redis-backed cache and verifies the connection.
func New(ctx context.Context, cfg Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &Cache{client: client}, nil
}

// Get retrieves the value stored under key.
// Returns cache.ErrMiss if the key is absent; Redis expires entries itself.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrMiss
		}
		return nil, err
	}
	return val, nil
}

// Set stores value under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Close closes the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
