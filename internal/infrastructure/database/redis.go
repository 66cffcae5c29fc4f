package database

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates a redis client for the request rate limiter.
func NewRedis(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// Ping verifies the connection is usable.
func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}
