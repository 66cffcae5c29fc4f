package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/vairleon/ai-web-core/domain"
)

// RedisRateLimiter implements domain.RateLimiter with a fixed-window
// counter: INCR per key, EXPIRE on the first hit of a window.
type RedisRateLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewRedisRateLimiter creates a limiter allowing limit requests per key
// within the window.
func NewRedisRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, prefix: prefix, limit: limit, window: window}
}

// Allow implements domain.RateLimiter
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) error {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return fmt.Errorf("failed to increment rate counter: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return fmt.Errorf("failed to set rate counter expiry: %w", err)
		}
	}
	if count > int64(l.limit) {
		return domain.ErrRateLimited
	}
	return nil
}

// RateLimit returns a middleware bounding request volume per authenticated
// user, falling back to the client address for unauthenticated calls.
func RateLimit(limiter domain.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if user, ok := CurrentUser(c); ok {
			key = strconv.FormatUint(uint64(user.ID), 10)
		}
		if err := limiter.Allow(c.Request.Context(), key); err != nil {
			status := http.StatusInternalServerError
			if err == domain.ErrRateLimited {
				status = http.StatusTooManyRequests
			}
			c.JSON(status, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
