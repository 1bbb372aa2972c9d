package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mertdogan/estately/internal/config"
)

// RateLimiter bounds how often a client may hit the credential endpoints.
type RateLimiter interface {
	// Allow reports whether the client identified by key may proceed.
	Allow(ctx context.Context, key string) (bool, error)

	// Close closes the underlying connection.
	Close() error
}

type redisRateLimiter struct {
	client *redis.Client
	limit  int64
	logger *slog.Logger
}

// NewRateLimiter creates a Redis-backed fixed-window rate limiter.
func NewRateLimiter(cfg *config.Config, logger *slog.Logger) (RateLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDB),
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("❌ [RateLimiter] Failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [RateLimiter] Connected to Redis",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
		"limit", cfg.AuthRateLimit,
	)

	return &redisRateLimiter{
		client: client,
		limit:  cfg.AuthRateLimit,
		logger: logger,
	}, nil
}

// NewRateLimiterForTesting creates a rate limiter with a provided redis.Client.
func NewRateLimiterForTesting(client *redis.Client, limit int64, logger *slog.Logger) RateLimiter {
	return &redisRateLimiter{
		client: client,
		limit:  limit,
		logger: logger,
	}
}

// windowKey generates the Redis key for the current one-minute window.
// Format: rate:auth:{key}:{YYYY-MM-DDTHH:MM}
func windowKey(key string) string {
	window := time.Now().UTC().Format("2006-01-02T15:04")
	return fmt.Sprintf("rate:auth:%s:%s", key, window)
}

func (r *redisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if r.limit <= 0 {
		return true, nil
	}

	redisKey := windowKey(key)

	pipe := r.client.Pipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("❌ [RateLimiter] Failed to count request", "key", key, "error", err)
		// On error, allow the request but report it.
		return true, err
	}

	return count.Val() <= r.limit, nil
}

func (r *redisRateLimiter) Close() error {
	return r.client.Close()
}

// NoOpRateLimiter allows every request. Used when Redis is not available.
type NoOpRateLimiter struct{}

// NewNoOpRateLimiter creates a no-op rate limiter
func NewNoOpRateLimiter(logger *slog.Logger) RateLimiter {
	logger.Warn("⚠️ [RateLimiter] Using no-op rate limiter - rate limiting is disabled")
	return &NoOpRateLimiter{}
}

func (r *NoOpRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return true, nil
}

func (r *NoOpRateLimiter) Close() error {
	return nil
}

// AuthRateLimit gates the credential endpoints by client IP.
func AuthRateLimit(limiter RateLimiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err == nil && !allowed {
			logger.Warn("⚠️ [RateLimiter] Client throttled", "ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":    false,
				"statusCode": http.StatusTooManyRequests,
				"message":    "Too many attempts, please try again later.",
			})
			return
		}

		c.Next()
	}
}
