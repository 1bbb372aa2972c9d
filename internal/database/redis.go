package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mertdogan/estately/internal/config"
)

// TokenDenylist stores the JTIs of revoked session tokens in Redis. Each
// entry carries a TTL equal to the token's remaining lifetime, so the
// denylist never outgrows the set of tokens that are still verifiable.
//
// A nil *TokenDenylist is valid and behaves as an empty denylist: signout
// degrades to the stateless cookie-clear behavior.
type TokenDenylist struct {
	client *redis.Client
	logger *slog.Logger
}

// NewTokenDenylist creates a Redis-backed token denylist.
func NewTokenDenylist(cfg *config.Config, logger *slog.Logger) (*TokenDenylist, error) {
	logger.Info("🔌 [Redis] Connecting to Redis...",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
		"db", cfg.RedisDB,
	)

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDB),
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [Redis] Redis connection established")

	return &TokenDenylist{
		client: client,
		logger: logger,
	}, nil
}

// NewTokenDenylistForTesting creates a denylist with a provided redis.Client.
func NewTokenDenylistForTesting(client *redis.Client, logger *slog.Logger) *TokenDenylist {
	return &TokenDenylist{
		client: client,
		logger: logger,
	}
}

// Close closes the Redis connection.
func (d *TokenDenylist) Close() error {
	if d == nil {
		return nil
	}
	return d.client.Close()
}

func denyKey(jti string) string {
	return "denylist:token:" + jti
}

// Revoke marks a token id as revoked until its expiry.
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if d == nil {
		return nil
	}
	if ttl <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}

	if err := d.client.Set(ctx, denyKey(jti), 1, ttl).Err(); err != nil {
		d.logger.Error("❌ [Redis] Failed to revoke token", "jti", jti, "error", err)
		return err
	}

	d.logger.Debug("🚫 [Redis] Token revoked", "jti", jti, "ttl", ttl)
	return nil
}

// IsRevoked reports whether a token id has been revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if d == nil {
		return false, nil
	}

	exists, err := d.client.Exists(ctx, denyKey(jti)).Result()
	if err != nil {
		d.logger.Error("❌ [Redis] Failed to check token revocation", "jti", jti, "error", err)
		return false, err
	}

	return exists > 0, nil
}
