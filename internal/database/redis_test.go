package database

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDenylist(t *testing.T) (*TokenDenylist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewTokenDenylistForTesting(client, testLogger()), mr
}

func TestTokenDenylist_RevokeAndCheck(t *testing.T) {
	denylist, _ := newTestDenylist(t)
	ctx := context.Background()

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Hour))

	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Other tokens stay untouched.
	revoked, err = denylist.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenDenylist_EntryExpiresWithToken(t *testing.T) {
	denylist, mr := newTestDenylist(t)
	ctx := context.Background()

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Minute))

	mr.FastForward(2 * time.Minute)

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "an expired token needs no denylist entry")
}

func TestTokenDenylist_ExpiredTokenIsNoOp(t *testing.T) {
	denylist, mr := newTestDenylist(t)

	require.NoError(t, denylist.Revoke(context.Background(), "jti-1", -time.Minute))
	assert.Empty(t, mr.Keys())
}

func TestTokenDenylist_NilIsStateless(t *testing.T) {
	var denylist *TokenDenylist
	ctx := context.Background()

	assert.NoError(t, denylist.Revoke(ctx, "jti-1", time.Hour))

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	assert.NoError(t, err)
	assert.False(t, revoked)

	assert.NoError(t, denylist.Close())
}
