//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	t.Cleanup(func() { client.Close() })
	require.NoError(t, Ping(ctx, client))
	return client
}

func TestReminderClaimer_Integration(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	eventTime := time.Now().Add(20 * time.Minute)

	replicaA := NewReminderClaimer(client, time.Minute)
	replicaB := NewReminderClaimer(client, time.Minute)

	t.Run("先に確保したレプリカだけが送信できる", func(t *testing.T) {
		ok, err := replicaA.Claim(ctx, "ev-1", eventTime)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = replicaB.Claim(ctx, "ev-1", eventTime)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("他者のキーは解放できない", func(t *testing.T) {
		require.NoError(t, replicaB.Release(ctx, "ev-1", eventTime))

		ok, err := replicaB.Claim(ctx, "ev-1", eventTime)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("解放後は再確保できる", func(t *testing.T) {
		require.NoError(t, replicaA.Release(ctx, "ev-1", eventTime))

		ok, err := replicaB.Claim(ctx, "ev-1", eventTime)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("開催時刻が変われば別のキー", func(t *testing.T) {
		ok, err := replicaA.Claim(ctx, "ev-1", eventTime.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("有効期限が設定される", func(t *testing.T) {
		ttl, err := client.TTL(ctx, ClaimKey("ev-1", eventTime)).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})
}
