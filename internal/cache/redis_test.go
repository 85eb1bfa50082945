package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/wilayah_api/internal/config"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(&config.RedisConfig{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRedisClient_IncrWithTTL(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	n, err := client.IncrWithTTL(ctx, "ratelimit:10.0.0.1:120", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = client.IncrWithTTL(ctx, "ratelimit:10.0.0.1:120", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := mr.Get("ratelimit:10.0.0.1:120")
	require.NoError(t, err)
	assert.Equal(t, "2", got)
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:10.0.0.1:120"))

	mr.FastForward(time.Minute)
	assert.False(t, mr.Exists("ratelimit:10.0.0.1:120"))

	n, err = client.IncrWithTTL(ctx, "ratelimit:10.0.0.1:120", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "counter starts over once the key expired")
}

func TestRedisClient_IncrWithTTLError(t *testing.T) {
	client, mr := newTestClient(t)

	mr.SetError("ERR server failure")
	_, err := client.IncrWithTTL(context.Background(), "k", time.Second)
	assert.Error(t, err)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	_, err := NewRedisClient(&config.RedisConfig{Host: host, Port: port})
	assert.Error(t, err)
}
