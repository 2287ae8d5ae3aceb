package kv_test

import (
	"context"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripstore/internal/kv"
	"github.com/pkordes/tripstore/testutil"
)

// Requires TEST_REDIS_ADDR; skipped otherwise.
func TestRedis(t *testing.T) {
	addr := testutil.RedisAddr(t)
	ctx := context.Background()

	s, err := kv.OpenRedis(ctx, addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	// A unique prefix keeps parallel runs against one server apart.
	prefix := "test:" + uuid.NewString() + ":"
	exerciseStore(t, kv.Prefixed(s, prefix))

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Del(ctx, prefix+"trips").Err())
}

func TestOpenRedis_Unreachable(t *testing.T) {
	_, err := kv.OpenRedis(context.Background(), "127.0.0.1:1", "", 0)
	require.Error(t, err)
}
