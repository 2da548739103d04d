package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `json:"name"`
}

func TestRedisJSONHelpers(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	require.NoError(t, PingRedis(ctx, rdb, time.Second))

	var got sample
	found, err := RedisGetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	ok, err := RedisSetNXJSON(ctx, rdb, "k", sample{Name: "first"}, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = RedisSetNXJSON(ctx, rdb, "k", sample{Name: "second"}, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	found, err = RedisGetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "first", got.Name)
}

func TestRedisGetJSONBadPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, mr.Set("k", "{not json"))

	var got sample
	_, err := RedisGetJSON(context.Background(), rdb, "k", &got)
	assert.Error(t, err)
}
