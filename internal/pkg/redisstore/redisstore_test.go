package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStorage(t *testing.T) (*Storage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client, "limiter:"), mr
}

func TestStorage_SetGetDelete(t *testing.T) {
	s, mr := setupTestStorage(t)

	val, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, s.Set("ip-1", []byte("3"), time.Minute))
	assert.True(t, mr.Exists("limiter:ip-1"))

	val, err = s.Get("ip-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)

	require.NoError(t, s.Delete("ip-1"))
	val, err = s.Get("ip-1")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestStorage_Expiration(t *testing.T) {
	s, mr := setupTestStorage(t)

	require.NoError(t, s.Set("ip-1", []byte("1"), time.Second))
	mr.FastForward(2 * time.Second)

	val, err := s.Get("ip-1")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestStorage_ResetOnlyTouchesPrefix(t *testing.T) {
	s, mr := setupTestStorage(t)

	require.NoError(t, s.Set("a", []byte("1"), 0))
	require.NoError(t, s.Set("b", []byte("1"), 0))
	require.NoError(t, mr.Set("other:key", "keep"))

	require.NoError(t, s.Reset())

	assert.False(t, mr.Exists("limiter:a"))
	assert.False(t, mr.Exists("limiter:b"))
	assert.True(t, mr.Exists("other:key"))
}

func TestNewClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := NewClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	_, err = NewClient(context.Background(), "://bad")
	assert.Error(t, err)
}
