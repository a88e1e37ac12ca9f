package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, "riseabove:session:"), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	_, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, s.Save(ctx, "abc", &Data{UserID: 3, Flashes: []Flash{{Kind: FlashDanger, Message: "no"}}}, time.Minute))
	assert.True(t, mr.Exists("riseabove:session:abc"))
	assert.Equal(t, time.Minute, mr.TTL("riseabove:session:abc"))

	got, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.UserID)
	assert.Equal(t, []Flash{{Kind: FlashDanger, Message: "no"}}, got.Flashes)

	require.NoError(t, s.Delete(ctx, "abc"))
	_, err = s.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	require.NoError(t, s.Save(ctx, "abc", &Data{UserID: 3}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := s.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	s, mr := newRedisStore(t)
	require.NoError(t, mr.Set("riseabove:session:bad", "{not json"))

	_, err := s.Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}
