package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNoSession)

	in := &Data{UserID: 7, Flashes: []Flash{{Kind: FlashSuccess, Message: "hi"}}}
	require.NoError(t, s.Save(ctx, "abc", in, time.Minute))
	in.Flashes[0].Message = "mutated"

	got, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "hi", got.Flashes[0].Message)

	require.NoError(t, s.Delete(ctx, "abc"))
	_, err = s.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "a", &Data{UserID: 1}, time.Minute))
	require.NoError(t, s.Save(ctx, "b", &Data{UserID: 2}, time.Hour))

	now = now.Add(2 * time.Minute)
	_, err := s.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrNoSession)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, s.Sweep())
	_, err = s.Load(ctx, "b")
	assert.ErrorIs(t, err, ErrNoSession)
}
