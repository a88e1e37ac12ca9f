package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riseabove/backend/app/apperr"
	"riseabove/backend/app/db/dbtest"
	"riseabove/backend/app/models"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(dbtest.Open(t))

	u := &models.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, u))
	require.NotZero(t, u.ID)

	got, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	byID, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	n, err := users.CountByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUserRepository_CaseSensitive(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(dbtest.Open(t))
	require.NoError(t, users.Create(ctx, &models.User{Username: "alice", PasswordHash: "hash"}))

	n, err := users.CountByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = users.FindByUsername(ctx, "ALICE")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUserRepository_NotFound(t *testing.T) {
	users := NewUserRepository(dbtest.Open(t))

	_, err := users.FindByUsername(context.Background(), "nobody")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = users.FindByID(context.Background(), 42)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(dbtest.Open(t))
	require.NoError(t, users.Create(ctx, &models.User{Username: "alice", PasswordHash: "a"}))

	err := users.Create(ctx, &models.User{Username: "alice", PasswordHash: "b"})
	assert.Error(t, err)
}
