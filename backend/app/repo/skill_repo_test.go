package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"riseabove/backend/app/apperr"
	"riseabove/backend/app/db/dbtest"
	"riseabove/backend/app/models"
)

func newSkillFixture(t *testing.T) (*SkillRepository, *gorm.DB, uint) {
	t.Helper()
	gdb := dbtest.Open(t)
	u := &models.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(gdb).Create(context.Background(), u))
	return NewSkillRepository(gdb), gdb, u.ID
}

func TestSkillRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	skills, _, uid := newSkillFixture(t)

	chess := &models.Skill{UserID: uid, Skillname: "Chess"}
	require.NoError(t, skills.Create(ctx, chess))
	assert.Equal(t, 0, chess.XP)
	require.NoError(t, skills.Create(ctx, &models.Skill{UserID: uid, Skillname: "Go", XP: 7}))

	list, err := skills.ListByUser(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Chess", list[0].Skillname)
	assert.Equal(t, "Go", list[1].Skillname)
	assert.Equal(t, 7, list[1].XP)

	require.NoError(t, skills.UpdateXP(ctx, chess.ID, 150))
	got, err := skills.FindByName(ctx, uid, "Chess")
	require.NoError(t, err)
	assert.Equal(t, 150, got.XP)

	require.NoError(t, skills.UpdateXP(ctx, chess.ID, 0))
	got, err = skills.FindByName(ctx, uid, "Chess")
	require.NoError(t, err)
	assert.Equal(t, 0, got.XP)

	require.NoError(t, skills.Delete(ctx, chess.ID))
	_, err = skills.FindByName(ctx, uid, "Chess")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestSkillRepository_ScopedByUser(t *testing.T) {
	ctx := context.Background()
	skills, gdb, uid := newSkillFixture(t)
	bob := &models.User{Username: "bob", PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(gdb).Create(ctx, bob))

	require.NoError(t, skills.Create(ctx, &models.Skill{UserID: uid, Skillname: "Chess"}))

	list, err := skills.ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = skills.FindByName(ctx, bob.ID, "Chess")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestSkillRepository_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	skills, _, uid := newSkillFixture(t)
	chess := &models.Skill{UserID: uid, Skillname: "Chess", XP: 10}
	require.NoError(t, skills.Create(ctx, chess))

	boom := errors.New("boom")
	err := skills.Transaction(ctx, func(tx SkillStore) error {
		require.NoError(t, tx.UpdateXP(ctx, chess.ID, 99))
		require.NoError(t, tx.Create(ctx, &models.Skill{UserID: uid, Skillname: "Go", XP: 5}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := skills.ListByUser(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 10, list[0].XP)
}

func TestSkillRepository_TransactionCommits(t *testing.T) {
	ctx := context.Background()
	skills, _, uid := newSkillFixture(t)

	err := skills.Transaction(ctx, func(tx SkillStore) error {
		return tx.Create(ctx, &models.Skill{UserID: uid, Skillname: "Go", XP: 5})
	})
	require.NoError(t, err)

	got, err := skills.FindByName(ctx, uid, "Go")
	require.NoError(t, err)
	assert.Equal(t, 5, got.XP)
}

func TestSkillRepository_DuplicateCreateIsConflict(t *testing.T) {
	ctx := context.Background()
	skills, _, uid := newSkillFixture(t)
	require.NoError(t, skills.Create(ctx, &models.Skill{UserID: uid, Skillname: "Chess"}))

	err := skills.Create(ctx, &models.Skill{UserID: uid, Skillname: "Chess"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}
