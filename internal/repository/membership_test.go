package repository

import (
	"context"
	"testing"
	"time"

	"steeple/internal/authz"
	"steeple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipRepository_CreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Membership{ChurchID: 1, UserID: 1, Role: "member"}))

	err := repo.Create(ctx, &models.Membership{ChurchID: 1, UserID: 1, Role: "pastor"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)

	// Same user in a different church is a distinct membership.
	require.NoError(t, repo.Create(ctx, &models.Membership{ChurchID: 2, UserID: 1, Role: "member"}))
}

func TestMembershipRepository_RoleOfNormalizesLegacyCasing(t *testing.T) {
	db := newTestDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()

	// Simulate a row written before role normalization existed.
	require.NoError(t, db.Exec(
		"INSERT INTO memberships (church_id, user_id, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		1, 1, "PASTOR", time.Now(), time.Now(),
	).Error)

	role, ok, err := repo.RoleOf(ctx, 1, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, authz.RolePastor, role)
	assert.True(t, role.IsLeader())

	_, ok, err = repo.RoleOf(ctx, 1, 99)
	require.NoError(t, err)
	assert.False(t, ok, "missing membership is not-ok, not an error")
}

func TestMembershipRepository_CreateNormalizesRole(t *testing.T) {
	db := newTestDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Membership{ChurchID: 1, UserID: 1, Role: "Deacon"}))

	var stored models.Membership
	require.NoError(t, db.Where("church_id = ? AND user_id = ?", 1, 1).First(&stored).Error)
	assert.Equal(t, "deacon", stored.Role)
}

func TestMembershipRepository_HomeOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	insert := func(churchID uint, createdAt time.Time) {
		require.NoError(t, db.Exec(
			"INSERT INTO memberships (church_id, user_id, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			churchID, 1, "member", createdAt, createdAt,
		).Error)
	}

	insert(20, base.Add(time.Hour))
	insert(10, base)
	insert(5, base.Add(2*time.Hour))

	home, ok, err := repo.Home(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint(10), home.ChurchID, "earliest membership is home")

	// Tie on created_at resolves to the smallest church id.
	insert(3, base)
	home, ok, err = repo.Home(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint(3), home.ChurchID)

	_, ok, err = repo.Home(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMembershipRepository_UpdateRole(t *testing.T) {
	db := newTestDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Membership{ChurchID: 1, UserID: 1, Role: "member"}))
	require.NoError(t, repo.UpdateRole(ctx, 1, 1, authz.RoleDeacon))

	role, ok, err := repo.RoleOf(ctx, 1, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, authz.RoleDeacon, role)

	err = repo.UpdateRole(ctx, 1, 99, authz.RoleDeacon)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
