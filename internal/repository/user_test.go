package repository

import (
	"context"
	"testing"

	"steeple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateLowercasesEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &models.User{Email: "  Pastor@Example.COM ", Password: "hash", FullName: "Pat"}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, "pastor@example.com", u.Email)

	// Duplicate in any casing collides on the unique index.
	err := repo.Create(ctx, &models.User{Email: "PASTOR@example.com", Password: "hash"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "kim@example.com", Password: "hash", FullName: "Kim"}))

	u, err := repo.GetByEmail(ctx, "  KIM@example.com ")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Kim", u.FullName)

	u, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, u, "missing user is nil, not an error")
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 404)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
