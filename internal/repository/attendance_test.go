package repository

import (
	"context"
	"testing"
	"time"

	"steeple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_UpsertIsIdempotentPerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, 1, 1, models.AttendanceCheckedIn)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, models.AttendanceCheckedIn, first.Status)
	assert.False(t, first.Timestamp.IsZero(), "timestamp is set server-side")

	// Second write flips the status on the same row.
	second, err := repo.Upsert(ctx, 1, 1, models.AttendanceCheckedOut)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "repeat writes reuse the row")
	assert.Equal(t, models.AttendanceCheckedOut, second.Status)
	assert.False(t, second.Timestamp.Before(first.Timestamp))

	var count int64
	require.NoError(t, db.Model(&models.Attendance{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAttendanceRepository_RowsAreScopedPerEvent(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, 1, 1, models.AttendanceCheckedIn)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, 2, 1, models.AttendanceCheckedIn)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Attendance{}).Count(&count).Error)
	assert.Equal(t, int64(2), count, "same user at two events is two rows")
}

func TestAttendanceRepository_GetByEventAndUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	att, err := repo.GetByEventAndUser(ctx, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, att, "no row yet is nil, not an error")

	_, err = repo.Upsert(ctx, 1, 1, models.AttendanceCheckedIn)
	require.NoError(t, err)

	att, err = repo.GetByEventAndUser(ctx, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, att)
	assert.Equal(t, models.AttendanceCheckedIn, att.Status)
}

func TestAttendanceRepository_ListByEvent(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.User{Email: "a@example.com", Password: "x", FullName: "Anna"}).Error)
	require.NoError(t, db.Create(&models.User{Email: "b@example.com", Password: "x", FullName: "Ben"}).Error)

	_, err := repo.Upsert(ctx, 1, 1, models.AttendanceCheckedIn)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = repo.Upsert(ctx, 1, 2, models.AttendanceCheckedIn)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, 2, 1, models.AttendanceCheckedIn)
	require.NoError(t, err)

	rows, err := repo.ListByEvent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2, "roster excludes other events")
	assert.Equal(t, uint(1), rows[0].UserID)
	require.NotNil(t, rows[0].User)
	assert.Equal(t, "Anna", rows[0].User.FullName)
}
