package repository

import (
	"context"
	"testing"
	"time"

	"steeple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementRepository_ListByChurchIsScoped(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Announcement{ChurchID: 1, Title: "Potluck", Body: "Sunday"}))
	require.NoError(t, repo.Create(ctx, &models.Announcement{ChurchID: 1, Title: "Choir", Body: "Wednesday"}))
	require.NoError(t, repo.Create(ctx, &models.Announcement{ChurchID: 2, Title: "Other church", Body: "n/a"}))

	rows, err := repo.ListByChurch(ctx, 1, ContentFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, a := range rows {
		assert.Equal(t, uint(1), a.ChurchID)
	}

	// A church with no content gets an empty list, never a neighbor's rows.
	rows, err = repo.ListByChurch(ctx, 3, ContentFilter{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAnnouncementRepository_MineFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()

	author := uint(7)
	other := uint(8)
	require.NoError(t, repo.Create(ctx, &models.Announcement{ChurchID: 1, Title: "Mine", Body: "x", CreatedByUserID: &author}))
	require.NoError(t, repo.Create(ctx, &models.Announcement{ChurchID: 1, Title: "Theirs", Body: "x", CreatedByUserID: &other}))

	rows, err := repo.ListByChurch(ctx, 1, ContentFilter{CreatedBy: &author})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mine", rows[0].Title)
}

func TestAnnouncementRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()

	a := &models.Announcement{ChurchID: 1, Title: "Gone soon", Body: "x"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Delete(ctx, a.ID))

	err := repo.Delete(ctx, a.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestEventRepository_ListByChurchFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()
	base := time.Date(2026, 1, 4, 10, 0, 0, 0, time.UTC)

	creator := uint(7)
	require.NoError(t, repo.Create(ctx, &models.Event{ChurchID: 1, Title: "Early service", StartsAt: base, EndsAt: base.Add(time.Hour), CreatedByUserID: &creator}))
	require.NoError(t, repo.Create(ctx, &models.Event{ChurchID: 1, Title: "Late service", StartsAt: base.Add(2 * time.Hour), EndsAt: base.Add(3 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &models.Event{ChurchID: 2, Title: "Elsewhere", StartsAt: base, EndsAt: base.Add(time.Hour)}))

	rows, err := repo.ListByChurch(ctx, 1, EventFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Early service", rows[0].Title, "sorted by start time")

	after := base.Add(time.Hour)
	rows, err = repo.ListByChurch(ctx, 1, EventFilter{After: &after})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Late service", rows[0].Title)

	rows, err = repo.ListByChurch(ctx, 1, EventFilter{ContentFilter: ContentFilter{CreatedBy: &creator}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Early service", rows[0].Title)
}

func TestEventRepository_GetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
