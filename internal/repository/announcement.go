package repository

import (
	"context"
	"errors"

	"steeple/internal/models"

	"gorm.io/gorm"
)

// ContentFilter narrows tenant-scoped content listings.
type ContentFilter struct {
	CreatedBy *uint // only rows authored by this user
	Limit     int
	Offset    int
}

func (f ContentFilter) apply(q *gorm.DB) *gorm.DB {
	if f.CreatedBy != nil {
		q = q.Where("created_by_user_id = ?", *f.CreatedBy)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	return q.Limit(limit).Offset(f.Offset)
}

// AnnouncementRepository defines persistence operations for announcements.
// Every read is scoped to a church; there is no cross-tenant listing.
type AnnouncementRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)
	ListByChurch(ctx context.Context, churchID uint, filter ContentFilter) ([]models.Announcement, error)
	Create(ctx context.Context, a *models.Announcement) error
	Update(ctx context.Context, a *models.Announcement) error
	Delete(ctx context.Context, id uint) error
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository returns a new AnnouncementRepository implementation.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var a models.Announcement
	if err := readDB(r.db).WithContext(ctx).Preload("CreatedByUser").First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Announcement", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &a, nil
}

func (r *announcementRepository) ListByChurch(ctx context.Context, churchID uint, filter ContentFilter) ([]models.Announcement, error) {
	var announcements []models.Announcement
	q := readDB(r.db).WithContext(ctx).
		Preload("CreatedByUser").
		Where("church_id = ?", churchID).
		Order("created_at DESC")
	if err := filter.apply(q).Find(&announcements).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return announcements, nil
}

func (r *announcementRepository) Create(ctx context.Context, a *models.Announcement) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *announcementRepository) Update(ctx context.Context, a *models.Announcement) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Announcement{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Announcement", id)
	}
	return nil
}
