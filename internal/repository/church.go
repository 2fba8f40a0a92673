package repository

import (
	"context"
	"errors"

	"steeple/internal/cache"
	"steeple/internal/models"

	"gorm.io/gorm"
)

// ChurchRepository defines persistence operations for churches.
type ChurchRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Church, error)
	List(ctx context.Context) ([]models.Church, error)
	Create(ctx context.Context, church *models.Church) error
	Update(ctx context.Context, church *models.Church) error
}

type churchRepository struct {
	db *gorm.DB
}

// NewChurchRepository returns a new ChurchRepository implementation.
func NewChurchRepository(db *gorm.DB) ChurchRepository {
	return &churchRepository{db: db}
}

func (r *churchRepository) GetByID(ctx context.Context, id uint) (*models.Church, error) {
	var church models.Church
	key := cache.ChurchKey(id)

	err := cache.Aside(ctx, key, &church, cache.ChurchTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).First(&church, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Church", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &church, nil
}

// List returns the public church directory, ordered by name.
func (r *churchRepository) List(ctx context.Context) ([]models.Church, error) {
	var churches []models.Church

	err := cache.Aside(ctx, cache.ChurchListKey, &churches, cache.ChurchListTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).Order("name ASC").Find(&churches).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return churches, nil
}

func (r *churchRepository) Create(ctx context.Context, church *models.Church) error {
	if err := r.db.WithContext(ctx).Create(church).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ChurchListKey)
	return nil
}

func (r *churchRepository) Update(ctx context.Context, church *models.Church) error {
	if err := r.db.WithContext(ctx).Save(church).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateChurch(ctx, church.ID)
	return nil
}
