package repository

import (
	"context"
	"errors"
	"time"

	"steeple/internal/models"

	"gorm.io/gorm"
)

// EventFilter narrows tenant-scoped event listings.
type EventFilter struct {
	ContentFilter
	After *time.Time // only events starting at or after this instant
}

// EventRepository defines persistence operations for events.
type EventRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	ListByChurch(ctx context.Context, churchID uint, filter EventFilter) ([]models.Event, error)
	Create(ctx context.Context, e *models.Event) error
	Update(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository returns a new EventRepository implementation.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var e models.Event
	if err := readDB(r.db).WithContext(ctx).Preload("CreatedByUser").First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &e, nil
}

func (r *eventRepository) ListByChurch(ctx context.Context, churchID uint, filter EventFilter) ([]models.Event, error) {
	var events []models.Event
	q := readDB(r.db).WithContext(ctx).
		Preload("CreatedByUser").
		Where("church_id = ?", churchID).
		Order("starts_at ASC")
	if filter.After != nil {
		q = q.Where("starts_at >= ?", *filter.After)
	}
	if err := filter.apply(q).Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

func (r *eventRepository) Create(ctx context.Context, e *models.Event) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) Update(ctx context.Context, e *models.Event) error {
	if err := r.db.WithContext(ctx).Save(e).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Event{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Event", id)
	}
	return nil
}
