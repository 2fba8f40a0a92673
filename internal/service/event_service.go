package service

import (
	"context"
	"time"

	"steeple/internal/authz"
	"steeple/internal/models"
	"steeple/internal/repository"
	"steeple/internal/validation"
)

// EventService owns event business rules. Events differ from announcements
// in one way: mutation requires ownership, not just leadership.
type EventService struct {
	repo   repository.EventRepository
	engine *authz.Engine
}

// NewEventService returns a new EventService.
func NewEventService(repo repository.EventRepository, engine *authz.Engine) *EventService {
	return &EventService{repo: repo, engine: engine}
}

// CreateEventInput carries a create request. ChurchID is optional; when nil
// the caller's home church is used.
type CreateEventInput struct {
	ChurchID *uint
	Title    string
	StartsAt time.Time
	EndsAt   time.Time
	Location string
}

// UpdateEventInput carries a partial update.
type UpdateEventInput struct {
	Title    *string
	StartsAt *time.Time
	EndsAt   *time.Time
	Location *string
}

// ListEventsInput narrows an event listing.
type ListEventsInput struct {
	Mine     bool
	Upcoming bool
	Limit    int
	Offset   int
}

// List returns the events of the caller's home church, empty when the caller
// has no membership anywhere.
func (s *EventService) List(ctx context.Context, userID uint, in ListEventsInput) ([]models.Event, error) {
	churchID, ok, err := s.engine.ScopeChurch(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Event{}, nil
	}

	filter := repository.EventFilter{
		ContentFilter: repository.ContentFilter{Limit: in.Limit, Offset: in.Offset},
	}
	if in.Mine {
		filter.CreatedBy = &userID
	}
	if in.Upcoming {
		now := time.Now().UTC()
		filter.After = &now
	}
	return s.repo.ListByChurch(ctx, churchID, filter)
}

// Get returns a single event. The caller must belong to its church.
func (s *EventService) Get(ctx context.Context, userID, id uint) (*models.Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.engine.RequireMember(ctx, userID, e.ChurchID); err != nil {
		return nil, err
	}
	return e, nil
}

// Create schedules an event. Only leaders may create.
func (s *EventService) Create(ctx context.Context, userID uint, in CreateEventInput) (*models.Event, error) {
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEventWindow(in.StartsAt, in.EndsAt); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateLocation(in.Location); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	churchID, err := s.engine.AuthorizeCreate(ctx, authz.EventPolicy, userID, in.ChurchID)
	if err != nil {
		return nil, err
	}

	e := &models.Event{
		ChurchID:        churchID,
		Title:           in.Title,
		StartsAt:        in.StartsAt,
		EndsAt:          in.EndsAt,
		Location:        in.Location,
		CreatedByUserID: &userID,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update edits an event. Only the leader who created it may edit.
func (s *EventService) Update(ctx context.Context, userID, id uint, in UpdateEventInput) (*models.Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.engine.AuthorizeMutation(ctx, authz.EventPolicy, userID, e.ChurchID, e.CreatedByUserID); err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validation.ValidateTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		e.Title = *in.Title
	}
	if in.StartsAt != nil {
		e.StartsAt = *in.StartsAt
	}
	if in.EndsAt != nil {
		e.EndsAt = *in.EndsAt
	}
	if err := validation.ValidateEventWindow(e.StartsAt, e.EndsAt); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Location != nil {
		if err := validation.ValidateLocation(*in.Location); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		e.Location = *in.Location
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an event under the same ownership rule as Update.
func (s *EventService) Delete(ctx context.Context, userID, id uint) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.engine.AuthorizeMutation(ctx, authz.EventPolicy, userID, e.ChurchID, e.CreatedByUserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
