package service

import (
	"context"

	"steeple/internal/authz"
	"steeple/internal/models"
	"steeple/internal/repository"
	"steeple/internal/validation"
)

// AnnouncementService owns announcement business rules. All access decisions
// go through the authorization engine.
type AnnouncementService struct {
	repo   repository.AnnouncementRepository
	engine *authz.Engine
}

// NewAnnouncementService returns a new AnnouncementService.
func NewAnnouncementService(repo repository.AnnouncementRepository, engine *authz.Engine) *AnnouncementService {
	return &AnnouncementService{repo: repo, engine: engine}
}

// CreateAnnouncementInput carries a create request. ChurchID is optional;
// when nil the caller's home church is used.
type CreateAnnouncementInput struct {
	ChurchID *uint
	Title    string
	Body     string
}

// UpdateAnnouncementInput carries a partial update.
type UpdateAnnouncementInput struct {
	Title *string
	Body  *string
}

// List returns the announcements of the caller's home church. Callers with
// no membership anywhere get an empty list, not an error. When mine is set
// only the caller's own posts are returned.
func (s *AnnouncementService) List(ctx context.Context, userID uint, mine bool, limit, offset int) ([]models.Announcement, error) {
	churchID, ok, err := s.engine.ScopeChurch(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Announcement{}, nil
	}

	filter := repository.ContentFilter{Limit: limit, Offset: offset}
	if mine {
		filter.CreatedBy = &userID
	}
	return s.repo.ListByChurch(ctx, churchID, filter)
}

// Get returns a single announcement. The caller must belong to its church.
func (s *AnnouncementService) Get(ctx context.Context, userID, id uint) (*models.Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.engine.RequireMember(ctx, userID, a.ChurchID); err != nil {
		return nil, err
	}
	return a, nil
}

// Create posts an announcement. Only leaders may write; the target church is
// either named explicitly (and must be one the caller leads) or defaults to
// the caller's home church.
func (s *AnnouncementService) Create(ctx context.Context, userID uint, in CreateAnnouncementInput) (*models.Announcement, error) {
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Body == "" {
		return nil, models.NewValidationError("body is required")
	}

	churchID, err := s.engine.AuthorizeCreate(ctx, authz.AnnouncementPolicy, userID, in.ChurchID)
	if err != nil {
		return nil, err
	}

	a := &models.Announcement{
		ChurchID:        churchID,
		Title:           in.Title,
		Body:            in.Body,
		CreatedByUserID: &userID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update edits an announcement. Any leader of the owning church may edit.
func (s *AnnouncementService) Update(ctx context.Context, userID, id uint, in UpdateAnnouncementInput) (*models.Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.engine.AuthorizeMutation(ctx, authz.AnnouncementPolicy, userID, a.ChurchID, a.CreatedByUserID); err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validation.ValidateTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		a.Title = *in.Title
	}
	if in.Body != nil {
		if *in.Body == "" {
			return nil, models.NewValidationError("body is required")
		}
		a.Body = *in.Body
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an announcement under the same rules as Update.
func (s *AnnouncementService) Delete(ctx context.Context, userID, id uint) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.engine.AuthorizeMutation(ctx, authz.AnnouncementPolicy, userID, a.ChurchID, a.CreatedByUserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
