package service

import (
	"context"

	"steeple/internal/authz"
	"steeple/internal/models"
	"steeple/internal/repository"
)

// MembershipService owns role administration within a church.
type MembershipService struct {
	memberships repository.MembershipRepository
	engine      *authz.Engine
}

// NewMembershipService returns a new MembershipService.
func NewMembershipService(memberships repository.MembershipRepository, engine *authz.Engine) *MembershipService {
	return &MembershipService{memberships: memberships, engine: engine}
}

// MyRole returns the caller's role in a church, or Forbidden when the caller
// has no membership there.
func (s *MembershipService) MyRole(ctx context.Context, userID, churchID uint) (authz.Role, error) {
	return s.engine.RequireMember(ctx, userID, churchID)
}

// SetRole changes a member's role. Only leaders of the church may do this,
// and never on themselves: demoting the last pastor by accident would lock
// the tenant, so role self-changes go through another leader.
func (s *MembershipService) SetRole(ctx context.Context, callerID, churchID, targetUserID uint, roleName string) (*models.Membership, error) {
	role, err := authz.ParseRole(roleName)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if callerID == targetUserID {
		return nil, models.NewForbiddenError("You cannot change your own role")
	}

	leader, err := s.engine.IsLeader(ctx, callerID, churchID)
	if err != nil {
		return nil, err
	}
	if !leader {
		return nil, models.NewForbiddenError("Only church leaders can assign roles")
	}

	if err := s.memberships.UpdateRole(ctx, churchID, targetUserID, role); err != nil {
		return nil, err
	}
	return s.memberships.Get(ctx, churchID, targetUserID)
}

// Roster lists a church's members. Any member of the church may read it.
func (s *MembershipService) Roster(ctx context.Context, callerID, churchID uint, limit, offset int) ([]models.Membership, error) {
	if _, err := s.engine.RequireMember(ctx, callerID, churchID); err != nil {
		return nil, err
	}
	return s.memberships.ListByChurch(ctx, churchID, limit, offset)
}

// Mine lists the caller's memberships across churches, oldest first.
func (s *MembershipService) Mine(ctx context.Context, userID uint) ([]models.Membership, error) {
	return s.memberships.ListByUser(ctx, userID)
}
