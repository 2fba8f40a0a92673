package repository

import (
	"context"
	"errors"

	"steeple/internal/authz"
	"steeple/internal/models"

	"gorm.io/gorm"
)

// MembershipRepository defines persistence operations for the membership
// ledger. It satisfies authz.Ledger so the authorization engine reads roles
// straight from storage.
type MembershipRepository interface {
	RoleOf(ctx context.Context, userID, churchID uint) (authz.Role, bool, error)
	Home(ctx context.Context, userID uint) (*models.Membership, bool, error)
	Get(ctx context.Context, churchID, userID uint) (*models.Membership, error)
	Create(ctx context.Context, membership *models.Membership) error
	UpdateRole(ctx context.Context, churchID, userID uint, role authz.Role) error
	ListByUser(ctx context.Context, userID uint) ([]models.Membership, error)
	ListByChurch(ctx context.Context, churchID uint, limit, offset int) ([]models.Membership, error)
}

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository returns a new MembershipRepository implementation.
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// RoleOf returns the caller's role in the given church. The second return is
// false when no membership row exists. Stored roles are normalized on read so
// legacy mixed-case rows still resolve.
func (r *membershipRepository) RoleOf(ctx context.Context, userID, churchID uint) (authz.Role, bool, error) {
	var m models.Membership
	err := readDB(r.db).WithContext(ctx).
		Where("church_id = ? AND user_id = ?", churchID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, models.NewInternalError(err)
	}
	return authz.NormalizeRole(m.Role), true, nil
}

// Home returns the user's earliest membership, ties broken by the smallest
// church id. This is the deterministic scope for callers that do not name a
// church explicitly.
func (r *membershipRepository) Home(ctx context.Context, userID uint) (*models.Membership, bool, error) {
	var m models.Membership
	err := readDB(r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, church_id ASC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, models.NewInternalError(err)
	}
	return &m, true, nil
}

func (r *membershipRepository) Get(ctx context.Context, churchID, userID uint) (*models.Membership, error) {
	var m models.Membership
	err := readDB(r.db).WithContext(ctx).
		Where("church_id = ? AND user_id = ?", churchID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Membership", userID)
		}
		return nil, models.NewInternalError(err)
	}
	return &m, nil
}

func (r *membershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	membership.Role = string(authz.NormalizeRole(membership.Role))
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User is already a member of this church")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *membershipRepository) UpdateRole(ctx context.Context, churchID, userID uint, role authz.Role) error {
	res := r.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("church_id = ? AND user_id = ?", churchID, userID).
		Update("role", string(role))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Membership", userID)
	}
	return nil
}

func (r *membershipRepository) ListByUser(ctx context.Context, userID uint) ([]models.Membership, error) {
	var memberships []models.Membership
	err := readDB(r.db).WithContext(ctx).
		Preload("Church").
		Where("user_id = ?", userID).
		Order("created_at ASC, church_id ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return memberships, nil
}

func (r *membershipRepository) ListByChurch(ctx context.Context, churchID uint, limit, offset int) ([]models.Membership, error) {
	var memberships []models.Membership
	err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("church_id = ?", churchID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&memberships).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return memberships, nil
}
