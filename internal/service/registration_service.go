// Package service implements business logic on top of the repository layer.
package service

import (
	"context"

	"steeple/internal/authz"
	"steeple/internal/models"
	"steeple/internal/observability"
	"steeple/internal/repository"
	"steeple/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegistrationService implements the two onboarding flows. Both are
// transactional: a failure in any write rolls back everything, so a user row
// never exists without its membership.
type RegistrationService struct {
	db *gorm.DB
}

// NewRegistrationService returns a new RegistrationService.
func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{db: db}
}

// RegisterChurchInput carries the new-tenant onboarding payload.
type RegisterChurchInput struct {
	Email        string
	Password     string
	FullName     string
	ChurchName   string
	Location     string
	Denomination string
	Size         *int
}

// RegisterMemberInput carries the join-existing-church payload.
type RegisterMemberInput struct {
	Email    string
	Password string
	FullName string
	ChurchID uint
	Role     string
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return string(hashed), nil
}

func validateAccountFields(email, password, fullName string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateFullName(fullName); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

// RegisterChurch creates the founding account, the church, and a pastor
// membership in one transaction.
func (s *RegistrationService) RegisterChurch(ctx context.Context, in RegisterChurchInput) (*models.User, *models.Church, error) {
	if err := validateAccountFields(in.Email, in.Password, in.FullName); err != nil {
		return nil, nil, err
	}
	if err := validation.ValidateChurchName(in.ChurchName); err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateLocation(in.Location); err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:    in.Email,
		Password: hashed,
		FullName: in.FullName,
		IsActive: true,
	}
	church := &models.Church{
		Name:         in.ChurchName,
		Location:     in.Location,
		Denomination: in.Denomination,
		Size:         in.Size,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewUserRepository(tx).Create(ctx, user); err != nil {
			return err
		}
		if err := repository.NewChurchRepository(tx).Create(ctx, church); err != nil {
			return err
		}
		return repository.NewMembershipRepository(tx).Create(ctx, &models.Membership{
			ChurchID: church.ID,
			UserID:   user.ID,
			Role:     string(authz.RolePastor),
		})
	})
	if err != nil {
		return nil, nil, err
	}

	observability.RecordRegistration("church")
	return user, church, nil
}

// RegisterMember creates an account and a membership in an existing church.
// Self-service signups cannot mint leader roles; an absent role defaults to
// member.
func (s *RegistrationService) RegisterMember(ctx context.Context, in RegisterMemberInput) (*models.User, *models.Membership, error) {
	if err := validateAccountFields(in.Email, in.Password, in.FullName); err != nil {
		return nil, nil, err
	}
	role, err := authz.SelfServiceRole(in.Role)
	if err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:    in.Email,
		Password: hashed,
		FullName: in.FullName,
		IsActive: true,
	}
	membership := &models.Membership{
		ChurchID: in.ChurchID,
		Role:     string(role),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The target church must exist before any writes happen.
		if _, err := repository.NewChurchRepository(tx).GetByID(ctx, in.ChurchID); err != nil {
			return err
		}
		if err := repository.NewUserRepository(tx).Create(ctx, user); err != nil {
			return err
		}
		membership.UserID = user.ID
		return repository.NewMembershipRepository(tx).Create(ctx, membership)
	})
	if err != nil {
		return nil, nil, err
	}

	observability.RecordRegistration("member")
	return user, membership, nil
}
