package service

import (
	"context"
	"testing"

	"steeple/internal/authz"
	"steeple/internal/database"
	"steeple/internal/models"
	"steeple/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixture wires real repositories over an in-memory sqlite database so
// service tests exercise the same SQL paths as production.
type fixture struct {
	db          *gorm.DB
	users       repository.UserRepository
	churches    repository.ChurchRepository
	memberships repository.MembershipRepository
	engine      *authz.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	memberships := repository.NewMembershipRepository(db)
	return &fixture{
		db:          db,
		users:       repository.NewUserRepository(db),
		churches:    repository.NewChurchRepository(db),
		memberships: memberships,
		engine:      authz.NewEngine(memberships),
	}
}

func (f *fixture) addUser(t *testing.T, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Password: "hash", FullName: "Test User", IsActive: true}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) addChurch(t *testing.T, name string) *models.Church {
	t.Helper()
	c := &models.Church{Name: name}
	require.NoError(t, f.churches.Create(context.Background(), c))
	return c
}

func (f *fixture) addMember(t *testing.T, churchID, userID uint, role authz.Role) {
	t.Helper()
	require.NoError(t, f.memberships.Create(context.Background(), &models.Membership{
		ChurchID: churchID,
		UserID:   userID,
		Role:     string(role),
	}))
}

func assertAppErrCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
}
