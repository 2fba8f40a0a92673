// Package seed provides helpers to create demo data for development and
// testing. Never run against a production database.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"steeple/internal/authz"
	"steeple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tunes factory behaviour.
type SeedOptions struct {
	// DryRun logs what would be created without touching the database.
	DryRun bool
	// SkipBcrypt stores a plaintext password marker instead of hashing.
	// Login will not work for these accounts; useful for bulk loads.
	SkipBcrypt bool
	// MaxDays spreads created_at over the past N days. Defaults to 90.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng, nextID: 1000}
}

// pastCreatedAt spreads timestamps over the configured window so seeded data
// does not all land on the same instant.
func (f *Factory) pastCreatedAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample account. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Email:    fmt.Sprintf("%s%d@example.com", gofakeit.Username(), gofakeit.Number(100, 999)),
		FullName: gofakeit.Name(),
		IsActive: true,
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.FullName, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateChurch constructs and persists a sample church.
func (f *Factory) CreateChurch(overrides ...func(*models.Church)) (*models.Church, error) {
	denominations := []string{"Baptist", "Methodist", "Lutheran", "Presbyterian", "Pentecostal", "Non-denominational"}
	size := gofakeit.Number(40, 600)

	church := &models.Church{
		Name:         fmt.Sprintf("%s %s Church", gofakeit.City(), gofakeit.RandomString([]string{"Grace", "Hope", "Faith", "Trinity", "Covenant"})),
		Location:     fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Denomination: denominations[f.rng.Intn(len(denominations))],
		Size:         &size,
	}

	for _, override := range overrides {
		override(church)
	}

	if f.opts.DryRun {
		f.nextID++
		church.ID = f.nextID
		log.Printf("[dry-run] CreateChurch: %s (%s)", church.Name, church.Location)
		return church, nil
	}

	if err := f.db.Create(church).Error; err != nil {
		return nil, err
	}
	return church, nil
}

// CreateMembership joins a user to a church with the given role. The
// created_at spread matters here: it determines each user's home church.
func (f *Factory) CreateMembership(church *models.Church, user *models.User, role authz.Role) (*models.Membership, error) {
	membership := &models.Membership{
		ChurchID:  church.ID,
		UserID:    user.ID,
		Role:      string(role),
		CreatedAt: f.pastCreatedAt(),
	}

	if f.opts.DryRun {
		log.Printf("[dry-run] CreateMembership: user=%d church=%d role=%s", user.ID, church.ID, role)
		return membership, nil
	}

	if err := f.db.Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

// CreateAnnouncement persists a sample announcement authored by the given
// leader in the given church.
func (f *Factory) CreateAnnouncement(church *models.Church, author *models.User, overrides ...func(*models.Announcement)) (*models.Announcement, error) {
	announcement := &models.Announcement{
		ChurchID:        church.ID,
		Title:           gofakeit.Sentence(4),
		Body:            gofakeit.Paragraph(1, 3, 8, "\n"),
		CreatedByUserID: &author.ID,
		CreatedAt:       f.pastCreatedAt(),
	}

	for _, override := range overrides {
		override(announcement)
	}

	if f.opts.DryRun {
		f.nextID++
		announcement.ID = f.nextID
		log.Printf("[dry-run] CreateAnnouncement: church=%d title=%q", church.ID, announcement.Title)
		return announcement, nil
	}

	if err := f.db.Create(announcement).Error; err != nil {
		return nil, err
	}
	return announcement, nil
}

// CreateEvent persists a sample event. Roughly half land in the future so
// upcoming filters have something to show.
func (f *Factory) CreateEvent(church *models.Church, creator *models.User, overrides ...func(*models.Event)) (*models.Event, error) {
	titles := []string{"Sunday Service", "Bible Study", "Youth Group", "Choir Practice", "Prayer Meeting", "Community Dinner"}

	var start time.Time
	if f.rng.Intn(2) == 0 {
		start = f.pastCreatedAt()
	} else {
		start = time.Now().Add(time.Duration(f.rng.Intn(30)+1) * 24 * time.Hour)
	}

	event := &models.Event{
		ChurchID:        church.ID,
		Title:           titles[f.rng.Intn(len(titles))],
		Location:        gofakeit.RandomString([]string{"Main hall", "Fellowship room", "Sanctuary", "Youth center"}),
		StartsAt:        start,
		EndsAt:          start.Add(time.Duration(f.rng.Intn(3)+1) * time.Hour),
		CreatedByUserID: &creator.ID,
	}

	for _, override := range overrides {
		override(event)
	}

	if f.opts.DryRun {
		f.nextID++
		event.ID = f.nextID
		log.Printf("[dry-run] CreateEvent: church=%d title=%q starts=%s", church.ID, event.Title, event.StartsAt.Format(time.RFC3339))
		return event, nil
	}

	if err := f.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// CreateAttendance persists an attendance row for a past event.
func (f *Factory) CreateAttendance(event *models.Event, user *models.User) (*models.Attendance, error) {
	status := models.AttendanceCheckedIn
	if f.rng.Intn(3) == 0 {
		status = models.AttendanceCheckedOut
	}

	attendance := &models.Attendance{
		EventID:   event.ID,
		UserID:    user.ID,
		Status:    status,
		Timestamp: event.StartsAt.Add(time.Duration(f.rng.Intn(30)) * time.Minute),
	}

	if f.opts.DryRun {
		log.Printf("[dry-run] CreateAttendance: event=%d user=%d status=%s", event.ID, user.ID, status)
		return attendance, nil
	}

	if err := f.db.Create(attendance).Error; err != nil {
		return nil, err
	}
	return attendance, nil
}
