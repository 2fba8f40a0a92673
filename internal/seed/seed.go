package seed

import (
	"fmt"
	"log"
	"time"

	"steeple/internal/authz"
	"steeple/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumChurches      int
	MembersPerChurch int
	EventsPerChurch  int
	PostsPerChurch   int
	ShouldClean      bool
	Factory          SeedOptions
}

// DefaultOptions returns a small but representative data set.
func DefaultOptions() Options {
	return Options{
		NumChurches:      3,
		MembersPerChurch: 12,
		EventsPerChurch:  5,
		PostsPerChurch:   4,
	}
}

// Seed populates the database with demo congregations. Each church gets a
// pastor, a deacon, a flock of members, announcements, events and attendance
// on the past events.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d churches with %d members each...", opts.NumChurches, opts.MembersPerChurch)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db, opts.Factory)

	for i := 0; i < opts.NumChurches; i++ {
		if err := seedChurch(factory, opts); err != nil {
			return fmt.Errorf("failed to seed church %d: %w", i+1, err)
		}
	}

	log.Println("Database seeding completed")
	return nil
}

func seedChurch(factory *Factory, opts Options) error {
	church, err := factory.CreateChurch()
	if err != nil {
		return fmt.Errorf("create church: %w", err)
	}

	pastor, err := factory.CreateUser()
	if err != nil {
		return fmt.Errorf("create pastor: %w", err)
	}
	if _, err := factory.CreateMembership(church, pastor, authz.RolePastor); err != nil {
		return fmt.Errorf("create pastor membership: %w", err)
	}

	deacon, err := factory.CreateUser()
	if err != nil {
		return fmt.Errorf("create deacon: %w", err)
	}
	if _, err := factory.CreateMembership(church, deacon, authz.RoleDeacon); err != nil {
		return fmt.Errorf("create deacon membership: %w", err)
	}

	members := make([]*models.User, 0, opts.MembersPerChurch)
	for i := 0; i < opts.MembersPerChurch; i++ {
		member, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("create member: %w", err)
		}
		if _, err := factory.CreateMembership(church, member, authz.RoleMember); err != nil {
			return fmt.Errorf("create membership: %w", err)
		}
		members = append(members, member)
	}

	leaders := []*models.User{pastor, deacon}
	for i := 0; i < opts.PostsPerChurch; i++ {
		author := leaders[i%len(leaders)]
		if _, err := factory.CreateAnnouncement(church, author); err != nil {
			return fmt.Errorf("create announcement: %w", err)
		}
	}

	for i := 0; i < opts.EventsPerChurch; i++ {
		creator := leaders[i%len(leaders)]
		event, err := factory.CreateEvent(church, creator)
		if err != nil {
			return fmt.Errorf("create event: %w", err)
		}

		// Attendance only makes sense on events that already happened.
		if event.StartsAt.Before(time.Now()) {
			for j, member := range members {
				// Roughly two thirds of the flock shows up.
				if j%3 == 2 {
					continue
				}
				if _, err := factory.CreateAttendance(event, member); err != nil {
					return fmt.Errorf("create attendance: %w", err)
				}
			}
		}
	}

	log.Printf("Seeded %s: %d members, %d events", church.Name, opts.MembersPerChurch+2, opts.EventsPerChurch)
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE attendances, events, announcements, memberships, churches, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
