// Command main runs the database seeder for Steeple.
package main

import (
	"flag"
	"log"

	"steeple/internal/config"
	"steeple/internal/database"
	"steeple/internal/seed"
)

func main() {
	numChurches := flag.Int("churches", 3, "Number of churches to create")
	membersPerChurch := flag.Int("members", 12, "Number of plain members per church")
	eventsPerChurch := flag.Int("events", 5, "Number of events per church")
	postsPerChurch := flag.Int("announcements", 4, "Number of announcements per church")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d churches, %d members each, clean=%v", *numChurches, *membersPerChurch, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		NumChurches:      *numChurches,
		MembersPerChurch: *membersPerChurch,
		EventsPerChurch:  *eventsPerChurch,
		PostsPerChurch:   *postsPerChurch,
		ShouldClean:      *shouldClean,
		Factory:          seed.SeedOptions{DryRun: *dryRun},
	}
	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done. Seeded accounts use the password: password123")
}
