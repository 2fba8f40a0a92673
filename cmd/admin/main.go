// Package main provides operator utilities for Steeple. Role assignment
// through the API requires an existing leader; this tool is the escape hatch
// for a church whose last pastor is gone.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"steeple/internal/authz"
	"steeple/internal/config"
	"steeple/internal/database"
	"steeple/internal/models"
	"steeple/internal/repository"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin/main.go set-role <church_id> <user_id> <role>  - Assign a member's role")
		fmt.Println("  go run ./cmd/admin/main.go list-leaders <church_id>               - List a church's leaders")
		fmt.Println("  go run ./cmd/admin/main.go deactivate <user_id>                   - Deactivate an account")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch os.Args[1] {
	case "set-role":
		if len(os.Args) < 5 {
			fmt.Println("Usage: go run ./cmd/admin/main.go set-role <church_id> <user_id> <role>")
			os.Exit(1)
		}
		setRole(db, parseUint(os.Args[2]), parseUint(os.Args[3]), os.Args[4])

	case "list-leaders":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go list-leaders <church_id>")
			os.Exit(1)
		}
		listLeaders(db, parseUint(os.Args[2]))

	case "deactivate":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go deactivate <user_id>")
			os.Exit(1)
		}
		deactivate(db, parseUint(os.Args[2]))

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func parseUint(s string) uint {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		log.Fatalf("Invalid numeric argument %q: %v", s, err)
	}
	return uint(v)
}

func setRole(db *gorm.DB, churchID, userID uint, roleName string) {
	role, err := authz.ParseRole(roleName)
	if err != nil {
		log.Fatalf("Invalid role: %v", err)
	}

	ctx := context.Background()
	memberships := repository.NewMembershipRepository(db)
	if err := memberships.UpdateRole(ctx, churchID, userID, role); err != nil {
		log.Fatalf("Failed to set role: %v", err)
	}

	fmt.Printf("User %d is now %s of church %d\n", userID, role, churchID)
}

func listLeaders(db *gorm.DB, churchID uint) {
	var leaders []models.Membership
	err := db.Preload("User").
		Where("church_id = ? AND LOWER(role) IN ?", churchID, []string{"pastor", "deacon"}).
		Order("created_at ASC").
		Find(&leaders).Error
	if err != nil {
		log.Fatalf("Failed to fetch leaders: %v", err)
	}

	if len(leaders) == 0 {
		fmt.Printf("Church %d has no leaders\n", churchID)
		return
	}

	fmt.Printf("Leaders of church %d:\n", churchID)
	for _, m := range leaders {
		email := ""
		if m.User != nil {
			email = m.User.Email
		}
		fmt.Printf("  user=%d role=%s email=%s\n", m.UserID, m.Role, email)
	}
}

func deactivate(db *gorm.DB, userID uint) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		log.Fatalf("User %d not found: %v", userID, err)
	}

	if !user.IsActive {
		fmt.Printf("User %d (%s) is already deactivated\n", user.ID, user.Email)
		return
	}

	user.IsActive = false
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to deactivate user: %v", err)
	}

	fmt.Printf("Deactivated user %d (%s)\n", user.ID, user.Email)
}
