// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an account capable of authenticating.
//
// Emails are lowercased before write so the unique index doubles as a
// case-insensitive uniqueness guarantee. The password column holds a bcrypt
// hash and is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FullName  string    `gorm:"size:100" json:"full_name"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	IsStaff   bool      `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserSummary is the nested representation embedded in other entities.
// Display fields only, never the credential.
type UserSummary struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Summary returns the embeddable representation of the user.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email, FullName: u.FullName}
}
