package models

import "time"

// Event is a church-scoped scheduled gathering. Same cascade rules as
// Announcement: church delete cascades, creator delete nulls the reference.
type Event struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ChurchID        uint      `gorm:"not null;index" json:"church_id"`
	Church          *Church   `gorm:"foreignKey:ChurchID;constraint:OnDelete:CASCADE" json:"church,omitempty"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	StartsAt        time.Time `gorm:"not null" json:"starts_at"`
	EndsAt          time.Time `gorm:"not null" json:"ends_at"`
	Location        string    `gorm:"size:200" json:"location"`
	CreatedByUserID *uint     `json:"created_by_user_id"`
	CreatedByUser   *User     `gorm:"foreignKey:CreatedByUserID;constraint:OnDelete:SET NULL" json:"created_by_user,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
