package models

import "time"

// Announcement is a church-scoped notice. Deleting the church removes its
// announcements; deleting the author only nulls the creator reference.
type Announcement struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ChurchID        uint      `gorm:"not null;index" json:"church_id"`
	Church          *Church   `gorm:"foreignKey:ChurchID;constraint:OnDelete:CASCADE" json:"church,omitempty"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Body            string    `gorm:"type:text;not null" json:"body"`
	CreatedByUserID *uint     `json:"created_by_user_id"`
	CreatedByUser   *User     `gorm:"foreignKey:CreatedByUserID;constraint:OnDelete:SET NULL" json:"created_by_user,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
