package models

import "time"

// Membership maps users to churches and tracks role. The composite primary
// key enforces at most one membership per (church, user) pair at the storage
// layer, so concurrent joins cannot produce duplicate rows.
//
// Role values are normalized to lowercase before write; readers must still
// treat stored values case-insensitively because rows written by earlier
// revisions may carry mixed casing.
type Membership struct {
	ChurchID  uint      `gorm:"primaryKey;autoIncrement:false" json:"church_id"`
	Church    *Church   `gorm:"foreignKey:ChurchID;constraint:OnDelete:CASCADE" json:"church,omitempty"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Role      string    `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
