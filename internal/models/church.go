package models

import "time"

// Church represents a tenant organization that owns its own content.
// Churches are created only through the register-church onboarding flow.
type Church struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Location     string    `gorm:"size:200" json:"location"`
	Denomination string    `gorm:"size:100" json:"denomination"`
	Size         *int      `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Church) TableName() string {
	return "churches"
}

// ChurchSummary is the nested representation embedded in other entities.
type ChurchSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Summary returns the embeddable representation of the church.
func (c Church) Summary() ChurchSummary {
	return ChurchSummary{ID: c.ID, Name: c.Name, Location: c.Location}
}
