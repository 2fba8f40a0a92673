package database

import "steeple/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Church{},
		&models.Membership{},
		&models.Announcement{},
		&models.Event{},
		&models.Attendance{},
	}
}
