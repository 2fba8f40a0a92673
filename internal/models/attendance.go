package models

import "time"

// AttendanceStatus is the current check-in state for a user at an event.
type AttendanceStatus string

const (
	// AttendanceCheckedIn marks the user as present.
	AttendanceCheckedIn AttendanceStatus = "checked_in"
	// AttendanceCheckedOut marks the user as having left.
	AttendanceCheckedOut AttendanceStatus = "checked_out"
)

// ValidAttendanceStatus reports whether s is a recognized status value.
func ValidAttendanceStatus(s AttendanceStatus) bool {
	return s == AttendanceCheckedIn || s == AttendanceCheckedOut
}

// Attendance records the single current check-in status per (user, event)
// pair. The composite unique index is what makes the upsert race-safe: two
// concurrent check-ins converge on one row instead of creating duplicates.
// Timestamp is set server-side on every write and never taken from clients.
type Attendance struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	EventID   uint             `gorm:"not null;uniqueIndex:idx_attendance_event_user" json:"event_id"`
	Event     *Event           `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
	UserID    uint             `gorm:"not null;uniqueIndex:idx_attendance_event_user" json:"user_id"`
	User      *User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Status    AttendanceStatus `gorm:"type:varchar(20);not null" json:"status"`
	Timestamp time.Time        `gorm:"not null" json:"timestamp"`
}

// TableName specifies the table name for GORM.
func (Attendance) TableName() string {
	return "attendances"
}
