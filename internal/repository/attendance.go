package repository

import (
	"context"
	"errors"
	"time"

	"steeple/internal/cache"
	"steeple/internal/models"
	"steeple/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceRepository defines persistence operations for the attendance
// ledger.
type AttendanceRepository interface {
	Upsert(ctx context.Context, eventID, userID uint, status models.AttendanceStatus) (*models.Attendance, error)
	GetByEventAndUser(ctx context.Context, eventID, userID uint) (*models.Attendance, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository returns a new AttendanceRepository implementation.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Upsert writes the caller's current status for an event. Repeated writes
// update the existing row in place; the (event_id, user_id) unique index
// makes concurrent first writes converge on a single row. The timestamp is
// always set server-side.
func (r *attendanceRepository) Upsert(ctx context.Context, eventID, userID uint, status models.AttendanceStatus) (*models.Attendance, error) {
	now := time.Now().UTC()
	att := models.Attendance{
		EventID:   eventID,
		UserID:    userID,
		Status:    status,
		Timestamp: now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":    string(status),
			"timestamp": now,
		}),
	}).Create(&att).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.RecordAttendanceWrite(string(status))
	cache.InvalidateEventRoster(ctx, eventID)

	// The conflict path does not populate the struct, so read the row back.
	return r.GetByEventAndUser(ctx, eventID, userID)
}

// GetByEventAndUser returns (nil, nil) when the user has no attendance row
// for the event.
func (r *attendanceRepository) GetByEventAndUser(ctx context.Context, eventID, userID uint) (*models.Attendance, error) {
	var att models.Attendance
	err := readDB(r.db).WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&att).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &att, nil
}

func (r *attendanceRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("timestamp ASC").
		Find(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}
