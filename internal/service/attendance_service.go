package service

import (
	"context"

	"steeple/internal/authz"
	"steeple/internal/models"
	"steeple/internal/repository"
)

// AttendanceService owns the attendance ledger rules: members write only
// their own row, leaders read the full roster, everyone else sees nothing.
type AttendanceService struct {
	attendances repository.AttendanceRepository
	events      repository.EventRepository
	engine      *authz.Engine
}

// NewAttendanceService returns a new AttendanceService.
func NewAttendanceService(attendances repository.AttendanceRepository, events repository.EventRepository, engine *authz.Engine) *AttendanceService {
	return &AttendanceService{attendances: attendances, events: events, engine: engine}
}

// AttendanceView is the result of a roster read. Leaders get every row;
// members get at most their own. SignedUp reports whether the caller has an
// attendance row, so a member with none gets an explicit marker rather than
// an error.
type AttendanceView struct {
	Rows       []models.Attendance `json:"rows"`
	FullRoster bool                `json:"full_roster"`
	SignedUp   bool                `json:"signed_up"`
}

// Record upserts the caller's status for an event. Any member of the event's
// church may check themselves in or out; repeat writes update the same row.
func (s *AttendanceService) Record(ctx context.Context, userID, eventID uint, status models.AttendanceStatus) (*models.Attendance, error) {
	if !models.ValidAttendanceStatus(status) {
		return nil, models.NewValidationError("status must be checked_in or checked_out")
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if _, err := s.engine.RequireMember(ctx, userID, event.ChurchID); err != nil {
		return nil, err
	}

	return s.attendances.Upsert(ctx, eventID, userID, status)
}

// View returns the attendance for an event. Leaders of the event's church
// see the full roster; plain members see only their own row.
func (s *AttendanceService) View(ctx context.Context, userID, eventID uint) (*AttendanceView, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	role, err := s.engine.RequireMember(ctx, userID, event.ChurchID)
	if err != nil {
		return nil, err
	}

	if role.IsLeader() {
		rows, err := s.attendances.ListByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		view := &AttendanceView{Rows: rows, FullRoster: true}
		for _, row := range rows {
			if row.UserID == userID {
				view.SignedUp = true
				break
			}
		}
		return view, nil
	}

	own, err := s.attendances.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	view := &AttendanceView{Rows: []models.Attendance{}}
	if own != nil {
		view.Rows = append(view.Rows, *own)
		view.SignedUp = true
	}
	return view, nil
}
