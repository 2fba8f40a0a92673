package server

import (
	"time"

	"steeple/internal/models"
	"steeple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetEvents handles GET /api/events
// @Summary List events
// @Description Events of the caller's home church, soonest first. Empty for callers with no membership.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param mine query bool false "Only events the caller created"
// @Param upcoming query bool false "Only events that have not started yet"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Event
// @Router /events [get]
func (s *Server) GetEvents(c *fiber.Ctx) error {
	page := parsePagination(c, 50)

	rows, err := s.eventService.List(c.Context(), authedUserID(c), service.ListEventsInput{
		Mine:     c.QueryBool("mine", false),
		Upcoming: c.QueryBool("upcoming", false),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(rows)
}

// CreateEvent handles POST /api/events
// @Summary Schedule an event
// @Description Leaders only. Scheduled in the caller's home church unless church_id names another church the caller leads.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,starts_at=string,ends_at=string,location=string,church_id=int} true "Event"
// @Success 201 {object} models.Event
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /events [post]
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	var req struct {
		ChurchID *uint     `json:"church_id"`
		Title    string    `json:"title"`
		StartsAt time.Time `json:"starts_at"`
		EndsAt   time.Time `json:"ends_at"`
		Location string    `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	e, err := s.eventService.Create(c.Context(), authedUserID(c), service.CreateEventInput{
		ChurchID: req.ChurchID,
		Title:    req.Title,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Location: req.Location,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

// GetEvent handles GET /api/events/:id
// @Summary Get an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} models.Event
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /events/{id} [get]
func (s *Server) GetEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	e, err := s.eventService.Get(c.Context(), authedUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(e)
}

// UpdateEvent handles PUT /api/events/:id
// @Summary Edit an event
// @Description Only the leader who created the event may edit it.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body object{title=string,starts_at=string,ends_at=string,location=string} true "Fields to update"
// @Success 200 {object} models.Event
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /events/{id} [put]
func (s *Server) UpdateEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    *string    `json:"title"`
		StartsAt *time.Time `json:"starts_at"`
		EndsAt   *time.Time `json:"ends_at"`
		Location *string    `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	e, err := s.eventService.Update(c.Context(), authedUserID(c), id, service.UpdateEventInput{
		Title:    req.Title,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Location: req.Location,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(e)
}

// DeleteEvent handles DELETE /api/events/:id
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /events/{id} [delete]
func (s *Server) DeleteEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.eventService.Delete(c.Context(), authedUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Event deleted"})
}

// GetEventAttendance handles GET /api/events/:id/attendance
// @Summary View event attendance
// @Description Leaders see the full roster; members see only their own row.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} service.AttendanceView
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /events/{id}/attendance [get]
func (s *Server) GetEventAttendance(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.attendanceService.View(c.Context(), authedUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(view)
}

// RecordAttendance handles POST /api/events/:id/attendance
// @Summary Check in or out of an event
// @Description Upserts the caller's own attendance row. Repeat writes update it in place.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body object{status=string} true "checked_in or checked_out"
// @Success 200 {object} models.Attendance
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /events/{id}/attendance [post]
func (s *Server) RecordAttendance(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	att, err := s.attendanceService.Record(c.Context(), authedUserID(c), id, models.AttendanceStatus(req.Status))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(att)
}
