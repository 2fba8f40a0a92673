package server

import (
	"steeple/internal/models"
	"steeple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAnnouncements handles GET /api/announcements
// @Summary List announcements
// @Description Announcements of the caller's home church. Empty for callers with no membership.
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param mine query bool false "Only the caller's own posts"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Announcement
// @Router /announcements [get]
func (s *Server) GetAnnouncements(c *fiber.Ctx) error {
	page := parsePagination(c, 50)
	mine := c.QueryBool("mine", false)

	rows, err := s.announcementService.List(c.Context(), authedUserID(c), mine, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(rows)
}

// CreateAnnouncement handles POST /api/announcements
// @Summary Post an announcement
// @Description Leaders only. Posts to the caller's home church unless church_id names another church the caller leads.
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,body=string,church_id=int} true "Announcement"
// @Success 201 {object} models.Announcement
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /announcements [post]
func (s *Server) CreateAnnouncement(c *fiber.Ctx) error {
	var req struct {
		ChurchID *uint  `json:"church_id"`
		Title    string `json:"title"`
		Body     string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	a, err := s.announcementService.Create(c.Context(), authedUserID(c), service.CreateAnnouncementInput{
		ChurchID: req.ChurchID,
		Title:    req.Title,
		Body:     req.Body,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// GetAnnouncement handles GET /api/announcements/:id
// @Summary Get an announcement
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} models.Announcement
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /announcements/{id} [get]
func (s *Server) GetAnnouncement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	a, err := s.announcementService.Get(c.Context(), authedUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(a)
}

// UpdateAnnouncement handles PUT /api/announcements/:id
// @Summary Edit an announcement
// @Description Any leader of the owning church may edit.
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param request body object{title=string,body=string} true "Fields to update"
// @Success 200 {object} models.Announcement
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /announcements/{id} [put]
func (s *Server) UpdateAnnouncement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title *string `json:"title"`
		Body  *string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	a, err := s.announcementService.Update(c.Context(), authedUserID(c), id, service.UpdateAnnouncementInput{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(a)
}

// DeleteAnnouncement handles DELETE /api/announcements/:id
// @Summary Delete an announcement
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /announcements/{id} [delete]
func (s *Server) DeleteAnnouncement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.announcementService.Delete(c.Context(), authedUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Announcement deleted"})
}
