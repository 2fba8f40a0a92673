package server

import (
	"time"

	"steeple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// MemberPayload is one row of a church roster. User is absent when the row
// was loaded without its account preloaded.
type MemberPayload struct {
	UserID   uint                `json:"user_id"`
	Role     string              `json:"role"`
	JoinedAt time.Time           `json:"joined_at"`
	User     *models.UserSummary `json:"user,omitempty"`
}

func toMemberPayload(m models.Membership) MemberPayload {
	payload := MemberPayload{
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: m.CreatedAt,
	}
	if m.User != nil {
		summary := m.User.Summary()
		payload.User = &summary
	}
	return payload
}

// GetChurches handles GET /api/churches
// @Summary List churches
// @Description Public church directory, ordered by name
// @Tags churches
// @Produce json
// @Success 200 {array} models.Church
// @Router /churches [get]
func (s *Server) GetChurches(c *fiber.Ctx) error {
	churches, err := s.churchRepo.List(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(churches)
}

// GetChurch handles GET /api/churches/:id
// @Summary Get a church
// @Tags churches
// @Produce json
// @Param id path int true "Church ID"
// @Success 200 {object} models.Church
// @Failure 404 {object} models.ErrorResponse
// @Router /churches/{id} [get]
func (s *Server) GetChurch(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	church, err := s.churchRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(church)
}

// GetMyRole handles GET /api/churches/:id/my-role
// @Summary Get the caller's role in a church
// @Tags churches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Church ID"
// @Success 200 {object} object{church_id=int,role=string}
// @Failure 403 {object} models.ErrorResponse
// @Router /churches/{id}/my-role [get]
func (s *Server) GetMyRole(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	role, err := s.membershipService.MyRole(c.Context(), authedUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"church_id": id,
		"role":      string(role),
	})
}

// GetChurchMembers handles GET /api/churches/:id/members
// @Summary List a church's members
// @Description Roster is visible to any member of the church
// @Tags churches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Church ID"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} MemberPayload
// @Failure 403 {object} models.ErrorResponse
// @Router /churches/{id}/members [get]
func (s *Server) GetChurchMembers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)

	memberships, err := s.membershipService.Roster(c.Context(), authedUserID(c), id, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	payload := make([]MemberPayload, 0, len(memberships))
	for _, m := range memberships {
		payload = append(payload, toMemberPayload(m))
	}
	return c.JSON(payload)
}

// SetMemberRole handles PUT /api/churches/:id/members/:userId/role
// @Summary Assign a member's role
// @Description Leaders only. Callers cannot change their own role.
// @Tags churches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Church ID"
// @Param userId path int true "Target user ID"
// @Param request body object{role=string} true "New role"
// @Success 200 {object} MemberPayload
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /churches/{id}/members/{userId}/role [put]
func (s *Server) SetMemberRole(c *fiber.Ctx) error {
	churchID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	membership, err := s.membershipService.SetRole(c.Context(), authedUserID(c), churchID, targetID, req.Role)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toMemberPayload(*membership))
}
