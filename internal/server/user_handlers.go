package server

import (
	"steeple/internal/models"
	"steeple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ProfilePayload is the caller's account with their memberships attached.
type ProfilePayload struct {
	User        *models.User        `json:"user"`
	Memberships []models.Membership `json:"memberships"`
}

// GetMyProfile handles GET /api/users/me
// @Summary Get the caller's profile
// @Description Account plus all memberships, oldest first. The first entry is the home church.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfilePayload
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := authedUserID(c)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	memberships, err := s.membershipService.Mine(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(ProfilePayload{User: user, Memberships: memberships})
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{full_name=string} true "Fields to update"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"full_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   authedUserID(c),
		FullName: req.FullName,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}
