package server

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"steeple/internal/models"
	"steeple/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionPayload is returned by login and both registration flows. Role and
// Church are denormalized from the home membership so clients can render
// without a second round trip; both are null for users with no membership.
type SessionPayload struct {
	Token  string                `json:"token"`
	User   models.UserSummary    `json:"user"`
	Role   *string               `json:"role"`
	Church *models.ChurchSummary `json:"church"`
}

func (s *Server) buildSession(ctx context.Context, user *models.User) (*SessionPayload, error) {
	token, err := s.generateToken(user.ID, user.Email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	payload := &SessionPayload{
		Token: token,
		User:  user.Summary(),
	}

	home, ok, err := s.membershipRepo.Home(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if ok {
		role := home.Role
		payload.Role = &role
		church, err := s.churchRepo.GetByID(ctx, home.ChurchID)
		if err != nil {
			return nil, err
		}
		summary := church.Summary()
		payload.Church = &summary
	}

	return payload, nil
}

// RegisterChurch handles POST /api/auth/register-church
// @Summary Register a new church
// @Description Create a church together with its founding pastor account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string,full_name=string,church_name=string,location=string,denomination=string,size=int} true "Church registration"
// @Success 201 {object} SessionPayload
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register-church [post]
func (s *Server) RegisterChurch(c *fiber.Ctx) error {
	var req struct {
		Email        string `json:"email"`
		Password     string `json:"password"`
		FullName     string `json:"full_name"`
		ChurchName   string `json:"church_name"`
		Location     string `json:"location"`
		Denomination string `json:"denomination"`
		Size         *int   `json:"size"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, _, err := s.registrationService.RegisterChurch(c.Context(), service.RegisterChurchInput{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		ChurchName:   req.ChurchName,
		Location:     req.Location,
		Denomination: req.Denomination,
		Size:         req.Size,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	payload, err := s.buildSession(c.Context(), user)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payload)
}

// RegisterMember handles POST /api/auth/register-member
// @Summary Register a member account
// @Description Create an account joined to an existing church
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string,full_name=string,church_id=int,role=string} true "Member registration"
// @Success 201 {object} SessionPayload
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register-member [post]
func (s *Server) RegisterMember(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		ChurchID uint   `json:"church_id"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ChurchID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("church_id is required"))
	}

	user, _, err := s.registrationService.RegisterMember(c.Context(), service.RegisterMemberInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		ChurchID: req.ChurchID,
		Role:     req.Role,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	payload, err := s.buildSession(c.Context(), user)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payload)
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate by email and return a JWT with the caller's home church and role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} SessionPayload
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if user == nil || !user.IsActive {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	payload, err := s.buildSession(c.Context(), user)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(payload)
}

// Refresh handles POST /api/auth/refresh
// @Summary Refresh the session token
// @Description Exchange a still-valid token for a fresh one
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionPayload
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func (s *Server) Refresh(c *fiber.Ctx) error {
	userID, err := s.validateBearer(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError(err.Error()))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if !user.IsActive {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Account is deactivated"))
	}

	payload, err := s.buildSession(c.Context(), user)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(payload)
}

// Logout handles POST /api/auth/logout
// @Summary Revoke the current token
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	// Best-effort revocation: blacklist the token's jti until it expires.
	tokenString := bearerToken(c)
	if tokenString != "" && s.redis != nil {
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if jti, ok := claims["jti"].(string); ok && jti != "" {
					ttl := 7 * 24 * time.Hour
					if exp, ok := claims["exp"].(float64); ok {
						if until := time.Until(time.Unix(int64(exp), 0)); until > 0 {
							ttl = until
						}
					}
					s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
				}
			}
		}
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// generateToken creates a JWT token for the given user ID and email
func (s *Server) generateToken(userID uint, email string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"email": email,                                  // Email (cached in token)
		"iss":   tokenIssuer,                            // Issuer
		"aud":   tokenAudience,                          // Audience
		"exp":   now.Add(time.Hour * 24 * 7).Unix(),     // Expiration (7 days)
		"iat":   now.Unix(),                             // Issued at
		"nbf":   now.Unix(),                             // Not before
		"jti":   s.generateJTI(),                        // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
