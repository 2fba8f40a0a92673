package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signToken builds a token with the given claim overrides on top of a valid
// claim set for user 1.
func signToken(t *testing.T, secret string, overrides jwt.MapClaims) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "1",
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": "test-jti",
	}
	for k, v := range overrides {
		claims[k] = v
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t, nil)

	app := fiber.New()
	app.Get("/protected", ts.srv.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": authedUserID(c)})
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "Token abc",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not-a-token",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			authHeader: "Bearer " + signToken(t, "some-other-secret", nil),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong issuer",
			authHeader: "Bearer " + signToken(t, testJWTSecret, jwt.MapClaims{"iss": "someone-else"}),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong audience",
			authHeader: "Bearer " + signToken(t, testJWTSecret, jwt.MapClaims{"aud": "other-client"}),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + signToken(t, testJWTSecret, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()}),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "non-numeric subject",
			authHeader: "Bearer " + signToken(t, testJWTSecret, jwt.MapClaims{"sub": "abc"}),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer " + signToken(t, testJWTSecret, nil),
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestAuthRequired_RevokedToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ts := newTestServer(t, rdb)

	app := fiber.New()
	app.Get("/protected", ts.srv.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	token := signToken(t, testJWTSecret, jwt.MapClaims{"jti": "revoked-jti"})

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, mr.Set("blacklist:revoked-jti", "1"))

	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
