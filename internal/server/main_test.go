package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"steeple/internal/cache"
	"steeple/internal/config"
	"steeple/internal/database"
	"steeple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "unit-test-secret-0123456789abcdef"

type testServer struct {
	srv *Server
	app *fiber.App
}

// newTestServer boots a full server against an in-memory database. The cache
// layer is disabled so state never leaks between tests; pass a redis client
// only when the test exercises revocation.
func newTestServer(t *testing.T, redisClient *redis.Client) *testServer {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	cache.SetClient(nil)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	cfg := &config.Config{
		JWTSecret: testJWTSecret,
		Env:       "test",
	}

	srv, err := NewServerWithDeps(cfg, db, redisClient)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	srv.SetupRoutes(app)

	return &testServer{srv: srv, app: app}
}

// request performs an HTTP request against the test app. A non-nil body is
// JSON-encoded; a non-empty token is sent as a bearer credential.
func (ts *testServer) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NoError(t, resp.Body.Close())
	return out
}

// registerChurch onboards a new tenant and returns the session payload.
func (ts *testServer) registerChurch(t *testing.T, email, churchName string) SessionPayload {
	t.Helper()
	resp := ts.request(t, fiber.MethodPost, "/api/auth/register-church", "", fiber.Map{
		"email":       email,
		"password":    "SecurePass12!@",
		"full_name":   "Test Founder",
		"church_name": churchName,
		"location":    "Springfield",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decodeJSON[SessionPayload](t, resp)
}

// registerMember joins an existing church and returns the session payload.
func (ts *testServer) registerMember(t *testing.T, email string, churchID uint) SessionPayload {
	t.Helper()
	resp := ts.request(t, fiber.MethodPost, "/api/auth/register-member", "", fiber.Map{
		"email":     email,
		"password":  "SecurePass12!@",
		"full_name": "Test Member",
		"church_id": churchID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decodeJSON[SessionPayload](t, resp)
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	payload := decodeJSON[models.ErrorResponse](t, resp)
	return payload.Code
}

func eventBody(title string) fiber.Map {
	return fiber.Map{
		"title":     title,
		"starts_at": "2026-09-06T10:00:00Z",
		"ends_at":   "2026-09-06T12:00:00Z",
		"location":  "Main hall",
	}
}

func path(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
