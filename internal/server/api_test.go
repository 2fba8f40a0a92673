package server

import (
	"testing"

	"steeple/internal/models"
	"steeple/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationFlow(t *testing.T) {
	ts := newTestServer(t, nil)

	t.Run("church registration creates a pastor session", func(t *testing.T) {
		session := ts.registerChurch(t, "founder@example.com", "Grace Chapel")
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "founder@example.com", session.User.Email)
		require.NotNil(t, session.Role)
		assert.Equal(t, "pastor", *session.Role)
		require.NotNil(t, session.Church)
		assert.Equal(t, "Grace Chapel", session.Church.Name)
	})

	t.Run("member joins with a member session", func(t *testing.T) {
		founder := ts.registerChurch(t, "founder2@example.com", "Hope Fellowship")
		session := ts.registerMember(t, "joiner@example.com", founder.Church.ID)
		require.NotNil(t, session.Role)
		assert.Equal(t, "member", *session.Role)
		require.NotNil(t, session.Church)
		assert.Equal(t, founder.Church.ID, session.Church.ID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		ts.registerChurch(t, "dup@example.com", "First Church")
		resp := ts.request(t, fiber.MethodPost, "/api/auth/register-church", "", fiber.Map{
			"email":       "DUP@example.com",
			"password":    "SecurePass12!@",
			"full_name":   "Other Founder",
			"church_name": "Second Church",
			"location":    "Elsewhere",
		})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, models.CodeConflict, errorCode(t, resp))
	})

	t.Run("leader role cannot be self-assigned", func(t *testing.T) {
		founder := ts.registerChurch(t, "founder3@example.com", "Valley Church")
		resp := ts.request(t, fiber.MethodPost, "/api/auth/register-member", "", fiber.Map{
			"email":     "sneaky@example.com",
			"password":  "SecurePass12!@",
			"full_name": "Sneaky",
			"church_id": founder.Church.ID,
			"role":      "pastor",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown church is not found", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPost, "/api/auth/register-member", "", fiber.Map{
			"email":     "lost@example.com",
			"password":  "SecurePass12!@",
			"full_name": "Lost",
			"church_id": 9999,
		})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.registerChurch(t, "pastor@example.com", "Grace Chapel")

	t.Run("valid credentials return a session", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "Pastor@Example.com",
			"password": "SecurePass12!@",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		session := decodeJSON[SessionPayload](t, resp)
		assert.NotEmpty(t, session.Token)
		require.NotNil(t, session.Role)
		assert.Equal(t, "pastor", *session.Role)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "pastor@example.com",
			"password": "WrongPass12!@",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "ghost@example.com",
			"password": "SecurePass12!@",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestPublicChurchDirectory(t *testing.T) {
	ts := newTestServer(t, nil)
	session := ts.registerChurch(t, "founder@example.com", "Grace Chapel")

	resp := ts.request(t, fiber.MethodGet, "/api/churches/", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	churches := decodeJSON[[]models.Church](t, resp)
	require.Len(t, churches, 1)
	assert.Equal(t, "Grace Chapel", churches[0].Name)

	resp = ts.request(t, fiber.MethodGet, path("/api/churches/%d", session.Church.ID), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ts.request(t, fiber.MethodGet, "/api/churches/9999", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// The full life of a congregation: onboarding, content, scheduling, check-in
// and the two roster views.
func TestCongregationFlow(t *testing.T) {
	ts := newTestServer(t, nil)

	pastor := ts.registerChurch(t, "pastor@example.com", "Grace Chapel")
	member := ts.registerMember(t, "member@example.com", pastor.Church.ID)

	t.Run("members cannot post announcements", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPost, "/api/announcements/", member.Token, fiber.Map{
			"title": "Nope",
			"body":  "x",
		})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, models.CodeForbidden, errorCode(t, resp))
	})

	t.Run("pastor posts and member reads", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPost, "/api/announcements/", pastor.Token, fiber.Map{
			"title": "Potluck",
			"body":  "Bring a dish",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		resp = ts.request(t, fiber.MethodGet, "/api/announcements/", member.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		rows := decodeJSON[[]models.Announcement](t, resp)
		require.Len(t, rows, 1)
		assert.Equal(t, "Potluck", rows[0].Title)
	})

	var eventID uint
	t.Run("pastor schedules an event", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPost, "/api/events/", pastor.Token, eventBody("Sunday service"))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		event := decodeJSON[models.Event](t, resp)
		eventID = event.ID
		assert.Equal(t, pastor.Church.ID, event.ChurchID)
	})

	t.Run("member checks in, repeat write stays on one row", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPost, path("/api/events/%d/attendance", eventID), member.Token,
			fiber.Map{"status": "checked_in"})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp = ts.request(t, fiber.MethodPost, path("/api/events/%d/attendance", eventID), member.Token,
			fiber.Map{"status": "checked_out"})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		att := decodeJSON[models.Attendance](t, resp)
		assert.Equal(t, models.AttendanceCheckedOut, att.Status)
	})

	t.Run("invalid status fails validation", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPost, path("/api/events/%d/attendance", eventID), member.Token,
			fiber.Map{"status": "lurking"})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("pastor sees the full roster", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPost, path("/api/events/%d/attendance", eventID), pastor.Token,
			fiber.Map{"status": "checked_in"})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp = ts.request(t, fiber.MethodGet, path("/api/events/%d/attendance", eventID), pastor.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		view := decodeJSON[service.AttendanceView](t, resp)
		assert.True(t, view.FullRoster)
		assert.Len(t, view.Rows, 2)
	})

	t.Run("member sees only their own row", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodGet, path("/api/events/%d/attendance", eventID), member.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		view := decodeJSON[service.AttendanceView](t, resp)
		assert.False(t, view.FullRoster)
		assert.True(t, view.SignedUp)
		require.Len(t, view.Rows, 1)
		assert.Equal(t, member.User.ID, view.Rows[0].UserID)
	})
}

// Content never leaks across churches, and outsiders are told nothing more
// than "forbidden".
func TestTenantIsolation(t *testing.T) {
	ts := newTestServer(t, nil)

	grace := ts.registerChurch(t, "grace@example.com", "Grace Chapel")
	hope := ts.registerChurch(t, "hope@example.com", "Hope Fellowship")

	resp := ts.request(t, fiber.MethodPost, "/api/announcements/", grace.Token, fiber.Map{
		"title": "Grace news",
		"body":  "x",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	announcement := decodeJSON[models.Announcement](t, resp)

	t.Run("lists stay within the home church", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodGet, "/api/announcements/", hope.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		rows := decodeJSON[[]models.Announcement](t, resp)
		assert.Empty(t, rows)
	})

	t.Run("cross-tenant reads are forbidden", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodGet, path("/api/announcements/%d", announcement.ID), hope.Token, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("cross-tenant writes are forbidden", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPut, path("/api/announcements/%d", announcement.ID), hope.Token,
			fiber.Map{"title": "Hijack"})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		resp = ts.request(t, fiber.MethodDelete, path("/api/announcements/%d", announcement.ID), hope.Token, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("naming another tenant on create is forbidden", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPost, "/api/announcements/", hope.Token, fiber.Map{
			"church_id": grace.Church.ID,
			"title":     "Spoof",
			"body":      "x",
		})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("roster of another church is forbidden", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodGet, path("/api/churches/%d/members", grace.Church.ID), hope.Token, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestRoleAdministration(t *testing.T) {
	ts := newTestServer(t, nil)

	pastor := ts.registerChurch(t, "pastor@example.com", "Grace Chapel")
	member := ts.registerMember(t, "member@example.com", pastor.Church.ID)
	churchID := pastor.Church.ID

	t.Run("my-role reflects the membership", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodGet, path("/api/churches/%d/my-role", churchID), member.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		payload := decodeJSON[map[string]any](t, resp)
		assert.Equal(t, "member", payload["role"])
	})

	t.Run("pastor promotes a member", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPut,
			path("/api/churches/%d/members/%d/role", churchID, member.User.ID), pastor.Token,
			fiber.Map{"role": "deacon"})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		payload := decodeJSON[MemberPayload](t, resp)
		assert.Equal(t, "deacon", payload.Role)
	})

	t.Run("self role change is forbidden", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPut,
			path("/api/churches/%d/members/%d/role", churchID, pastor.User.ID), pastor.Token,
			fiber.Map{"role": "member"})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("invalid role fails validation", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPut,
			path("/api/churches/%d/members/%d/role", churchID, member.User.ID), pastor.Token,
			fiber.Map{"role": "bishop"})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("roster is visible to members", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodGet, path("/api/churches/%d/members", churchID), member.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		rows := decodeJSON[[]MemberPayload](t, resp)
		assert.Len(t, rows, 2)
	})
}

func TestProfile(t *testing.T) {
	ts := newTestServer(t, nil)
	session := ts.registerChurch(t, "pastor@example.com", "Grace Chapel")

	t.Run("profile includes memberships", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodGet, "/api/users/me", session.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		profile := decodeJSON[ProfilePayload](t, resp)
		assert.Equal(t, "pastor@example.com", profile.User.Email)
		require.Len(t, profile.Memberships, 1)
		assert.Equal(t, "pastor", profile.Memberships[0].Role)
	})

	t.Run("profile update", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPut, "/api/users/me", session.Token,
			fiber.Map{"full_name": "Renamed Pastor"})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		user := decodeJSON[models.User](t, resp)
		assert.Equal(t, "Renamed Pastor", user.FullName)
	})

	t.Run("requires auth", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodGet, "/api/users/me", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestEventOwnership(t *testing.T) {
	ts := newTestServer(t, nil)

	pastor := ts.registerChurch(t, "pastor@example.com", "Grace Chapel")
	deacon := ts.registerMember(t, "deacon@example.com", pastor.Church.ID)

	resp := ts.request(t, fiber.MethodPut,
		path("/api/churches/%d/members/%d/role", pastor.Church.ID, deacon.User.ID), pastor.Token,
		fiber.Map{"role": "deacon"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ts.request(t, fiber.MethodPost, "/api/events/", deacon.Token, eventBody("Bible study"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	event := decodeJSON[models.Event](t, resp)

	// Leadership alone does not grant mutation; only the creator may edit.
	resp = ts.request(t, fiber.MethodPut, path("/api/events/%d", event.ID), pastor.Token,
		fiber.Map{"title": "Hijacked"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = ts.request(t, fiber.MethodPut, path("/api/events/%d", event.ID), deacon.Token,
		fiber.Map{"title": "Rescheduled"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ts.request(t, fiber.MethodDelete, path("/api/events/%d", event.ID), deacon.Token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRefreshAndLogout(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ts := newTestServer(t, rdb)
	session := ts.registerChurch(t, "pastor@example.com", "Grace Chapel")

	t.Run("refresh returns a fresh session", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPost, "/api/auth/refresh", session.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		refreshed := decodeJSON[SessionPayload](t, resp)
		assert.NotEmpty(t, refreshed.Token)
		assert.Equal(t, session.User.ID, refreshed.User.ID)
	})

	t.Run("refresh without a token is unauthorized", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodPost, "/api/auth/refresh", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		resp := ts.request(t, fiber.MethodGet, "/api/users/me", session.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp = ts.request(t, fiber.MethodPost, "/api/auth/logout", session.Token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp = ts.request(t, fiber.MethodGet, "/api/users/me", session.Token, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := ts.request(t, fiber.MethodGet, "/health/live", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ts.request(t, fiber.MethodGet, "/health/ready", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload := decodeJSON[map[string]any](t, resp)
	assert.Equal(t, "healthy", payload["status"])
}
