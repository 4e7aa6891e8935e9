package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance_backend/internals/configs"
	"attendance_backend/internals/constants"
	"attendance_backend/internals/databases/sqlitetest"
	authService "attendance_backend/internals/features/users/auth/service"
	userModel "attendance_backend/internals/features/users/user/model"
	helper "attendance_backend/internals/helpers"
)

type client struct {
	t   *testing.T
	app *fiber.App
}

func (c client) do(method, path, token string, body any) (*http.Response, map[string]any) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&out)
	}
	return resp, out
}

func TestAttendanceFlow(t *testing.T) {
	configs.JWTSecret = "flow-secret"
	configs.JWTTTL = time.Hour

	db := sqlitetest.Open(t)
	hash, err := authService.HashPassword("password")
	require.NoError(t, err)
	teacher := userModel.UserModel{Name: "Teacher One", Email: "teacher@example.com", Password: hash, Role: constants.RoleTeacher, IsActive: true}
	require.NoError(t, db.Create(&teacher).Error)
	inactive := userModel.UserModel{Name: "Gone", Email: "gone@example.com", Password: hash, Role: constants.RoleTeacher}
	require.NoError(t, db.Create(&inactive).Error)
	require.NoError(t, db.Model(&inactive).Update("is_active", false).Error)

	sub := sqlitetest.Subject(t, db, "MA101", "Mathematics")
	alice := sqlitetest.Student(t, db, "STU-001", "Alice", "Smith")
	sqlitetest.Enroll(t, db, alice.StudentID, sub.SubjectID)
	sqlitetest.Assign(t, db, teacher.ID, sub.SubjectID)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	SetupRoutes(app, db)
	c := client{t: t, app: app}

	resp, _ := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := c.do(http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "teacher@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "These credentials do not match our records.", body["message"])

	resp, _ = c.do(http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "gone@example.com", "password": "password"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = c.do(http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "Teacher@Example.com", "password": "password"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["data"].(map[string]any)["access_token"].(string)
	require.NotEmpty(t, token)

	resp, _ = c.do(http.MethodGet, "/api/u/attendances/summary", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = c.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "teacher", body["data"].(map[string]any)["role"])

	resp, _ = c.do(http.MethodPost, "/api/u/attendances", token, fiber.Map{
		"subject_id":      sub.SubjectID.String(),
		"attendance_date": "2024-03-04",
		"attendances":     map[string]string{alice.StudentID.String(): "present"},
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "Attendance marked successfully.", resp.Header.Get(helper.HeaderMessage))

	resp, body = c.do(http.MethodGet, "/api/u/attendances/summary?start_date=2024-03-01&end_date=2024-03-07", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.EqualValues(t, 100, data[0].(map[string]any)["percentage"])

	resp, body = c.do(http.MethodGet, "/api/u/teacher/subjects", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 1)

	resp, _ = c.do(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = c.do(http.MethodGet, "/api/u/attendances/summary", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token revoked", body["message"])
}
