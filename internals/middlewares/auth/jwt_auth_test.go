package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "attendance_backend/internals/helpers"
	helperAuth "attendance_backend/internals/helpers/auth"
)

const secret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func validClaims(sub uuid.UUID, role string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  sub.String(),
		"role": role,
		"name": "Ms. Teacher",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func newApp(revoked map[string]bool, checkErr error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(AuthJWT(AuthJWTOpts{
		Secret: secret,
		BlacklistChecker: func(raw string) (bool, error) {
			return revoked[raw], checkErr
		},
		AllowCookieFallback: true,
	}))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		actor, err := helperAuth.ActorFromCtx(c)
		if err != nil {
			return err
		}
		return c.JSON(actor)
	})
	app.Get("/teachers", OnlyRoles("Only teachers.", "teacher"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func call(t *testing.T, app *fiber.App, path, bearer string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthJWT(t *testing.T) {
	id := uuid.New()
	good := sign(t, validClaims(id, "Teacher"), secret)
	revoked := sign(t, validClaims(uuid.New(), "teacher"), secret)
	app := newApp(map[string]bool{revoked: true}, nil)

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "abc.def.ghi", http.StatusUnauthorized},
		{"wrong key", sign(t, validClaims(id, "teacher"), "other"), http.StatusUnauthorized},
		{"expired", sign(t, jwt.MapClaims{"sub": id.String(), "role": "teacher", "exp": time.Now().Add(-time.Minute).Unix()}, secret), http.StatusUnauthorized},
		{"no role", sign(t, jwt.MapClaims{"sub": id.String(), "exp": time.Now().Add(time.Hour).Unix()}, secret), http.StatusUnauthorized},
		{"bad subject", sign(t, jwt.MapClaims{"sub": "42", "role": "teacher", "exp": time.Now().Add(time.Hour).Unix()}, secret), http.StatusUnauthorized},
		{"revoked", revoked, http.StatusUnauthorized},
		{"valid", good, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, app, "/whoami", tc.token)
			assert.Equal(t, tc.want, resp.StatusCode)
			_ = resp.Body.Close()
		})
	}
}

func TestAuthJWT_CookieFallbackAndRoles(t *testing.T) {
	app := newApp(nil, nil)
	tok := sign(t, validClaims(uuid.New(), "staff"), secret)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = call(t, app, "/teachers", tok)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	resp = call(t, app, "/teachers", sign(t, validClaims(uuid.New(), "teacher"), secret))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthJWT_BlacklistFailureIsNotFatal(t *testing.T) {
	app := newApp(nil, errors.New("db down"))
	resp := call(t, app, "/whoami", sign(t, validClaims(uuid.New(), "admin"), secret))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}
