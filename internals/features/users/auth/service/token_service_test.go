package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "attendance_backend/internals/features/users/user/model"
)

func TestIssueAccessToken(t *testing.T) {
	u := userModel.UserModel{ID: uuid.New(), Name: "T", Role: "teacher"}
	now := time.Now().UTC().Truncate(time.Second)

	raw, exp, err := IssueAccessToken(u, "k", now, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour).Unix(), exp.Unix())

	tok, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return []byte("k"), nil })
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, u.ID.String(), claims["sub"])
	assert.Equal(t, "teacher", claims["role"])

	_, _, err = IssueAccessToken(u, "", now, time.Hour)
	assert.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	u := userModel.UserModel{ID: uuid.New(), Role: "admin"}
	now := time.Now().UTC()
	raw, exp, err := IssueAccessToken(u, "k", now, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, exp.Add(time.Minute).Unix(), TokenExpiry(raw, "k", now, time.Minute).Unix())
	assert.Equal(t, now.Add(2*time.Minute), TokenExpiry("garbage", "k", now, 2*time.Minute))
}

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("password")
	require.NoError(t, err)
	assert.NoError(t, CheckPasswordHash(h, "password"))
	assert.Error(t, CheckPasswordHash(h, "nope"))
}
