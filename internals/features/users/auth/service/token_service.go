package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	userModel "attendance_backend/internals/features/users/user/model"
)

const accessTTLDefault = 12 * time.Hour

// BuildAccessClaims: sub and role are what the JWT middleware turns into an Actor.
func BuildAccessClaims(user userModel.UserModel, now time.Time, ttl time.Duration) jwt.MapClaims {
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	return jwt.MapClaims{
		"typ":  "access",
		"sub":  user.ID.String(),
		"role": user.Role,
		"name": user.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
}

// IssueAccessToken signs an HS256 token and reports when it expires.
func IssueAccessToken(user userModel.UserModel, secret string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("jwt secret is not set")
	}
	claims := BuildAccessClaims(user, now, ttl)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, time.Unix(claims["exp"].(int64), 0), nil
}

// TokenExpiry reads exp from a token signed with secret. Expired or invalid
// tokens fall back to now+fallback so a blacklist row still outlives them.
func TokenExpiry(raw, secret string, now time.Time, fallback time.Duration) time.Time {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err == nil && tok.Valid {
		if claims, ok := tok.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				if until := time.Unix(int64(exp), 0); until.After(now) {
					return until.Add(time.Minute)
				}
			}
		}
	}
	return now.Add(fallback)
}
