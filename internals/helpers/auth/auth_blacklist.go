package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "attendance_backend/internals/features/users/auth/model"
)

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

// Add stores HMAC(access token) so raw tokens never reach the table.
// Times are kept in UTC so they compare correctly as text on SQLite.
// A second logout with the same token refreshes expired_at.
func Add(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return nil
	}
	expiresAt = expiresAt.UTC()
	row := authModel.TokenBlacklist{
		Token:     hmacHex(rawAccessToken, jwtSecret),
		ExpiredAt: expiresAt,
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.Assignments(map[string]any{"expired_at": expiresAt, "deleted_at": nil}),
	}).Create(&row).Error
}

// IsBlacklisted: an active row that has not expired yet.
func IsBlacklisted(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).
		Model(&authModel.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", hmacHex(rawAccessToken, jwtSecret), time.Now().UTC()).
		Count(&n).Error
	return n > 0, err
}

// PurgeExpired hard-deletes rows whose expiry passed before now.
func PurgeExpired(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	if db == nil {
		return 0, nil
	}
	res := db.WithContext(ctx).Unscoped().
		Where("expired_at <= ?", now.UTC()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}

// Checker adapts the store to the JWT middleware's BlacklistChecker option.
func Checker(db *gorm.DB, jwtSecret string) func(rawToken string) (bool, error) {
	return func(rawToken string) (bool, error) {
		return IsBlacklisted(context.Background(), db, rawToken, jwtSecret)
	}
}
