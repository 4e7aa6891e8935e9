package helper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance_backend/internals/databases/sqlitetest"
	authModel "attendance_backend/internals/features/users/auth/model"
)

func TestBlacklist(t *testing.T) {
	db := sqlitetest.Open(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, Add(ctx, db, "live-token", "s3cret", now.Add(time.Hour)))
	require.NoError(t, Add(ctx, db, "old-token", "s3cret", now.Add(-time.Hour)))
	// second logout with the same token refreshes the row instead of failing
	require.NoError(t, Add(ctx, db, "live-token", "s3cret", now.Add(2*time.Hour)))

	var rows []authModel.TokenBlacklist
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.NotContains(t, r.Token, "token")
	}

	black, err := IsBlacklisted(ctx, db, "live-token", "s3cret")
	require.NoError(t, err)
	assert.True(t, black)

	black, err = Checker(db, "s3cret")("old-token")
	require.NoError(t, err)
	assert.False(t, black, "expired rows no longer block")

	black, err = IsBlacklisted(ctx, db, "live-token", "other-secret")
	require.NoError(t, err)
	assert.False(t, black)

	n, err := PurgeExpired(ctx, db, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var left int64
	require.NoError(t, db.Unscoped().Model(&authModel.TokenBlacklist{}).Count(&left).Error)
	assert.EqualValues(t, 1, left)
}
