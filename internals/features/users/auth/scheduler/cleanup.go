package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	helperAuth "attendance_backend/internals/helpers/auth"
)

// StartBlacklistCleanupScheduler purges expired token_blacklist rows on schedule
// (cron syntax or "@every 24h"). The caller stops the returned cron.
func StartBlacklistCleanupScheduler(db *gorm.DB, spec string) (*cron.Cron, error) {
	if spec == "" {
		spec = "@every 24h"
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, func() { RunBlacklistCleanup(db) }); err != nil {
		return nil, err
	}
	log.Info().Str("schedule", spec).Msg("[CLEANUP] token_blacklist scheduler started")
	c.Start()
	return c, nil
}

// RunBlacklistCleanup is one pass of the scheduled job.
func RunBlacklistCleanup(db *gorm.DB) int64 {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := helperAuth.PurgeExpired(ctx, db, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("[CLEANUP] purge token_blacklist")
		return 0
	}
	log.Info().Int64("deleted", n).Msg("[CLEANUP] token_blacklist purged")
	return n
}
