package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"attendance_backend/internals/configs"
	helperAuth "attendance_backend/internals/helpers/auth"
	authMiddleware "attendance_backend/internals/middlewares/auth"
	routeDetails "attendance_backend/internals/route/details"
)

var startTime = time.Now()

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	jwt := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		BlacklistChecker:    helperAuth.Checker(db, configs.JWTSecret),
		AllowCookieFallback: true,
	})

	log.Info().Msg("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db, jwt)

	log.Info().Msg("[INFO] Setting up PRIVATE (user) group...")
	private := app.Group("/api/u", jwt)

	log.Info().Msg("[INFO] Mounting School routes...")
	routeDetails.SchoolUserRoutes(private, db)
}
