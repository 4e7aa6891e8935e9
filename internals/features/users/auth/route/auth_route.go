package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "attendance_backend/internals/features/users/auth/controller"
	rateLimiter "attendance_backend/internals/middlewares"
)

// AuthRoutes mounts /api/auth. protected is the JWT middleware.
func AuthRoutes(app *fiber.App, db *gorm.DB, protected fiber.Handler) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/logout", protected, authController.Logout)
	baseAuth.Get("/me", protected, authController.Me)
}
