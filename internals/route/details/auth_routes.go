package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "attendance_backend/internals/features/users/auth/route"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, protected fiber.Handler) {
	authRoute.AuthRoutes(app, db, protected)
}
