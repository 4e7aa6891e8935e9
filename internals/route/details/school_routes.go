package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	SubjectRoutes "attendance_backend/internals/features/school/academics/subjects/route"
	AttendanceRoutes "attendance_backend/internals/features/school/attendances/route"
)

/* ===================== USER (PRIVATE) ===================== */
// Needs a valid access token; role checks live on the routes themselves.
func SchoolUserRoutes(r fiber.Router, db *gorm.DB) {
	SubjectRoutes.SubjectUserRoutes(r, db)
	AttendanceRoutes.AttendanceUserRoutes(r, db)
}
