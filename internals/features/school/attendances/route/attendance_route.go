package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	"attendance_backend/internals/features/school/attendances/controller"
	authMiddleware "attendance_backend/internals/middlewares/auth"
)

/*
Mounted on the authenticated /api/u group:

	POST /api/u/attendances          (teacher)
	GET  /api/u/attendances/summary  (teacher, admin, staff)
*/
func AttendanceUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAttendanceController(db)

	g := r.Group("/attendances")
	g.Post("/",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("attendance recording"), constants.TeacherOnly...),
		ctl.Record,
	)
	g.Get("/summary",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("the attendance dashboard"), constants.AllRoles...),
		ctl.Summary,
	)
}
