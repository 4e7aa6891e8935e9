package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	subjectsController "attendance_backend/internals/features/school/academics/subjects/controller"
	authMiddleware "attendance_backend/internals/middlewares/auth"
)

/*
User routes (read-only), mounted on /api/u:

	GET /api/u/subjects
	GET /api/u/subjects/:subject_id/students
	GET /api/u/teacher/subjects
*/
func SubjectUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := subjectsController.NewSubjectsController(db)

	subjects := r.Group("/subjects")
	subjects.Get("/", ctl.List)
	subjects.Get("/:subject_id/students", ctl.ListStudents)

	teacher := r.Group("/teacher",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("teacher subjects"), constants.TeacherOnly...),
	)
	teacher.Get("/subjects", ctl.ListMine)
}
