package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	subjectDTO "attendance_backend/internals/features/school/academics/subjects/dto"
	subjectRepo "attendance_backend/internals/features/school/academics/subjects/repository"
	helper "attendance_backend/internals/helpers"
	helperAuth "attendance_backend/internals/helpers/auth"
)

type SubjectsController struct {
	DB *gorm.DB
}

func NewSubjectsController(db *gorm.DB) *SubjectsController {
	return &SubjectsController{DB: db}
}

// GET /api/u/subjects
func (h *SubjectsController) List(c *fiber.Ctx) error {
	rows, err := subjectRepo.ListSubjects(c.UserContext(), h.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load subjects")
	}
	return helper.JsonOK(c, "ok", subjectDTO.FromSubjectModels(rows))
}

// GET /api/u/teacher/subjects
func (h *SubjectsController) ListMine(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !actor.Is(constants.RoleTeacher) {
		return helper.JsonError(c, fiber.StatusForbidden, "Unauthorized access.")
	}
	rows, err := subjectRepo.ListSubjectsForTeacher(c.UserContext(), h.DB, actor.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load subjects")
	}
	return helper.JsonOK(c, "ok", subjectDTO.FromSubjectModels(rows))
}

/*
=========================================================
GET /api/u/subjects/:subject_id/students
Teachers only see subjects assigned to them; admin and staff see all.
=========================================================
*/
func (h *SubjectsController) ListStudents(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	subjectID, err := uuid.Parse(strings.TrimSpace(c.Params("subject_id")))
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"subject_id": {"The subject_id must be a valid UUID."},
		})
	}

	ctx := c.UserContext()
	ok, err := subjectRepo.SubjectExists(ctx, h.DB, subjectID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load subject")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
	}

	if actor.Is(constants.RoleTeacher) {
		assigned, err := subjectRepo.IsTeacherAssigned(ctx, h.DB, actor.ID, subjectID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check assignment")
		}
		if !assigned {
			return helper.JsonError(c, fiber.StatusForbidden, "Unauthorized to view students for this subject.")
		}
	}

	rows, err := subjectRepo.ListEnrolledStudents(ctx, h.DB, subjectID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}
	return helper.JsonOK(c, "ok", subjectDTO.FromStudentModels(rows))
}
