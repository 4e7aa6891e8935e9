package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	subjectDTO "attendance_backend/internals/features/school/academics/subjects/dto"
	subjectRepo "attendance_backend/internals/features/school/academics/subjects/repository"
	"attendance_backend/internals/features/school/attendances/dto"
	"attendance_backend/internals/features/school/attendances/model"
	"attendance_backend/internals/features/school/attendances/service"
	helper "attendance_backend/internals/helpers"
	helperAuth "attendance_backend/internals/helpers/auth"
	"attendance_backend/internals/helpers/dbtime"
)

// DefaultSummaryWindowDays is how far back the dashboard looks without start_date.
const DefaultSummaryWindowDays = 7

type AttendanceController struct {
	DB         *gorm.DB
	Recorder   *service.Recorder
	Aggregator *service.Aggregator
	Now        func() time.Time
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		DB:         db,
		Recorder:   service.NewRecorder(db),
		Aggregator: service.NewAggregator(db),
		Now:        time.Now,
	}
}

/*
=========================================================
RECORD
POST /api/u/attendances
body: {subject_id, attendance_date, attendances: {student_id: status}}
=========================================================
*/
func (h *AttendanceController) Record(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonFromValidator(c, err)
	}

	// Formats were checked by the validator above.
	subjectID := uuid.MustParse(req.SubjectID)
	date, err := dbtime.ParseDate(req.AttendanceDate)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"attendance_date": {err.Error()}})
	}
	statuses := make(map[uuid.UUID]model.AttendanceStatus, len(req.Attendances))
	for k, v := range req.Attendances {
		statuses[uuid.MustParse(k)] = model.AttendanceStatus(v)
	}

	res, err := h.Recorder.Record(c.UserContext(), actor, service.RecordInput{
		SubjectID: subjectID,
		Date:      date,
		Statuses:  statuses,
	})
	if err != nil {
		return writeServiceError(c, err, "Failed to save attendance")
	}

	c.Set("X-Attendance-Recorded", strconv.Itoa(res.RecordedCount))
	c.Set("X-Attendance-Skipped", strconv.Itoa(len(res.SkippedStudents)))
	return helper.JsonNoContent(c, res.Message)
}

/*
=========================================================
SUMMARY
GET /api/u/attendances/summary?start_date=&end_date=&subject_id=&search_term=&page=&per_page=
per_page: 10|15|25|50 (default 15)
=========================================================
*/
func (h *AttendanceController) Summary(c *fiber.Ctx) error {
	var q dto.SummaryQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	q.Normalize()
	if err := helper.Validate.Struct(&q); err != nil {
		return helper.JsonFromValidator(c, err)
	}

	today := dbtime.TodayIn(h.now(), dbtime.GetSchoolLocation(c))
	end := today
	if q.EndDate != "" {
		end, _ = dbtime.ParseDate(q.EndDate)
	}
	start := today.AddDays(-DefaultSummaryWindowDays)
	if q.StartDate != "" {
		start, _ = dbtime.ParseDate(q.StartDate)
	}

	var subjectID *uuid.UUID
	if q.SubjectID != "" {
		id := uuid.MustParse(q.SubjectID)
		subjectID = &id
	}

	paging := helper.ParseFiber(c)
	page, err := h.Aggregator.Summarize(c.UserContext(), service.SummaryQuery{
		StartDate:  start,
		EndDate:    end,
		SubjectID:  subjectID,
		SearchTerm: q.SearchTerm,
		Page:       paging.Page,
		PerPage:    paging.PerPage,
	})
	if err != nil {
		return writeServiceError(c, err, "Failed to load attendance summary")
	}

	subjects, err := subjectRepo.ListSubjects(c.UserContext(), h.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load subjects")
	}

	includes := fiber.Map{
		"filters":     page.Filters,
		"period_days": page.PeriodDays,
		"subjects":    subjectDTO.FromSubjectModels(subjects),
	}
	p := page.Pagination()
	return helper.JsonListEx(c, "ok", page.Rows, &p, includes)
}

func (h *AttendanceController) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// writeServiceError maps the service error taxonomy onto HTTP.
func writeServiceError(c *fiber.Ctx, err error, storageMsg string) error {
	var verr *service.ValidationError
	var aerr *service.AuthorizationError
	var serr *service.StorageError
	switch {
	case errors.As(err, &verr):
		return helper.JsonValidationError(c, verr.Fields)
	case errors.As(err, &aerr):
		return helper.JsonError(c, fiber.StatusForbidden, aerr.Reason)
	case errors.As(err, &serr) && (helper.IsUniqueViolation(serr) || helper.IsForeignKeyViolation(serr)):
		// a concurrent writer or a deleted student/subject slipped past the checks
		return helper.JsonError(c, fiber.StatusConflict, "The roster changed while saving. Please retry.")
	case errors.As(err, &serr):
		return helper.JsonError(c, fiber.StatusInternalServerError, storageMsg)
	default:
		return helper.FromFiberError(c, err)
	}
}
