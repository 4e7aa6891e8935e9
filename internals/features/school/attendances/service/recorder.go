package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	studentRepo "attendance_backend/internals/features/school/academics/students/repository"
	subjectRepo "attendance_backend/internals/features/school/academics/subjects/repository"
	"attendance_backend/internals/features/school/attendances/model"
	attendanceRepo "attendance_backend/internals/features/school/attendances/repository"
	"attendance_backend/internals/constants"
	helperAuth "attendance_backend/internals/helpers/auth"
	"attendance_backend/internals/helpers/dbtime"
)

const (
	MsgAttendanceMarked    = "Attendance marked successfully."
	MsgUnauthorizedSubject = "Unauthorized to mark attendance for this subject."
)

// RecordInput is a full roster for one subject on one day.
type RecordInput struct {
	SubjectID uuid.UUID
	Date      dbtime.Date
	Statuses  map[uuid.UUID]model.AttendanceStatus
}

type RecordResult struct {
	SubjectID       uuid.UUID            `json:"subject_id"`
	Date            dbtime.Date          `json:"attendance_date"`
	SubmittedCount  int                  `json:"submitted_count"`
	RecordedCount   int                  `json:"recorded_count"`
	ReplacedCount   int64                `json:"replaced_count"`
	SkippedStudents []uuid.UUID          `json:"skipped_student_ids"`
	Warnings        []NotEnrolledWarning `json:"warnings,omitempty"`
	Message         string               `json:"message"`
}

// Recorder replaces the attendance of a (subject, date) key in one transaction.
type Recorder struct {
	DB *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{DB: db}
}

// Record validates, authorizes, then deletes and re-inserts the roster.
// Either every row of the new roster is committed or the old one stays.
func (r *Recorder) Record(ctx context.Context, actor helperAuth.Actor, in RecordInput) (*RecordResult, error) {
	ids := sortedStudentIDs(in.Statuses)

	if err := r.validate(ctx, in, ids); err != nil {
		return nil, err
	}
	if err := r.authorize(ctx, actor, in.SubjectID); err != nil {
		return nil, err
	}

	res := &RecordResult{
		SubjectID:       in.SubjectID,
		Date:            in.Date,
		SubmittedCount:  len(ids),
		SkippedStudents: []uuid.UUID{},
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := subjectRepo.LockSubject(ctx, tx, in.SubjectID); err != nil {
			return &StorageError{Op: "lock subject", Err: err}
		}

		deleted, err := attendanceRepo.DeleteBySubjectDate(ctx, tx, in.SubjectID, in.Date)
		if err != nil {
			return &StorageError{Op: "delete attendance", Err: err}
		}
		res.ReplacedCount = deleted

		enrolled, err := subjectRepo.EnrolledAmong(ctx, tx, in.SubjectID, ids)
		if err != nil {
			return &StorageError{Op: "check enrollment", Err: err}
		}

		for _, sid := range ids {
			if _, ok := enrolled[sid]; !ok {
				w := NotEnrolledWarning{StudentID: sid, SubjectID: in.SubjectID}
				log.Warn().
					Str("student_id", sid.String()).
					Str("subject_id", in.SubjectID.String()).
					Str("date", in.Date.String()).
					Msg("attendance skipped: student not enrolled in subject")
				res.SkippedStudents = append(res.SkippedStudents, sid)
				res.Warnings = append(res.Warnings, w)
				continue
			}
			row := &model.AttendanceModel{
				AttendanceStudentID:  sid,
				AttendanceSubjectID:  in.SubjectID,
				AttendanceDate:       in.Date,
				AttendanceStatus:     in.Statuses[sid],
				AttendanceRecordedBy: actor.ID,
			}
			if err := attendanceRepo.CreateAttendance(ctx, tx, row); err != nil {
				return &StorageError{Op: "insert attendance", Err: err}
			}
			res.RecordedCount++
		}

		skipped, err := json.Marshal(res.SkippedStudents)
		if err != nil {
			return &StorageError{Op: "encode skipped students", Err: err}
		}
		sub := &model.AttendanceSubmissionModel{
			AttendanceSubmissionSubjectID:         in.SubjectID,
			AttendanceSubmissionDate:              in.Date,
			AttendanceSubmissionRecordedBy:        actor.ID,
			AttendanceSubmissionSubmittedCount:    res.SubmittedCount,
			AttendanceSubmissionRecordedCount:     res.RecordedCount,
			AttendanceSubmissionSkippedStudentIDs: skipped,
		}
		if err := attendanceRepo.CreateSubmission(ctx, tx, sub); err != nil {
			return &StorageError{Op: "insert submission", Err: err}
		}
		return nil
	}, txOptions(r.DB)...)
	if err != nil {
		var se *StorageError
		if !errors.As(err, &se) {
			se = &StorageError{Op: "record attendance", Err: err}
		}
		log.Error().Err(se.Err).Str("op", se.Op).Str("code", se.Code()).
			Str("subject_id", in.SubjectID.String()).Str("date", in.Date.String()).
			Msg("attendance transaction rolled back")
		return nil, se
	}

	res.Message = MsgAttendanceMarked
	return res, nil
}

func (r *Recorder) validate(ctx context.Context, in RecordInput, ids []uuid.UUID) error {
	verr := NewValidationError()

	if in.SubjectID == uuid.Nil {
		verr.Add("subject_id", "The subject id field is required.")
	} else {
		ok, err := subjectRepo.SubjectExists(ctx, r.DB, in.SubjectID)
		if err != nil {
			return &StorageError{Op: "find subject", Err: err}
		}
		if !ok {
			verr.Add("subject_id", "The selected subject id is invalid.")
		}
	}

	if in.Date.IsZero() {
		verr.Add("attendance_date", "The attendance date is not a valid date.")
	}

	if len(ids) == 0 {
		verr.Add("attendances", "The attendances field is required.")
		return verr
	}

	for _, sid := range ids {
		if !in.Statuses[sid].Valid() {
			verr.Add(studentField(sid), fmt.Sprintf("The selected status for student %s is invalid.", sid))
		}
	}

	existing, err := studentRepo.ExistingIDs(ctx, r.DB, ids)
	if err != nil {
		return &StorageError{Op: "find students", Err: err}
	}
	for _, sid := range ids {
		if _, ok := existing[sid]; !ok {
			verr.Add(studentField(sid), fmt.Sprintf("The student ID (%s) for attendance is invalid or not found.", sid))
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (r *Recorder) authorize(ctx context.Context, actor helperAuth.Actor, subjectID uuid.UUID) error {
	if !actor.Is(constants.RoleTeacher) {
		return &AuthorizationError{Reason: MsgUnauthorizedSubject}
	}
	ok, err := subjectRepo.IsTeacherAssigned(ctx, r.DB, actor.ID, subjectID)
	if err != nil {
		return &StorageError{Op: "check assignment", Err: err}
	}
	if !ok {
		return &AuthorizationError{Reason: MsgUnauthorizedSubject}
	}
	return nil
}

func studentField(id uuid.UUID) string { return "attendances." + id.String() }

// sortedStudentIDs fixes the insert order so concurrent writers touch rows alike.
func sortedStudentIDs(m map[uuid.UUID]model.AttendanceStatus) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
	return ids
}

// txOptions asks PostgreSQL for read committed. SQLite only has its default.
func txOptions(db *gorm.DB) []*sql.TxOptions {
	if db.Dialector.Name() == "sqlite" {
		return nil
	}
	return []*sql.TxOptions{{Isolation: sql.LevelReadCommitted}}
}
