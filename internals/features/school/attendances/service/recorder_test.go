package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	"attendance_backend/internals/databases/sqlitetest"
	"attendance_backend/internals/features/school/attendances/model"
	attendanceRepo "attendance_backend/internals/features/school/attendances/repository"
	helperAuth "attendance_backend/internals/helpers/auth"
	"attendance_backend/internals/helpers/dbtime"
)

type rosterFixture struct {
	db      *gorm.DB
	teacher helperAuth.Actor
	subject uuid.UUID
	alice   uuid.UUID
	bob     uuid.UUID
	carol   uuid.UUID // exists, not enrolled
}

func newRosterFixture(t *testing.T) rosterFixture {
	db := sqlitetest.Open(t)
	u := sqlitetest.User(t, db, "Ms. Teacher", constants.RoleTeacher)
	sub := sqlitetest.Subject(t, db, "MA101", "Mathematics")
	a := sqlitetest.Student(t, db, "STU-001", "Alice", "Smith")
	b := sqlitetest.Student(t, db, "STU-002", "Bob", "Jones")
	c := sqlitetest.Student(t, db, "STU-003", "Carol", "White")
	sqlitetest.Enroll(t, db, a.StudentID, sub.SubjectID)
	sqlitetest.Enroll(t, db, b.StudentID, sub.SubjectID)
	sqlitetest.Assign(t, db, u.ID, sub.SubjectID)

	return rosterFixture{
		db:      db,
		teacher: helperAuth.Actor{ID: u.ID, Role: constants.RoleTeacher, Name: u.Name},
		subject: sub.SubjectID,
		alice:   a.StudentID,
		bob:     b.StudentID,
		carol:   c.StudentID,
	}
}

func mustDate(t *testing.T, s string) dbtime.Date {
	t.Helper()
	d, err := dbtime.ParseDate(s)
	require.NoError(t, err)
	return d
}

func storedStatuses(t *testing.T, db *gorm.DB, subject uuid.UUID, date dbtime.Date) map[uuid.UUID]model.AttendanceStatus {
	t.Helper()
	rows, err := attendanceRepo.ListBySubjectDate(context.Background(), db, subject, date)
	require.NoError(t, err)
	out := map[uuid.UUID]model.AttendanceStatus{}
	for _, r := range rows {
		out[r.AttendanceStudentID] = r.AttendanceStatus
	}
	return out
}

func TestRecord_WritesRoster(t *testing.T) {
	f := newRosterFixture(t)
	date := mustDate(t, "2024-03-04")

	res, err := NewRecorder(f.db).Record(context.Background(), f.teacher, RecordInput{
		SubjectID: f.subject,
		Date:      date,
		Statuses: map[uuid.UUID]model.AttendanceStatus{
			f.alice: model.StatusPresent,
			f.bob:   model.StatusAbsent,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, MsgAttendanceMarked, res.Message)
	assert.Equal(t, 2, res.SubmittedCount)
	assert.Equal(t, 2, res.RecordedCount)
	assert.Empty(t, res.SkippedStudents)

	got := storedStatuses(t, f.db, f.subject, date)
	assert.Equal(t, map[uuid.UUID]model.AttendanceStatus{
		f.alice: model.StatusPresent,
		f.bob:   model.StatusAbsent,
	}, got)

	var rows []model.AttendanceModel
	require.NoError(t, f.db.Find(&rows).Error)
	for _, r := range rows {
		assert.Equal(t, f.teacher.ID, r.AttendanceRecordedBy)
	}

	var subs []model.AttendanceSubmissionModel
	require.NoError(t, f.db.Find(&subs).Error)
	require.Len(t, subs, 1)
	assert.Equal(t, 2, subs[0].AttendanceSubmissionRecordedCount)
}

func TestRecord_ResubmissionIsIdempotent(t *testing.T) {
	f := newRosterFixture(t)
	date := mustDate(t, "2024-03-04")
	in := RecordInput{
		SubjectID: f.subject,
		Date:      date,
		Statuses: map[uuid.UUID]model.AttendanceStatus{
			f.alice: model.StatusPresent,
			f.bob:   model.StatusLate,
		},
	}
	rec := NewRecorder(f.db)

	_, err := rec.Record(context.Background(), f.teacher, in)
	require.NoError(t, err)
	first := storedStatuses(t, f.db, f.subject, date)

	res, err := rec.Record(context.Background(), f.teacher, in)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.ReplacedCount)
	assert.Equal(t, first, storedStatuses(t, f.db, f.subject, date))

	var n int64
	require.NoError(t, f.db.Model(&model.AttendanceModel{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestRecord_ReplacesStaleRows(t *testing.T) {
	f := newRosterFixture(t)
	date := mustDate(t, "2024-03-04")
	rec := NewRecorder(f.db)

	_, err := rec.Record(context.Background(), f.teacher, RecordInput{
		SubjectID: f.subject,
		Date:      date,
		Statuses: map[uuid.UUID]model.AttendanceStatus{
			f.alice: model.StatusPresent,
			f.bob:   model.StatusAbsent,
		},
	})
	require.NoError(t, err)

	_, err = rec.Record(context.Background(), f.teacher, RecordInput{
		SubjectID: f.subject,
		Date:      date,
		Statuses:  map[uuid.UUID]model.AttendanceStatus{f.alice: model.StatusExcused},
	})
	require.NoError(t, err)

	assert.Equal(t, map[uuid.UUID]model.AttendanceStatus{f.alice: model.StatusExcused},
		storedStatuses(t, f.db, f.subject, date))
}

func TestRecord_OtherDatesUntouched(t *testing.T) {
	f := newRosterFixture(t)
	sqlitetest.Mark(t, f.db, f.bob, f.subject, f.teacher.ID, "2024-03-01", model.StatusAbsent)

	_, err := NewRecorder(f.db).Record(context.Background(), f.teacher, RecordInput{
		SubjectID: f.subject,
		Date:      mustDate(t, "2024-03-04"),
		Statuses:  map[uuid.UUID]model.AttendanceStatus{f.alice: model.StatusPresent},
	})
	require.NoError(t, err)

	assert.Equal(t, map[uuid.UUID]model.AttendanceStatus{f.bob: model.StatusAbsent},
		storedStatuses(t, f.db, f.subject, mustDate(t, "2024-03-01")))
}

func TestRecord_SkipsStudentsNotEnrolled(t *testing.T) {
	f := newRosterFixture(t)
	date := mustDate(t, "2024-03-04")

	res, err := NewRecorder(f.db).Record(context.Background(), f.teacher, RecordInput{
		SubjectID: f.subject,
		Date:      date,
		Statuses: map[uuid.UUID]model.AttendanceStatus{
			f.alice: model.StatusPresent,
			f.carol: model.StatusPresent,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.SubmittedCount)
	assert.Equal(t, 1, res.RecordedCount)
	assert.Equal(t, []uuid.UUID{f.carol}, res.SkippedStudents)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, f.carol, res.Warnings[0].StudentID)

	assert.Equal(t, map[uuid.UUID]model.AttendanceStatus{f.alice: model.StatusPresent},
		storedStatuses(t, f.db, f.subject, date))
}

func TestRecord_RejectsUnassignedTeacher(t *testing.T) {
	f := newRosterFixture(t)
	other := sqlitetest.User(t, f.db, "Mr. Other", constants.RoleTeacher)
	date := mustDate(t, "2024-03-04")
	sqlitetest.Mark(t, f.db, f.alice, f.subject, f.teacher.ID, "2024-03-04", model.StatusAbsent)

	_, err := NewRecorder(f.db).Record(context.Background(),
		helperAuth.Actor{ID: other.ID, Role: constants.RoleTeacher},
		RecordInput{
			SubjectID: f.subject,
			Date:      date,
			Statuses:  map[uuid.UUID]model.AttendanceStatus{f.alice: model.StatusPresent},
		})

	var aerr *AuthorizationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, MsgUnauthorizedSubject, aerr.Reason)
	assert.Equal(t, map[uuid.UUID]model.AttendanceStatus{f.alice: model.StatusAbsent},
		storedStatuses(t, f.db, f.subject, date))
}

func TestRecord_RejectsNonTeacherRoles(t *testing.T) {
	f := newRosterFixture(t)
	for _, role := range []string{constants.RoleAdmin, constants.RoleStaff} {
		t.Run(role, func(t *testing.T) {
			u := sqlitetest.User(t, f.db, role, role)
			// even an assignment row does not let a non-teacher record
			sqlitetest.Assign(t, f.db, u.ID, f.subject)

			_, err := NewRecorder(f.db).Record(context.Background(),
				helperAuth.Actor{ID: u.ID, Role: role},
				RecordInput{
					SubjectID: f.subject,
					Date:      mustDate(t, "2024-03-04"),
					Statuses:  map[uuid.UUID]model.AttendanceStatus{f.alice: model.StatusPresent},
				})
			var aerr *AuthorizationError
			require.ErrorAs(t, err, &aerr)
		})
	}
	var n int64
	require.NoError(t, f.db.Model(&model.AttendanceModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRecord_ValidationFailures(t *testing.T) {
	f := newRosterFixture(t)
	ghost := uuid.New()
	date := mustDate(t, "2024-03-04")

	cases := []struct {
		name  string
		in    RecordInput
		field string
	}{
		{
			name:  "empty roster",
			in:    RecordInput{SubjectID: f.subject, Date: date, Statuses: map[uuid.UUID]model.AttendanceStatus{}},
			field: "attendances",
		},
		{
			name: "unknown student",
			in: RecordInput{SubjectID: f.subject, Date: date, Statuses: map[uuid.UUID]model.AttendanceStatus{
				f.alice: model.StatusPresent,
				ghost:   model.StatusPresent,
			}},
			field: "attendances." + ghost.String(),
		},
		{
			name: "bad status",
			in: RecordInput{SubjectID: f.subject, Date: date, Statuses: map[uuid.UUID]model.AttendanceStatus{
				f.alice: model.AttendanceStatus("sick"),
			}},
			field: "attendances." + f.alice.String(),
		},
		{
			name: "unknown subject",
			in: RecordInput{SubjectID: uuid.New(), Date: date, Statuses: map[uuid.UUID]model.AttendanceStatus{
				f.alice: model.StatusPresent,
			}},
			field: "subject_id",
		},
		{
			name: "missing date",
			in: RecordInput{SubjectID: f.subject, Statuses: map[uuid.UUID]model.AttendanceStatus{
				f.alice: model.StatusPresent,
			}},
			field: "attendance_date",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRecorder(f.db).Record(context.Background(), f.teacher, tc.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}

	var n int64
	require.NoError(t, f.db.Model(&model.AttendanceModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRecord_UnknownStudentMessage(t *testing.T) {
	f := newRosterFixture(t)
	ghost := uuid.New()

	_, err := NewRecorder(f.db).Record(context.Background(), f.teacher, RecordInput{
		SubjectID: f.subject,
		Date:      mustDate(t, "2024-03-04"),
		Statuses:  map[uuid.UUID]model.AttendanceStatus{ghost: model.StatusPresent},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t,
		[]string{"The student ID (" + ghost.String() + ") for attendance is invalid or not found."},
		verr.Fields["attendances."+ghost.String()])
}

func TestRecord_RollsBackOnInsertFailure(t *testing.T) {
	f := newRosterFixture(t)
	date := mustDate(t, "2024-03-04")
	sqlitetest.Mark(t, f.db, f.alice, f.subject, f.teacher.ID, "2024-03-04", model.StatusAbsent)
	sqlitetest.Mark(t, f.db, f.bob, f.subject, f.teacher.ID, "2024-03-04", model.StatusAbsent)

	inserts := 0
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:fail_second_attendance", func(d *gorm.DB) {
		if d.Statement.Table != "attendances" {
			return
		}
		inserts++
		if inserts == 2 {
			_ = d.AddError(errors.New("disk full"))
		}
	}))

	_, err := NewRecorder(f.db).Record(context.Background(), f.teacher, RecordInput{
		SubjectID: f.subject,
		Date:      date,
		Statuses: map[uuid.UUID]model.AttendanceStatus{
			f.alice: model.StatusPresent,
			f.bob:   model.StatusPresent,
		},
	})

	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "insert attendance", serr.Op)

	assert.Equal(t, map[uuid.UUID]model.AttendanceStatus{
		f.alice: model.StatusAbsent,
		f.bob:   model.StatusAbsent,
	}, storedStatuses(t, f.db, f.subject, date))

	var subs int64
	require.NoError(t, f.db.Model(&model.AttendanceSubmissionModel{}).Count(&subs).Error)
	assert.Zero(t, subs)
}
