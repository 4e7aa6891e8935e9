package sqlitetest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	studentModel "attendance_backend/internals/features/school/academics/students/model"
	subjectModel "attendance_backend/internals/features/school/academics/subjects/model"
	attendanceModel "attendance_backend/internals/features/school/attendances/model"
	userModel "attendance_backend/internals/features/users/user/model"
	"attendance_backend/internals/helpers/dbtime"
)

// User inserts an active account. The password column gets a placeholder hash.
func User(t testing.TB, db *gorm.DB, name, role string) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		Name:     name,
		Email:    uuid.NewString()[:8] + "@school.test",
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func Student(t testing.TB, db *gorm.DB, regNo, first, last string) studentModel.StudentModel {
	t.Helper()
	s := studentModel.StudentModel{
		StudentRegistrationNumber: regNo,
		StudentFirstName:          first,
		StudentLastName:           last,
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func Subject(t testing.TB, db *gorm.DB, code, name string) subjectModel.SubjectModel {
	t.Helper()
	s := subjectModel.SubjectModel{SubjectCode: code, SubjectName: name}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func Enroll(t testing.TB, db *gorm.DB, studentID, subjectID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&subjectModel.StudentSubjectModel{
		StudentSubjectStudentID:      studentID,
		StudentSubjectSubjectID:      subjectID,
		StudentSubjectEnrollmentDate: dbtime.NewDate(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)),
	}).Error)
}

func Assign(t testing.TB, db *gorm.DB, userID, subjectID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&subjectModel.TeacherSubjectModel{
		TeacherSubjectUserID:    userID,
		TeacherSubjectSubjectID: subjectID,
	}).Error)
}

// Mark writes one attendance row directly, bypassing the recorder.
func Mark(t testing.TB, db *gorm.DB, studentID, subjectID, by uuid.UUID, date string, status attendanceModel.AttendanceStatus) {
	t.Helper()
	d, err := dbtime.ParseDate(date)
	require.NoError(t, err)
	require.NoError(t, db.Create(&attendanceModel.AttendanceModel{
		AttendanceStudentID:  studentID,
		AttendanceSubjectID:  subjectID,
		AttendanceDate:       d,
		AttendanceStatus:     status,
		AttendanceRecordedBy: by,
	}).Error)
}
