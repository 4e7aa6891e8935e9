package seeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"attendance_backend/internals/databases/sqlitetest"
	studentModel "attendance_backend/internals/features/school/academics/students/model"
	subjectModel "attendance_backend/internals/features/school/academics/subjects/model"
	authService "attendance_backend/internals/features/users/auth/service"
	userModel "attendance_backend/internals/features/users/user/model"
)

func countRows(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func TestRunAllSeeds_Idempotent(t *testing.T) {
	db := sqlitetest.Open(t)

	require.NoError(t, RunAllSeeds(db, "."))
	users := countRows(t, db, &userModel.UserModel{})
	students := countRows(t, db, &studentModel.StudentModel{})
	subjects := countRows(t, db, &subjectModel.SubjectModel{})
	enrollments := countRows(t, db, &subjectModel.StudentSubjectModel{})
	assignments := countRows(t, db, &subjectModel.TeacherSubjectModel{})

	assert.EqualValues(t, 5, users)
	assert.EqualValues(t, 10, students)
	assert.EqualValues(t, 5, subjects)
	assert.Positive(t, enrollments)
	assert.Positive(t, assignments)

	require.NoError(t, RunAllSeeds(db, "."))
	assert.Equal(t, users, countRows(t, db, &userModel.UserModel{}))
	assert.Equal(t, students, countRows(t, db, &studentModel.StudentModel{}))
	assert.Equal(t, subjects, countRows(t, db, &subjectModel.SubjectModel{}))
	assert.Equal(t, enrollments, countRows(t, db, &subjectModel.StudentSubjectModel{}))
	assert.Equal(t, assignments, countRows(t, db, &subjectModel.TeacherSubjectModel{}))

	var teacher userModel.UserModel
	require.NoError(t, db.Where("role = ?", "teacher").Order("email").First(&teacher).Error)
	assert.NoError(t, authService.CheckPasswordHash(teacher.Password, "password"))
}

func TestRunAllSeeds_MissingFile(t *testing.T) {
	db := sqlitetest.Open(t)
	assert.Error(t, RunAllSeeds(db, "does-not-exist"))
}
