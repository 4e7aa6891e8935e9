package seeds

import (
	"path/filepath"

	"gorm.io/gorm"

	academics "attendance_backend/internals/seeds/academics"
	users "attendance_backend/internals/seeds/users/auth"
)

// RunAllSeeds loads every fixture under baseDir (normally "internals/seeds").
// Order matters: assignments and enrollments look up users, students and subjects.
func RunAllSeeds(db *gorm.DB, baseDir string) error {
	if baseDir == "" {
		baseDir = "internals/seeds"
	}
	steps := []struct {
		fn   func(*gorm.DB, string) error
		file string
	}{
		{users.SeedUsersFromJSON, "users/auth/data_users.json"},
		{academics.SeedStudentsFromJSON, "academics/data_students.json"},
		{academics.SeedSubjectsFromJSON, "academics/data_subjects.json"},
		{academics.SeedEnrollmentsFromJSON, "academics/data_enrollments.json"},
		{academics.SeedTeacherSubjectsFromJSON, "academics/data_teacher_subjects.json"},
	}
	for _, s := range steps {
		if err := s.fn(db, filepath.Join(baseDir, s.file)); err != nil {
			return err
		}
	}
	return nil
}
