package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	studentModel "attendance_backend/internals/features/school/academics/students/model"
	"attendance_backend/internals/features/school/academics/subjects/model"
)

/* ====================== SUBJECTS ====================== */

func FindSubjectByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.SubjectModel, error) {
	var s model.SubjectModel
	if err := db.WithContext(ctx).Where("subject_id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func SubjectExists(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	_, err := FindSubjectByID(ctx, db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// LockSubject takes a row lock on the subject for the rest of tx.
// SQLite has no FOR UPDATE; its single writer already serializes.
func LockSubject(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	q := tx.WithContext(ctx)
	if tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var s model.SubjectModel
	return q.Select("subject_id").Where("subject_id = ?", id).First(&s).Error
}

// ListSubjects returns every subject ordered by name.
func ListSubjects(ctx context.Context, db *gorm.DB) ([]model.SubjectModel, error) {
	var rows []model.SubjectModel
	err := db.WithContext(ctx).
		Order("subject_name ASC").
		Order("subject_id ASC").
		Find(&rows).Error
	return rows, err
}

// ListSubjectsForTeacher returns the subjects assigned to userID.
func ListSubjectsForTeacher(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]model.SubjectModel, error) {
	var rows []model.SubjectModel
	err := db.WithContext(ctx).
		Table("subjects").
		Select("subjects.*").
		Joins("JOIN teacher_subjects ts ON ts.teacher_subject_subject_id = subjects.subject_id").
		Where("ts.teacher_subject_user_id = ?", userID).
		Order("subjects.subject_name ASC").
		Order("subjects.subject_id ASC").
		Find(&rows).Error
	return rows, err
}

/* ====================== ASSIGNMENTS ====================== */

func IsTeacherAssigned(ctx context.Context, db *gorm.DB, userID, subjectID uuid.UUID) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&model.TeacherSubjectModel{}).
		Where("teacher_subject_user_id = ? AND teacher_subject_subject_id = ?", userID, subjectID).
		Count(&n).Error
	return n > 0, err
}

/* ====================== ENROLLMENTS ====================== */

// EnrolledAmong returns which of studentIDs are enrolled in subjectID.
func EnrolledAmong(ctx context.Context, db *gorm.DB, subjectID uuid.UUID, studentIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	out := make(map[uuid.UUID]struct{}, len(studentIDs))
	if len(studentIDs) == 0 {
		return out, nil
	}
	var found []uuid.UUID
	if err := db.WithContext(ctx).
		Model(&model.StudentSubjectModel{}).
		Where("student_subject_subject_id = ? AND student_subject_student_id IN ?", subjectID, studentIDs).
		Pluck("student_subject_student_id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = struct{}{}
	}
	return out, nil
}

// ListEnrolledStudents returns the students of a subject ordered by name.
func ListEnrolledStudents(ctx context.Context, db *gorm.DB, subjectID uuid.UUID) ([]studentModel.StudentModel, error) {
	var rows []studentModel.StudentModel
	err := db.WithContext(ctx).
		Table("students").
		Select("students.*").
		Joins("JOIN student_subjects ss ON ss.student_subject_student_id = students.student_id").
		Where("ss.student_subject_subject_id = ?", subjectID).
		Order("students.student_first_name ASC").
		Order("students.student_last_name ASC").
		Order("students.student_id ASC").
		Find(&rows).Error
	return rows, err
}
