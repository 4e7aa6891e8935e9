package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendance_backend/internals/features/school/academics/students/model"
)

// ExistingIDs returns the subset of ids that are real students.
func ExistingIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	out := make(map[uuid.UUID]struct{}, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var found []uuid.UUID
	if err := db.WithContext(ctx).
		Model(&model.StudentModel{}).
		Where("student_id IN ?", ids).
		Pluck("student_id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = struct{}{}
	}
	return out, nil
}

func FindByRegistrationNumber(ctx context.Context, db *gorm.DB, regNo string) (*model.StudentModel, error) {
	var s model.StudentModel
	if err := db.WithContext(ctx).
		Where("student_registration_number = ?", regNo).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
