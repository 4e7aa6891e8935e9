package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendance_backend/internals/helpers/dbtime"
)

/* =========================================
   MODEL: subjects
   ========================================= */

type SubjectModel struct {
	SubjectID   uuid.UUID `gorm:"column:subject_id;type:uuid;primaryKey" json:"subject_id"`
	SubjectName string    `gorm:"column:subject_name;type:varchar(160);not null" json:"subject_name"`
	SubjectCode string    `gorm:"column:subject_code;type:varchar(40);not null;uniqueIndex:uq_subjects_code" json:"subject_code"`

	SubjectCreatedAt time.Time `gorm:"column:subject_created_at;autoCreateTime" json:"subject_created_at"`
	SubjectUpdatedAt time.Time `gorm:"column:subject_updated_at;autoUpdateTime" json:"subject_updated_at"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}

/* =========================================
   MODEL: student_subjects (enrollment pivot)
   ========================================= */

type StudentSubjectModel struct {
	StudentSubjectStudentID      uuid.UUID `gorm:"column:student_subject_student_id;type:uuid;primaryKey" json:"student_subject_student_id"`
	StudentSubjectSubjectID      uuid.UUID `gorm:"column:student_subject_subject_id;type:uuid;primaryKey;index:idx_student_subjects_subject" json:"student_subject_subject_id"`
	StudentSubjectEnrollmentDate dbtime.Date `gorm:"column:student_subject_enrollment_date;type:date;not null" json:"student_subject_enrollment_date"`
	StudentSubjectCreatedAt      time.Time `gorm:"column:student_subject_created_at;autoCreateTime" json:"student_subject_created_at"`
}

func (StudentSubjectModel) TableName() string { return "student_subjects" }

/* =========================================
   MODEL: teacher_subjects (assignment pivot)
   ========================================= */

type TeacherSubjectModel struct {
	TeacherSubjectUserID    uuid.UUID `gorm:"column:teacher_subject_user_id;type:uuid;primaryKey" json:"teacher_subject_user_id"`
	TeacherSubjectSubjectID uuid.UUID `gorm:"column:teacher_subject_subject_id;type:uuid;primaryKey;index:idx_teacher_subjects_subject" json:"teacher_subject_subject_id"`
	TeacherSubjectCreatedAt time.Time `gorm:"column:teacher_subject_created_at;autoCreateTime" json:"teacher_subject_created_at"`
}

func (TeacherSubjectModel) TableName() string { return "teacher_subjects" }
