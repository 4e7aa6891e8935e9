package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID                 uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`
	StudentRegistrationNumber string    `gorm:"column:student_registration_number;type:varchar(40);not null;uniqueIndex:uq_students_registration_number" json:"student_registration_number"`
	StudentFirstName          string    `gorm:"column:student_first_name;type:varchar(80);not null;index:idx_students_first_name" json:"student_first_name"`
	StudentLastName           string    `gorm:"column:student_last_name;type:varchar(80);not null" json:"student_last_name"`
	StudentEmail              *string   `gorm:"column:student_email;type:varchar(255)" json:"student_email,omitempty"`

	StudentCreatedAt time.Time `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}
