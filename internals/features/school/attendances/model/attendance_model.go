package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"attendance_backend/internals/helpers/dbtime"
)

/* =========================================
   ENUM: attendance status
   ========================================= */

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
	StatusExcused AttendanceStatus = "excused"
)

// AttendanceStatuses is the closed set accepted on write.
var AttendanceStatuses = []AttendanceStatus{StatusPresent, StatusAbsent, StatusLate, StatusExcused}

func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	}
	return false
}

func ParseAttendanceStatus(s string) (AttendanceStatus, bool) {
	st := AttendanceStatus(s)
	return st, st.Valid()
}

/* =========================================
   MODEL: attendances
   ========================================= */

// AttendanceModel holds at most one row per (student, subject, date).
type AttendanceModel struct {
	AttendanceID         uuid.UUID        `gorm:"column:attendance_id;type:uuid;primaryKey" json:"attendance_id"`
	AttendanceStudentID  uuid.UUID        `gorm:"column:attendance_student_id;type:uuid;not null;uniqueIndex:uq_attendances_student_subject_date,priority:1" json:"attendance_student_id"`
	AttendanceSubjectID  uuid.UUID        `gorm:"column:attendance_subject_id;type:uuid;not null;uniqueIndex:uq_attendances_student_subject_date,priority:2;index:idx_attendances_subject_date,priority:1" json:"attendance_subject_id"`
	AttendanceDate       dbtime.Date      `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendances_student_subject_date,priority:3;index:idx_attendances_subject_date,priority:2" json:"attendance_date"`
	AttendanceStatus     AttendanceStatus `gorm:"column:attendance_status;type:varchar(10);not null;check:chk_attendances_status,attendance_status IN ('present','absent','late','excused')" json:"attendance_status"`
	AttendanceRecordedBy uuid.UUID        `gorm:"column:attendance_recorded_by;type:uuid;not null" json:"attendance_recorded_by"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at;autoUpdateTime" json:"attendance_updated_at"`
}

func (AttendanceModel) TableName() string { return "attendances" }

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}

/* =========================================
   MODEL: attendance_submissions (audit)
   ========================================= */

// AttendanceSubmissionModel is written once per successful roster submission.
type AttendanceSubmissionModel struct {
	AttendanceSubmissionID                uuid.UUID      `gorm:"column:attendance_submission_id;type:uuid;primaryKey" json:"attendance_submission_id"`
	AttendanceSubmissionSubjectID         uuid.UUID      `gorm:"column:attendance_submission_subject_id;type:uuid;not null;index:idx_attendance_submissions_subject_date,priority:1" json:"attendance_submission_subject_id"`
	AttendanceSubmissionDate              dbtime.Date    `gorm:"column:attendance_submission_date;type:date;not null;index:idx_attendance_submissions_subject_date,priority:2" json:"attendance_submission_date"`
	AttendanceSubmissionRecordedBy        uuid.UUID      `gorm:"column:attendance_submission_recorded_by;type:uuid;not null" json:"attendance_submission_recorded_by"`
	AttendanceSubmissionSubmittedCount    int            `gorm:"column:attendance_submission_submitted_count;not null" json:"attendance_submission_submitted_count"`
	AttendanceSubmissionRecordedCount     int            `gorm:"column:attendance_submission_recorded_count;not null" json:"attendance_submission_recorded_count"`
	AttendanceSubmissionSkippedStudentIDs datatypes.JSON `gorm:"column:attendance_submission_skipped_student_ids" json:"attendance_submission_skipped_student_ids"`

	AttendanceSubmissionCreatedAt time.Time `gorm:"column:attendance_submission_created_at;autoCreateTime" json:"attendance_submission_created_at"`
}

func (AttendanceSubmissionModel) TableName() string { return "attendance_submissions" }

func (m *AttendanceSubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceSubmissionID == uuid.Nil {
		m.AttendanceSubmissionID = uuid.New()
	}
	return nil
}
