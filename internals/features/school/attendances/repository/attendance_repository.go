package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendance_backend/internals/features/school/attendances/model"
	helper "attendance_backend/internals/helpers"
	"attendance_backend/internals/helpers/dbtime"
)

/* ====================== WRITE PATH ====================== */

// DeleteBySubjectDate clears the roster of one subject for one day.
func DeleteBySubjectDate(ctx context.Context, tx *gorm.DB, subjectID uuid.UUID, date dbtime.Date) (int64, error) {
	res := tx.WithContext(ctx).
		Where("attendance_subject_id = ? AND attendance_date = ?", subjectID, date).
		Delete(&model.AttendanceModel{})
	return res.RowsAffected, res.Error
}

func CreateAttendance(ctx context.Context, tx *gorm.DB, row *model.AttendanceModel) error {
	return tx.WithContext(ctx).Create(row).Error
}

func CreateSubmission(ctx context.Context, tx *gorm.DB, row *model.AttendanceSubmissionModel) error {
	return tx.WithContext(ctx).Create(row).Error
}

/* ====================== READ PATH ====================== */

func ListBySubjectDate(ctx context.Context, db *gorm.DB, subjectID uuid.UUID, date dbtime.Date) ([]model.AttendanceModel, error) {
	var rows []model.AttendanceModel
	err := db.WithContext(ctx).
		Where("attendance_subject_id = ? AND attendance_date = ?", subjectID, date).
		Order("attendance_student_id ASC").
		Find(&rows).Error
	return rows, err
}

// SummaryFilter: the date bounds are inclusive; Search must already be normalised.
type SummaryFilter struct {
	StartDate dbtime.Date
	EndDate   dbtime.Date
	SubjectID *uuid.UUID
	Search    string
}

// SummaryRow is one (student, subject) group.
type SummaryRow struct {
	StudentID                 uuid.UUID `gorm:"column:student_id"`
	StudentRegistrationNumber string    `gorm:"column:student_registration_number"`
	StudentFirstName          string    `gorm:"column:student_first_name"`
	StudentLastName           string    `gorm:"column:student_last_name"`
	SubjectID                 uuid.UUID `gorm:"column:subject_id"`
	SubjectName               string    `gorm:"column:subject_name"`
	SubjectCode               string    `gorm:"column:subject_code"`
	PresentCount              int64     `gorm:"column:present_count"`
	TotalRecorded             int64     `gorm:"column:total_recorded"`
}

const summaryGroupBy = "s.student_id, s.student_registration_number, s.student_first_name, s.student_last_name, " +
	"sub.subject_id, sub.subject_name, sub.subject_code"

// summaryOrder keeps pages stable: ids break ties between equal names.
const summaryOrder = "s.student_first_name ASC, sub.subject_name ASC, s.student_id ASC, sub.subject_id ASC"

// summaryQuery builds a fresh grouped statement on every call; GORM
// statements must not be shared between the count and the page query.
func summaryQuery(ctx context.Context, db *gorm.DB, f SummaryFilter) *gorm.DB {
	q := db.WithContext(ctx).
		Table("attendances AS a").
		Joins("JOIN students s ON s.student_id = a.attendance_student_id").
		Joins("JOIN subjects sub ON sub.subject_id = a.attendance_subject_id").
		Where("a.attendance_date >= ? AND a.attendance_date <= ?", f.StartDate, f.EndDate)

	if f.SubjectID != nil {
		q = q.Where("a.attendance_subject_id = ?", *f.SubjectID)
	}
	if f.Search != "" {
		like := helper.LikeContains(f.Search)
		q = q.Where(
			`(LOWER(s.student_first_name) LIKE ? ESCAPE '\' OR LOWER(s.student_last_name) LIKE ? ESCAPE '\' OR LOWER(s.student_registration_number) LIKE ? ESCAPE '\')`,
			like, like, like,
		)
	}

	return q.Select(summaryGroupBy + `,
		COUNT(CASE WHEN a.attendance_status = 'present' THEN 1 END) AS present_count,
		COUNT(a.attendance_id) AS total_recorded`).
		Group(summaryGroupBy)
}

// CountSummary is the number of groups, not of attendance rows.
func CountSummary(ctx context.Context, db *gorm.DB, f SummaryFilter) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Table("(?) AS g", summaryQuery(ctx, db, f)).
		Count(&total).Error
	return total, err
}

func ListSummary(ctx context.Context, db *gorm.DB, f SummaryFilter, limit, offset int) ([]SummaryRow, error) {
	rows := make([]SummaryRow, 0, limit)
	err := summaryQuery(ctx, db, f).
		Order(summaryOrder).
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	return rows, err
}
