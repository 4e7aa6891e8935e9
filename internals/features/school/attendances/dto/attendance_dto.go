package dto

import (
	"math"
	"strings"

	"github.com/google/uuid"

	attendanceRepo "attendance_backend/internals/features/school/attendances/repository"
	"attendance_backend/internals/helpers/dbtime"
)

/* =========================================================
   RECORD (POST /api/u/attendances)
   ========================================================= */

// RecordAttendanceRequest maps student id => status for one subject and day.
type RecordAttendanceRequest struct {
	SubjectID      string            `json:"subject_id" validate:"required,uuid"`
	AttendanceDate string            `json:"attendance_date" validate:"required,datetime=2006-01-02"`
	Attendances    map[string]string `json:"attendances" validate:"required,min=1,dive,keys,uuid,endkeys,required,oneof=present absent late excused"`
}

func (r *RecordAttendanceRequest) Normalize() {
	r.SubjectID = strings.TrimSpace(r.SubjectID)
	r.AttendanceDate = strings.TrimSpace(r.AttendanceDate)
	if len(r.Attendances) == 0 {
		return
	}
	out := make(map[string]string, len(r.Attendances))
	for k, v := range r.Attendances {
		out[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(strings.TrimSpace(v))
	}
	r.Attendances = out
}

/* =========================================================
   SUMMARY (GET /api/u/attendances/summary)
   ========================================================= */

// SummaryQuery is the filter part; page/per_page go through helper.ParseFiber.
type SummaryQuery struct {
	StartDate  string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	SubjectID  string `query:"subject_id" validate:"omitempty,uuid"`
	SearchTerm string `query:"search_term" validate:"omitempty,max=100"`
}

func (q *SummaryQuery) Normalize() {
	q.StartDate = strings.TrimSpace(q.StartDate)
	q.EndDate = strings.TrimSpace(q.EndDate)
	q.SubjectID = strings.TrimSpace(q.SubjectID)
	q.SearchTerm = strings.TrimSpace(q.SearchTerm)
}

type AttendanceSummary struct {
	StudentID                 uuid.UUID `json:"student_id"`
	StudentRegistrationNumber string    `json:"student_registration_number"`
	StudentFirstName          string    `json:"student_first_name"`
	StudentLastName           string    `json:"student_last_name"`
	SubjectID                 uuid.UUID `json:"subject_id"`
	SubjectName               string    `json:"subject_name"`
	SubjectCode               string    `json:"subject_code"`
	PresentCount              int64     `json:"present_count"`
	TotalRecorded             int64     `json:"total_recorded"`
	Percentage                float64   `json:"percentage"`
}

func FromSummaryRow(r attendanceRepo.SummaryRow) AttendanceSummary {
	return AttendanceSummary{
		StudentID:                 r.StudentID,
		StudentRegistrationNumber: r.StudentRegistrationNumber,
		StudentFirstName:          r.StudentFirstName,
		StudentLastName:           r.StudentLastName,
		SubjectID:                 r.SubjectID,
		SubjectName:               r.SubjectName,
		SubjectCode:               r.SubjectCode,
		PresentCount:              r.PresentCount,
		TotalRecorded:             r.TotalRecorded,
		Percentage:                Percentage(r.PresentCount, r.TotalRecorded),
	}
}

func FromSummaryRows(rows []attendanceRepo.SummaryRow) []AttendanceSummary {
	out := make([]AttendanceSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromSummaryRow(r))
	}
	return out
}

// Percentage is present/total*100 rounded to two decimals; 0 when total is 0.
func Percentage(present, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*100*100) / 100
}

// SummaryFilters echoes the effective filter state back to the dashboard.
type SummaryFilters struct {
	StartDate  dbtime.Date `json:"start_date"`
	EndDate    dbtime.Date `json:"end_date"`
	SubjectID  *uuid.UUID  `json:"subject_id"`
	SearchTerm string      `json:"search_term"`
	PerPage    int         `json:"per_page"`
}

type SummaryIncludes struct {
	Filters    SummaryFilters `json:"filters"`
	PeriodDays int            `json:"period_days"`
}
